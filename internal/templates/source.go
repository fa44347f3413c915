package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Default remote endpoints.
const (
	DefaultGitignoreURL = "https://www.toptal.com/developers/gitignore/api"
	DefaultLicenseURL   = "https://api.github.com/licenses"
)

// maxResponseSize caps a template or listing response.
const maxResponseSize = 4 << 20

const userAgent = "gitman"

// Source is a remote template provider.
type Source interface {
	// List returns the names of all templates.
	List(ctx context.Context) ([]string, error)
	// Fetch returns the content of the named template.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// GitignoreAPI is the gitignore.io API.
type GitignoreAPI struct {
	BaseURL string
	Client  *http.Client
}

// List fetches <BaseURL>/list, a comma and newline separated name list.
func (g *GitignoreAPI) List(ctx context.Context) ([]string, error) {
	body, err := get(ctx, g.Client, g.baseURL()+"/list", "")
	if err != nil {
		return nil, fmt.Errorf("fetch gitignore template list: %w", err)
	}
	fields := strings.FieldsFunc(string(body), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names, nil
}

// Fetch returns the generated .gitignore for name.
func (g *GitignoreAPI) Fetch(ctx context.Context, name string) ([]byte, error) {
	body, err := get(ctx, g.Client, g.baseURL()+"/"+url.PathEscape(name), "")
	if err != nil {
		return nil, fmt.Errorf("fetch gitignore template %s: %w", name, err)
	}
	return body, nil
}

func (g *GitignoreAPI) baseURL() string {
	if g.BaseURL == "" {
		return DefaultGitignoreURL
	}
	return strings.TrimRight(g.BaseURL, "/")
}

// LicenseAPI is the GitHub licenses API.
type LicenseAPI struct {
	BaseURL string
	Client  *http.Client
}

const githubJSON = "application/vnd.github+json"

// List returns the license keys, e.g. "mit" or "apache-2.0".
func (l *LicenseAPI) List(ctx context.Context) ([]string, error) {
	body, err := get(ctx, l.Client, l.baseURL(), githubJSON)
	if err != nil {
		return nil, fmt.Errorf("fetch license list: %w", err)
	}
	var list []struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse license list: %w", err)
	}
	names := make([]string, 0, len(list))
	for _, entry := range list {
		if entry.Key != "" {
			names = append(names, entry.Key)
		}
	}
	return names, nil
}

// Fetch returns the license text for key.
func (l *LicenseAPI) Fetch(ctx context.Context, key string) ([]byte, error) {
	body, err := get(ctx, l.Client, l.baseURL()+"/"+url.PathEscape(key), githubJSON)
	if err != nil {
		return nil, fmt.Errorf("fetch license %s: %w", key, err)
	}
	var license struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(body, &license); err != nil {
		return nil, fmt.Errorf("parse license %s: %w", key, err)
	}
	if license.Body == "" {
		return nil, fmt.Errorf("license %s has no body", key)
	}
	return []byte(license.Body), nil
}

func (l *LicenseAPI) baseURL() string {
	if l.BaseURL == "" {
		return DefaultLicenseURL
	}
	return strings.TrimRight(l.BaseURL, "/")
}

func get(ctx context.Context, client *http.Client, rawURL, accept string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("GET %s: response exceeds %d bytes", rawURL, maxResponseSize)
	}
	return body, nil
}
