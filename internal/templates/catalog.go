package templates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pyrod3v/gitman/internal/logging"
)

// Output file names.
const (
	GitignoreFile = ".gitignore"
	LicenseFile   = "LICENSE"
)

// ErrNotFound is returned for a template no store knows.
var ErrNotFound = errors.New("template not found")

// Catalog lists and resolves one kind of template.
type Catalog struct {
	// Kind names the template kind in messages and the cache, e.g. "gitignores".
	Kind string
	// OutputFile is the file Write creates, e.g. ".gitignore".
	OutputFile string
	// CustomDir holds user templates. Suffix is stripped from their names.
	CustomDir string
	Suffix    string
	// CacheDir receives fetched templates. Empty disables caching.
	CacheDir string
	// Remote may be nil to work offline.
	Remote Source
	Log    logging.Logger
}

// Gitignores returns the .gitignore catalog rooted at configDir.
func Gitignores(configDir string, cache bool, remote Source, log logging.Logger) *Catalog {
	return newCatalog("gitignores", GitignoreFile, ".gitignore", configDir, cache, remote, log)
}

// Licenses returns the LICENSE catalog rooted at configDir.
func Licenses(configDir string, cache bool, remote Source, log logging.Logger) *Catalog {
	return newCatalog("licenses", LicenseFile, "", configDir, cache, remote, log)
}

func newCatalog(kind, output, suffix, configDir string, cache bool, remote Source, log logging.Logger) *Catalog {
	if log == nil {
		log = logging.Nop()
	}
	c := &Catalog{
		Kind:       kind,
		OutputFile: output,
		CustomDir:  filepath.Join(configDir, kind),
		Suffix:     suffix,
		Remote:     remote,
		Log:        log,
	}
	if cache {
		c.CacheDir = filepath.Join(configDir, ".cache", kind)
	}
	return c
}

// Names returns the sorted, de-duplicated names of all templates. Custom
// templates are read while the remote list is fetched. A remote failure is
// logged and the cached names stand in for the remote list; it is returned
// only when no template is known at all.
func (c *Catalog) Names(ctx context.Context) ([]string, error) {
	var custom, remote []string
	var remoteErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		custom, err = c.customNames()
		return err
	})
	if c.Remote != nil {
		g.Go(func() error {
			remote, remoteErr = c.Remote.List(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if remoteErr != nil {
		c.Log.Warn("could not fetch template list", "kind", c.Kind, "error", remoteErr)
		remote = c.cachedNames()
	}

	names := append(custom, remote...)
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) == 0 && remoteErr != nil {
		return nil, remoteErr
	}
	return names, nil
}

// customNames lists CustomDir, creating it when missing so users find where
// to put their templates.
func (c *Catalog) customNames() ([]string, error) {
	entries, err := os.ReadDir(c.CustomDir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(c.CustomDir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", c.Kind, err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s directory: %w", c.Kind, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), c.Suffix) {
			continue
		}
		if name := strings.TrimSuffix(e.Name(), c.Suffix); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Catalog) cachedNames() []string {
	if c.CacheDir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.CacheDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Content returns the named template from the custom directory, the cache
// or the remote source, in that order. Remote content is cached when caching
// is enabled; a failed cache write is only logged.
func (c *Catalog) Content(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(filepath.Join(c.CustomDir, name+c.Suffix)); err == nil {
		c.Log.Debug("using custom template", "kind", c.Kind, "name", name)
		return data, nil
	}
	if c.CacheDir != "" {
		if data, err := os.ReadFile(filepath.Join(c.CacheDir, name)); err == nil {
			c.Log.Debug("using cached template", "kind", c.Kind, "name", name)
			return data, nil
		}
	}
	if c.Remote == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	data, err := c.Remote.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.CacheDir != "" {
		if err := c.store(name, data); err != nil {
			c.Log.Warn("failed to cache template", "kind", c.Kind, "name", name, "error", err)
		}
	}
	return data, nil
}

func (c *Catalog) store(name string, data []byte) error {
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.CacheDir, name), data, 0o644)
}

// Write resolves name and writes it to dir/OutputFile, replacing any existing
// file. It returns the written path.
func (c *Catalog) Write(ctx context.Context, name, dir string) (string, error) {
	data, err := c.Content(ctx, name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.OutputFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", c.OutputFile, err)
	}
	return path, nil
}

// validName rejects names that would escape the template directories.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid template name %q", name)
	}
	return nil
}
