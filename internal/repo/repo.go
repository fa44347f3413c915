// Package repo creates and configures git repositories with go-git, so gitman
// works without a git executable on PATH.
package repo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// DefaultRemote is the name given to the remote added by AddRemote.
const DefaultRemote = "origin"

// Repo is a non-bare repository on disk.
type Repo struct {
	Path string
	repo *git.Repository
}

// Init creates a repository at path, creating the directory if needed. An
// existing repository is opened instead and reported through existed, like
// "git init" reinitializing.
func Init(path string) (r *Repo, existed bool, err error) {
	repo, err := git.PlainInit(path, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(path)
		if err != nil {
			return nil, false, fmt.Errorf("open existing repository: %w", err)
		}
		return &Repo{Path: path, repo: repo}, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("initialize git repository: %w", err)
	}
	return &Repo{Path: path, repo: repo}, false, nil
}

// Open opens the repository at path.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return &Repo{Path: path, repo: repo}, nil
}

// SetUser writes user.name and user.email to the repository config. Empty
// values are left unchanged.
func (r *Repo) SetUser(name, email string) error {
	if name == "" && email == "" {
		return nil
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("read repository config: %w", err)
	}
	if name != "" {
		cfg.User.Name = name
	}
	if email != "" {
		cfg.User.Email = email
	}
	if err := r.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("write repository config: %w", err)
	}
	return nil
}

// User returns the repository's user.name and user.email.
func (r *Repo) User() (name, email string, err error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", "", err
	}
	return cfg.User.Name, cfg.User.Email, nil
}

// AddRemote adds a remote with a single fetch URL.
func (r *Repo) AddRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("add remote %s: %w", name, err)
	}
	return nil
}

// RemoteURL returns the first URL of the named remote.
func (r *Repo) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
