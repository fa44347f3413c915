// Package app implements the gitman actions: initializing a repository and
// adding a .gitignore or LICENSE to a directory.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pyrod3v/gitman/internal/logging"
	"github.com/pyrod3v/gitman/internal/prompt"
	"github.com/pyrod3v/gitman/internal/repo"
	"github.com/pyrod3v/gitman/internal/templates"
)

// Actions offered by the interactive menu.
const (
	ActionInit      = "init"
	ActionGitignore = "add gitignore"
	ActionLicense   = "add license"
)

// None is listed first in template menus and skips the step.
const None = "None"

// App runs gitman actions.
type App struct {
	Prompt     prompt.Prompter
	Gitignores *templates.Catalog
	Licenses   *templates.Catalog
	// Stdout receives status lines.
	Stdout io.Writer
	Log    logging.Logger
}

func (a *App) logger() logging.Logger {
	if a.Log == nil {
		return logging.Nop()
	}
	return a.Log
}

func (a *App) printf(format string, args ...interface{}) {
	if a.Stdout != nil {
		fmt.Fprintf(a.Stdout, format, args...)
	}
}

// Interactive asks for an action and a path and runs the action.
func (a *App) Interactive(ctx context.Context) error {
	action, err := a.Prompt.Select("Select Git Action", []string{ActionInit, ActionGitignore, ActionLicense})
	if err != nil {
		return err
	}
	path, err := a.Prompt.Input("Enter path", ".")
	if err != nil {
		return err
	}

	switch action {
	case ActionInit:
		if err := a.Init(ctx, path); err != nil {
			return fmt.Errorf("failed to initialize repository: %w", err)
		}
		a.printf("Successfully initialized repository!\n")
	case ActionGitignore:
		added, err := a.AddGitignore(ctx, path, "")
		if err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if added {
			a.printf("Successfully added .gitignore!\n")
		}
	case ActionLicense:
		added, err := a.AddLicense(ctx, path, "")
		if err != nil {
			return fmt.Errorf("failed to add LICENSE: %w", err)
		}
		if added {
			a.printf("Successfully added LICENSE!\n")
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// Init creates a repository at path and walks through its setup: the
// repository name, a .gitignore, user.name, user.email and an origin remote.
// A name different from the directory's creates a sibling directory with
// that name. Failures to add the .gitignore or set the user are reported and
// skipped; a failure to add the remote is returned.
func (a *App) Init(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	name, err := a.Prompt.Input("Enter repository name", filepath.Base(abs))
	if err != nil {
		return err
	}
	if name != filepath.Base(abs) {
		if name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("invalid repository name %q", name)
		}
		abs = filepath.Join(filepath.Dir(abs), name)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	r, existed, err := repo.Init(abs)
	if err != nil {
		return err
	}
	if existed {
		a.printf("Reinitialized existing Git repository in %s\n", abs)
	} else {
		a.printf("Repository initialized successfully!\n")
	}
	a.logger().Debug("initialized repository", "path", abs, "existed", existed)

	if added, err := a.AddGitignore(ctx, abs, ""); err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return err
		}
		a.printf(".gitignore could not be added to the repository: %v\n", err)
	} else if added {
		a.printf(".gitignore added!\n")
	}

	user, err := a.Prompt.Input("Git user.name (leave empty to use default)", "")
	if err != nil {
		return err
	}
	if err := r.SetUser(user, ""); err != nil {
		a.printf("Failed to set git user.name: %v\n", err)
	}

	email, err := a.Prompt.Input("Git user.email (leave empty to use default)", "")
	if err != nil {
		return err
	}
	if err := r.SetUser("", email); err != nil {
		a.printf("Failed to set git user.email: %v\n", err)
	}

	remote, err := a.Prompt.Input("Remote repository URL (leave empty to skip)", "")
	if err != nil {
		return err
	}
	if remote != "" {
		if err := r.AddRemote(repo.DefaultRemote, remote); err != nil {
			return fmt.Errorf("failed to add remote: %w", err)
		}
		a.printf("Remote added successfully!\n")
	}
	return nil
}

// AddGitignore writes a .gitignore template into dir. An empty name asks for
// one; choosing None writes nothing and returns false.
func (a *App) AddGitignore(ctx context.Context, dir, name string) (bool, error) {
	return a.addTemplate(ctx, a.Gitignores, "Select Gitignore Template", dir, name)
}

// AddLicense writes a LICENSE into dir. An empty name asks for one; choosing
// None writes nothing and returns false.
func (a *App) AddLicense(ctx context.Context, dir, name string) (bool, error) {
	return a.addTemplate(ctx, a.Licenses, "Select a license", dir, name)
}

func (a *App) addTemplate(ctx context.Context, c *templates.Catalog, label, dir, name string) (bool, error) {
	if c == nil {
		return false, errors.New("no template catalog configured")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("resolve path: %w", err)
	}

	if name == "" {
		names, err := c.Names(ctx)
		if err != nil {
			return false, err
		}
		name, err = a.Prompt.Select(label, append([]string{None}, names...))
		if err != nil {
			return false, err
		}
	}
	if name == None {
		return false, nil
	}

	path, err := c.Write(ctx, name, abs)
	if err != nil {
		return false, err
	}
	a.logger().Info("wrote template", "kind", c.Kind, "name", name, "path", path)
	return true, nil
}
