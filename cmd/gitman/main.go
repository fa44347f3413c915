// Command gitman sets up git repositories: it initializes them and adds
// .gitignore and LICENSE files from templates.
//
//	gitman                      interactive menu
//	gitman init [path]          initialize a repository
//	gitman gitignore [path]     add a .gitignore
//	gitman license [path]       add a LICENSE
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyrod3v/gitman/internal/app"
	"github.com/pyrod3v/gitman/internal/logging"
	"github.com/pyrod3v/gitman/internal/platform"
	"github.com/pyrod3v/gitman/internal/prompt"
	"github.com/pyrod3v/gitman/internal/settings"
	"github.com/pyrod3v/gitman/internal/templates"
)

const httpTimeout = 30 * time.Second

func main() {
	client := &http.Client{Timeout: httpTimeout}
	e := &env{
		prompter:   prompt.New(),
		detector:   platform.NewDetector(),
		getenv:     os.Getenv,
		gitignores: &templates.GitignoreAPI{Client: client},
		licenses:   &templates.LicenseAPI{Client: client},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	os.Exit(run(context.Background(), e, os.Args[1:]))
}

// env holds what a run needs from the outside world.
type env struct {
	prompter   prompt.Prompter
	detector   platform.Detector
	getenv     func(string) string
	gitignores templates.Source
	licenses   templates.Source
	stdout     io.Writer
	stderr     io.Writer // diagnostics

	app *app.App
	log logging.Logger
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, e *env, args []string) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	err := cmd.ExecuteContext(ctx)
	if e.log != nil {
		logging.Sync(e.log)
	}
	if err == nil {
		return 0
	}
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(e.stderr, "Cancelled.")
		return 1
	}
	fmt.Fprintf(e.stderr, "Error: %v\n", err)
	return 1
}

func newRootCmd(e *env) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "gitman",
		Short: "Initialize git repositories and add .gitignore and LICENSE files",
		Long: `gitman initializes git repositories and adds .gitignore and LICENSE files
from templates.

Templates come from gitignore.io and the GitHub licenses API. Custom templates
are read from the gitman config directory:

  <config>/gitignores/<name>.gitignore
  <config>/licenses/<name>

Settings are read from .gitman/config.yaml in the working directory or from
<config>/config.yaml.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := ""
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			return e.setup(cmd.Context(), level)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.app.Interactive(cmd.Context())
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config.yaml")

	root.AddCommand(newInitCmd(e), newGitignoreCmd(e), newLicenseCmd(e))
	return root
}

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a git repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.Init(cmd.Context(), pathArg(args)); err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully initialized repository!")
			return nil
		},
	}
}

func newGitignoreCmd(e *env) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "gitignore [path]",
		Short: "Add a .gitignore from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := e.app.AddGitignore(cmd.Context(), pathArg(args), name)
			if err != nil {
				return fmt.Errorf("failed to add .gitignore: %w", err)
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), "Successfully added .gitignore!")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "template", "t", "", "template name; prompts when empty")
	return cmd
}

func newLicenseCmd(e *env) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "license [path]",
		Short: "Add a LICENSE from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := e.app.AddLicense(cmd.Context(), pathArg(args), name)
			if err != nil {
				return fmt.Errorf("failed to add LICENSE: %w", err)
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), "Successfully added LICENSE!")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "template", "t", "", "license key, e.g. mit; prompts when empty")
	return cmd
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// setup loads the settings and builds the App. levelOverride, when set,
// replaces the configured log level.
func (e *env) setup(ctx context.Context, levelOverride string) error {
	info, err := e.detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}
	configDir, err := settings.ConfigDir(info, e.getenv)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	s, err := settings.Load(configDir, wd, e.getenv)
	if err != nil {
		return err
	}

	level := s.LogLevel
	if levelOverride != "" {
		level = levelOverride
	}
	log, err := logging.New(level, e.stderr)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	e.log = log
	log.Debug("loaded settings", "file", s.File, "config_dir", s.ConfigDir,
		"cache_gitignores", s.CacheGitignores, "cache_licenses", s.CacheLicenses)

	e.app = &app.App{
		Prompt:     e.prompter,
		Gitignores: templates.Gitignores(configDir, s.CacheGitignores, e.gitignores, log),
		Licenses:   templates.Licenses(configDir, s.CacheLicenses, e.licenses, log),
		Stdout:     e.stdout,
		Log:        log,
	}
	return nil
}
