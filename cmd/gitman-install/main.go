// Command gitman-install installs the gitman binary into the system
// executable directory, building it first if needed.
//
//	gitman-install [path]
//
// Without arguments the platform default (gitman, or gitman.exe on Windows)
// in the current directory is installed. A path argument installs that file
// instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pyrod3v/gitman/internal/config"
	"github.com/pyrod3v/gitman/internal/install"
	"github.com/pyrod3v/gitman/internal/logging"
	"github.com/pyrod3v/gitman/internal/platform"
)

const usage = "Usage: gitman-install [path]"

func main() {
	a := &app{
		detector: platform.Cached(platform.NewDetector()),
		getenv:   os.Getenv,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

// app holds what a run needs from the outside world.
type app struct {
	detector platform.Detector
	getenv   func(string) string
	stdout   io.Writer // status and error lines
	stderr   io.Writer // diagnostics and build tool errors
}

// run performs one install and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(a.stdout, usage)
		return 1
	}
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	// An unsupported host is reported before any configuration is read.
	if _, _, err := install.Resolve(ctx, a.detector, a.getenv); err != nil {
		fmt.Fprintln(a.stdout, install.FormatError(err))
		return 1
	}

	log, err := logging.New(a.getenv(logging.EnvLevel), a.stderr)
	if err != nil {
		fmt.Fprintf(a.stdout, "Error: %s: %v\n", logging.EnvLevel, err)
		return 1
	}
	defer logging.Sync(log)

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(a.stdout, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.NewParser(a.detector).Load(ctx, wd)
	if err != nil {
		fmt.Fprintf(a.stdout, "Error loading %s: %s\n",
			filepath.Join(config.DirName, config.FileName), config.FormatError(err, false))
		return 1
	}
	log.Debug("loaded install config",
		"tool", cfg.Build.Tool, "flags", cfg.Build.Flags, "package", cfg.Build.Package, "destination", cfg.Destination)

	inst, err := install.New(install.Config{
		Detector:    a.detector,
		Builder:     a.builder(cfg),
		Getenv:      a.getenv,
		Stdout:      a.stdout,
		Logger:      log,
		Destination: cfg.Destination,
	})
	if err != nil {
		fmt.Fprintf(a.stdout, "Error: %v\n", err)
		return 1
	}

	if _, err := inst.Run(ctx, install.Options{Path: path}); err != nil {
		log.Debug("install failed", "error", err)
		fmt.Fprintln(a.stdout, install.FormatError(err))
		return 1
	}
	return 0
}

// builder runs the configured build tool with its output streamed to the
// console.
func (a *app) builder(cfg *config.Config) *install.CommandBuilder {
	return &install.CommandBuilder{
		Tool:    cfg.Build.Tool,
		Flags:   cfg.Build.Flags,
		Package: cfg.Build.Package,
		Stdout:  a.stdout,
		Stderr:  a.stderr,
	}
}
