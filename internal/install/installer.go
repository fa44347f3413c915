package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pyrod3v/gitman/internal/logging"
	"github.com/pyrod3v/gitman/internal/platform"
)

// Installer runs the install sequence.
type Installer struct {
	detector    platform.Detector
	builder     Builder
	getenv      func(string) string
	stdout      io.Writer
	log         logging.Logger
	destination string
}

// Config holds the dependencies of an Installer.
type Config struct {
	Detector platform.Detector
	Builder  Builder
	// Getenv looks up environment variables (default os.Getenv).
	Getenv func(string) string
	// Stdout receives the user-facing status lines (default io.Discard).
	Stdout io.Writer
	Logger logging.Logger
	// Destination overrides the platform install directory when set.
	Destination string
}

// Options configures a single run.
type Options struct {
	// Path overrides the platform default binary path when non-empty.
	Path string
}

// Result describes a completed install.
type Result struct {
	Source      string
	Destination string
	Built       bool
}

// New creates an Installer.
func New(cfg Config) (*Installer, error) {
	if cfg.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}
	if cfg.Builder == nil {
		return nil, fmt.Errorf("Builder is required")
	}

	inst := &Installer{
		detector:    cfg.Detector,
		builder:     cfg.Builder,
		getenv:      cfg.Getenv,
		stdout:      cfg.Stdout,
		log:         cfg.Logger,
		destination: cfg.Destination,
	}
	if inst.getenv == nil {
		inst.getenv = os.Getenv
	}
	if inst.stdout == nil {
		inst.stdout = io.Discard
	}
	if inst.log == nil {
		inst.log = logging.Nop()
	}
	return inst, nil
}

// Run installs the binary. The first failing step ends the run with an
// error matching one of the Err kinds; nothing done before it is undone.
func (i *Installer) Run(ctx context.Context, opts Options) (*Result, error) {
	info, target, err := Resolve(ctx, i.detector, i.getenv)
	if err != nil {
		return nil, err
	}
	i.log.Debug("detected platform", "os", info.OS, "arch", info.Arch, "distro", info.Distro, "version", info.Version)
	if i.destination != "" {
		target.DestDir = i.destination
	}

	src := target.BinaryName
	if opts.Path != "" {
		src = opts.Path
	}
	dst := filepath.Join(target.DestDir, filepath.Base(src))
	i.log.Debug("resolved install target", "source", src, "destination", dst)

	res := &Result{Source: src, Destination: dst}

	if _, err := os.Stat(src); err != nil {
		i.log.Info("binary not found, building", "path", src, "reason", err)
		if err := i.build(ctx, src); err != nil {
			return nil, err
		}
		res.Built = true
		fmt.Fprintf(i.stdout, "Successfully built binary: %s\n", src)
	}

	if err := os.MkdirAll(target.DestDir, 0o755); err != nil {
		return nil, &StepError{Kind: ErrInstallFailed, Op: OpCreateDir, Err: err}
	}

	if err := MoveFile(src, dst); err != nil {
		if res.Built {
			i.log.Warn("built binary left in place", "path", src)
		}
		return nil, &StepError{Kind: ErrInstallFailed, Op: OpMove, Err: err}
	}

	i.log.Info("installed binary", "destination", dst)
	fmt.Fprintf(i.stdout, "Successfully moved to %s\n", dst)
	return res, nil
}

// Resolve detects the host platform and maps it to its install target. It is
// the first step of Run, exposed so callers can reject an unsupported host
// before doing anything else.
func Resolve(ctx context.Context, d platform.Detector, getenv func(string) string) (*platform.Info, Target, error) {
	info, err := d.Detect(ctx)
	if err != nil {
		return nil, Target{}, &StepError{Kind: ErrUnsupportedPlatform, Op: OpDetect, Err: err}
	}
	target, err := ResolveTarget(info, getenv)
	if err != nil {
		return info, Target{}, err
	}
	return info, target, nil
}

func (i *Installer) build(ctx context.Context, output string) error {
	if err := i.builder.Build(ctx, output); err != nil {
		return &StepError{Kind: ErrBuildFailed, Op: OpBuild, Err: err}
	}
	if _, err := os.Stat(output); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("build finished but %s was not produced", output)
		}
		return &StepError{Kind: ErrBuildFailed, Op: OpBuild, Err: err}
	}
	return nil
}
