package install

import (
	"errors"
	"fmt"
)

// Error kinds. Every install error matches exactly one of them with errors.Is.
var (
	ErrUnsupportedPlatform = errors.New("unsupported operating system")
	ErrBuildFailed         = errors.New("build failed")
	ErrInstallFailed       = errors.New("install failed")
)

// Install steps, as recorded in StepError.Op.
const (
	OpDetect    = "detect platform"
	OpBuild     = "build binary"
	OpCreateDir = "create destination directory"
	OpMove      = "move binary"
)

// UnsupportedPlatformError reports a host OS gitman cannot be installed on.
type UnsupportedPlatformError struct {
	System string // display name, e.g. "FreeBSD"
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported operating system: %s", e.System)
}

// Is makes the error match ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// StepError is a failed install step.
type StepError struct {
	Kind error  // ErrUnsupportedPlatform, ErrBuildFailed or ErrInstallFailed
	Op   string // one of the Op constants
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StepError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// FormatError renders err as the single line printed to the user.
func FormatError(err error) string {
	var upe *UnsupportedPlatformError
	if errors.As(err, &upe) {
		return fmt.Sprintf("Unsupported operating system: %s", upe.System)
	}

	var se *StepError
	if errors.As(err, &se) {
		switch se.Op {
		case OpDetect:
			return fmt.Sprintf("Error detecting operating system: %v", se.Err)
		case OpBuild:
			return fmt.Sprintf("Error building binary: %v", se.Err)
		case OpCreateDir:
			return fmt.Sprintf("Error creating destination directory: %v", se.Err)
		case OpMove:
			return fmt.Sprintf("Error moving file: %v", se.Err)
		}
	}

	return fmt.Sprintf("Error: %v", err)
}
