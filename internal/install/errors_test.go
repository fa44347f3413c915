package install

import (
	"errors"
	"io/fs"
	"testing"
)

func TestStepError_Is(t *testing.T) {
	err := error(&StepError{Kind: ErrInstallFailed, Op: OpMove, Err: fs.ErrPermission})

	if !errors.Is(err, ErrInstallFailed) {
		t.Error("expected match with ErrInstallFailed")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected match with the cause")
	}
	if errors.Is(err, ErrBuildFailed) || errors.Is(err, ErrUnsupportedPlatform) {
		t.Error("matched an unrelated kind")
	}
	if got := err.Error(); got != "move binary: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormatError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unsupported platform",
			err:  &UnsupportedPlatformError{System: "FreeBSD"},
			want: "Unsupported operating system: FreeBSD",
		},
		{
			name: "detect",
			err:  &StepError{Kind: ErrUnsupportedPlatform, Op: OpDetect, Err: cause},
			want: "Error detecting operating system: boom",
		},
		{
			name: "build",
			err:  &StepError{Kind: ErrBuildFailed, Op: OpBuild, Err: cause},
			want: "Error building binary: boom",
		},
		{
			name: "create dir",
			err:  &StepError{Kind: ErrInstallFailed, Op: OpCreateDir, Err: cause},
			want: "Error creating destination directory: boom",
		},
		{
			name: "move",
			err:  &StepError{Kind: ErrInstallFailed, Op: OpMove, Err: cause},
			want: "Error moving file: boom",
		},
		{
			name: "other",
			err:  cause,
			want: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}
