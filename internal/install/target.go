package install

import (
	"strings"

	"github.com/pyrod3v/gitman/internal/platform"
)

// BinaryName is the base name of the installed executable.
const BinaryName = "gitman"

// UnixDestDir is the install directory on Linux and macOS.
const UnixDestDir = "/usr/local/bin"

// EnvProgramFiles names the variable holding the Windows Program Files path.
const EnvProgramFiles = "ProgramFiles"

// DefaultProgramFiles is used when EnvProgramFiles is unset.
const DefaultProgramFiles = `C:\Program Files`

// Target is where and under which name the binary is installed.
type Target struct {
	DestDir    string
	BinaryName string
}

// ResolveTarget maps the host to its install target. getenv is consulted for
// EnvProgramFiles on Windows; a nil getenv behaves as if nothing is set.
//
// Windows paths are joined with a backslash regardless of the host running
// this code, so the mapping is the same everywhere.
func ResolveTarget(info *platform.Info, getenv func(string) string) (Target, error) {
	switch {
	case info.IsLinux(), info.IsMacOS():
		return Target{DestDir: UnixDestDir, BinaryName: BinaryName}, nil
	case info.IsWindows():
		programFiles := ""
		if getenv != nil {
			programFiles = getenv(EnvProgramFiles)
		}
		if programFiles == "" {
			programFiles = DefaultProgramFiles
		}
		return Target{
			DestDir:    strings.TrimRight(programFiles, `\/`) + `\bin`,
			BinaryName: BinaryName + ".exe",
		}, nil
	default:
		return Target{}, &UnsupportedPlatformError{System: info.DisplayName()}
	}
}
