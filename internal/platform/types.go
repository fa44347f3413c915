// Package platform detects the host the installer runs on.
//
// The operating system decides where gitman is installed and what the
// binary is called, so detection is the first step of every install. On
// Linux the distribution is also read through gopsutil; it only feeds
// diagnostics and the Lua configuration, and a failed lookup never stops an
// install.
package platform

import (
	"context"
	"strings"
)

// Operating system identifiers, as reported by runtime.GOOS.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Linux distribution families.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine"
	FamilyUnknown = "unknown"
)

// Info describes the host.
type Info struct {
	OS      string // normalized GOOS, e.g. "linux", "freebsd"
	Arch    string // normalized arch, e.g. "amd64", "arm64"
	ArchRaw string // value the arch was normalized from
	Distro  string // Linux only, e.g. "ubuntu"
	Family  string // Linux only, e.g. "debian"
	Version string // Linux only, e.g. "22.04"
}

// IsLinux reports whether the host runs Linux.
func (i *Info) IsLinux() bool { return i.OS == OSLinux }

// IsMacOS reports whether the host runs macOS.
func (i *Info) IsMacOS() bool { return i.OS == OSDarwin }

// IsWindows reports whether the host runs Windows.
func (i *Info) IsWindows() bool { return i.OS == OSWindows }

// IsSupported reports whether gitman can be installed on this OS.
func (i *Info) IsSupported() bool {
	return i.IsLinux() || i.IsMacOS() || i.IsWindows()
}

// DisplayName returns the system name shown to users ("Linux", "FreeBSD").
func (i *Info) DisplayName() string {
	return DisplayName(i.OS)
}

// displayNames holds the conventional spelling of GOOS values.
var displayNames = map[string]string{
	"aix":       "AIX",
	"android":   "Android",
	"darwin":    "Darwin",
	"dragonfly": "DragonFly",
	"freebsd":   "FreeBSD",
	"illumos":   "illumos",
	"ios":       "iOS",
	"js":        "JS",
	"linux":     "Linux",
	"netbsd":    "NetBSD",
	"openbsd":   "OpenBSD",
	"plan9":     "Plan9",
	"solaris":   "SunOS",
	"wasip1":    "WASI",
	"windows":   "Windows",
}

// DisplayName maps an OS identifier to its user-facing name. Unknown
// identifiers are returned as given.
func DisplayName(goos string) string {
	if name, ok := displayNames[strings.ToLower(strings.TrimSpace(goos))]; ok {
		return name
	}
	return goos
}

// Detector detects the host platform.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed Info. It lets callers pin the platform,
// which is how tests exercise hosts they do not run on.
type StaticDetector struct {
	Info *Info
	Err  error
}

// Detect returns the configured Info and error.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	return s.Info, s.Err
}
