package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector detects the platform the process is running on.
type RealDetector struct {
	goos   string
	goarch string
}

// NewDetector creates a detector for the running host.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

// Detect returns OS and architecture from the Go runtime and, on Linux, the
// distribution from gopsutil. A distribution lookup failure leaves the
// distro fields empty; only context cancellation is reported as an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      normalizeOS(d.goos),
		Arch:    normalizeArch(d.goarch),
		ArchRaw: d.goarch,
	}

	if !info.IsLinux() {
		return info, nil
	}

	distro, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if distro = normalizeField(distro); distro != "" {
		info.Distro = distro
		info.Family = mapFamily(family)
		info.Version = normalizeField(version)
	}

	return info, nil
}

type cachedDetector struct {
	once sync.Once
	d    Detector
	info *Info
	err  error
}

// Cached wraps d so detection runs once; later calls return the first
// result. The context of the first call is the one used.
func Cached(d Detector) Detector {
	return &cachedDetector{d: d}
}

func (c *cachedDetector) Detect(ctx context.Context) (*Info, error) {
	c.once.Do(func() {
		c.info, c.err = c.d.Detect(ctx)
	})
	return c.info, c.err
}
