package platform

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestRealDetector_Detect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}

	if runtime.GOOS == "linux" {
		// Distro detection may fail and leave everything empty, but never half-filled.
		if info.Distro != "" && info.Family == "" {
			t.Error("Family should be set when Distro is set")
		}
	} else if info.Distro != "" || info.Family != "" || info.Version != "" {
		t.Errorf("distro fields should be empty on %s, got %+v", runtime.GOOS, info)
	}
}

func TestRealDetector_NonLinuxSkipsDistro(t *testing.T) {
	d := &RealDetector{goos: "FreeBSD", goarch: "x86_64"}

	info, err := d.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != "freebsd" {
		t.Errorf("OS = %q, want freebsd", info.OS)
	}
	if info.Arch != "amd64" || info.ArchRaw != "x86_64" {
		t.Errorf("Arch = %q, ArchRaw = %q, want amd64 and x86_64", info.Arch, info.ArchRaw)
	}
	if info.IsSupported() {
		t.Error("freebsd should not be supported")
	}
	if info.Distro != "" {
		t.Errorf("Distro = %q, want empty", info.Distro)
	}
}

func TestRealDetector_CancelledContext(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("distro detection only runs on linux")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// gopsutil may answer from cache before looking at ctx; either outcome
	// is fine as long as an error is the cancellation.
	if _, err := NewDetector().Detect(ctx); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Detect() error = %v, want context.Canceled", err)
	}
}

func TestInfo_IsSupported(t *testing.T) {
	tests := []struct {
		os   string
		want bool
	}{
		{"linux", true},
		{"darwin", true},
		{"windows", true},
		{"freebsd", false},
		{"openbsd", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			info := &Info{OS: tt.os}
			if got := info.IsSupported(); got != tt.want {
				t.Errorf("IsSupported() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStaticDetector(t *testing.T) {
	want := &Info{OS: "darwin", Arch: "arm64"}

	got, err := StaticDetector{Info: want}.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got != want {
		t.Errorf("Detect() = %+v, want %+v", got, want)
	}

	boom := errors.New("boom")
	if _, err := (StaticDetector{Err: boom}).Detect(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Detect() error = %v, want %v", err, boom)
	}
}

type countingDetector struct {
	calls int
}

func (c *countingDetector) Detect(ctx context.Context) (*Info, error) {
	c.calls++
	return &Info{OS: "linux"}, nil
}

func TestCached(t *testing.T) {
	inner := &countingDetector{}
	d := Cached(inner)

	first, err := d.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	second, _ := d.Detect(context.Background())

	if inner.calls != 1 {
		t.Errorf("inner detector called %d times, want 1", inner.calls)
	}
	if first != second {
		t.Error("Cached returned different Info values")
	}
}
