package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pyrod3v/gitman/internal/platform"
)

func linuxDetector() platform.Detector {
	return platform.StaticDetector{Info: &platform.Info{OS: "linux", Arch: "amd64", ArchRaw: "amd64"}}
}

func TestParser_ParseString_Empty(t *testing.T) {
	cfg, err := NewParser(nil).ParseString(context.Background(), ``)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if cfg.Build.Tool != DefaultBuildTool {
		t.Errorf("Build.Tool = %q, want %q", cfg.Build.Tool, DefaultBuildTool)
	}
	if cfg.Build.Package != DefaultBuildPackage {
		t.Errorf("Build.Package = %q, want %q", cfg.Build.Package, DefaultBuildPackage)
	}
	if cfg.Destination != "" || len(cfg.Build.Flags) != 0 {
		t.Errorf("unexpected non-default config: %+v", cfg)
	}
}

func TestDefault_BuildsGitmanCommand(t *testing.T) {
	cfg := Default()
	if cfg.Build.Package != "./cmd/gitman" {
		t.Errorf("Build.Package = %q, want ./cmd/gitman", cfg.Build.Package)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParser_ParseString_Package(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"unset keeps default", `install = { build = { tool = "go" } }`, DefaultBuildPackage},
		{"override", `install = { build = { package = "./cmd/other" } }`, "./cmd/other"},
		{"empty clears", `install = { build = { package = "" } }`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewParser(nil).ParseString(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if cfg.Build.Package != tt.want {
				t.Errorf("Build.Package = %q, want %q", cfg.Build.Package, tt.want)
			}
		})
	}
}

func TestParser_ParseString_Full(t *testing.T) {
	skipOnWindows(t)
	code := `
		install = {
			build = {
				tool = "go1.25",
				flags = { "-trimpath", "-ldflags=-s -w" },
				package = "./cmd/gitman",
			},
			destination = "/opt/gitman/bin",
		}
	`

	cfg, err := NewParser(nil).ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if cfg.Build.Tool != "go1.25" {
		t.Errorf("Build.Tool = %q, want go1.25", cfg.Build.Tool)
	}
	if got := strings.Join(cfg.Build.Flags, "|"); got != "-trimpath|-ldflags=-s -w" {
		t.Errorf("Build.Flags = %q", cfg.Build.Flags)
	}
	if cfg.Build.Package != "./cmd/gitman" {
		t.Errorf("Build.Package = %q, want ./cmd/gitman", cfg.Build.Package)
	}
	if cfg.Destination != "/opt/gitman/bin" {
		t.Errorf("Destination = %q, want /opt/gitman/bin", cfg.Destination)
	}
}

func TestParser_ParseString_PlatformConditional(t *testing.T) {
	skipOnWindows(t)
	code := `
		install = {
			destination = platform.when(platform.is_linux, "/opt/bin"),
			build = { package = platform.is_windows and "./win" or "./cmd/gitman" },
		}
	`

	cfg, err := NewParser(linuxDetector()).ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if cfg.Destination != "/opt/bin" {
		t.Errorf("Destination = %q, want /opt/bin", cfg.Destination)
	}
	if cfg.Build.Package != "./cmd/gitman" {
		t.Errorf("Build.Package = %q, want ./cmd/gitman", cfg.Build.Package)
	}
	if cfg.Build.Tool != DefaultBuildTool {
		t.Errorf("Build.Tool = %q, want default", cfg.Build.Tool)
	}
}

func TestParser_ParseString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
	}{
		{"syntax error", `install = {`, "Lua error"},
		{"install not a table", `install = "go"`, "invalid 'install' table"},
		{"build not a table", `install = { build = "go" }`, "invalid value for build"},
		{"tool not a string", `install = { build = { tool = 42 } }`, "invalid value for build.tool"},
		{"flags not a table", `install = { build = { flags = "-v" } }`, "invalid value for build.flags"},
		{"flag not a string", `install = { build = { flags = { true } } }`, "invalid value for build.flags[]"},
		{"output flag", `install = { build = { flags = { "-o", "x" } } }`, "invalid config"},
		{"relative destination", `install = { destination = "bin" }`, "invalid config"},
		{"os removed", `os.execute("true")`, "Lua error"},
		{"io removed", `io.open("/etc/passwd")`, "Lua error"},
		{"require removed", `require("socket")`, "Lua error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).ParseString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q (detail: %s)", perr.Message, tt.wantMsg, perr.Detail)
			}
		})
	}
}

func TestParser_Load(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewParser(nil).Load(context.Background(), t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Build.Tool != DefaultBuildTool {
			t.Errorf("Build.Tool = %q, want default", cfg.Build.Tool)
		}
	})

	t.Run("reads .gitman/install.lua", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `install = { build = { package = "./cmd/gitman" } }`)

		cfg, err := NewParser(linuxDetector()).Load(context.Background(), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Build.Package != "./cmd/gitman" {
			t.Errorf("Build.Package = %q, want ./cmd/gitman", cfg.Build.Package)
		}
	})

	t.Run("oversized file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "-- "+strings.Repeat("x", MaxConfigSize))

		_, err := NewParser(nil).Load(context.Background(), dir)
		if err == nil || !strings.Contains(err.Error(), "too large") {
			t.Errorf("Load() error = %v, want too large", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	abs := "/usr/local/bin"
	if runtime.GOOS == "windows" {
		abs = `C:\Program Files\bin`
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", *Default(), ""},
		{"absolute destination", Config{Build: Build{Tool: "go"}, Destination: abs}, ""},
		{"blank tool", Config{Build: Build{Tool: "  "}}, "build.tool"},
		{"-o= flag", Config{Build: Build{Tool: "go", Flags: []string{"-o=x"}}}, "build.flags[0]"},
		{"relative destination", Config{Build: Build{Tool: "go"}, Destination: "bin"}, "destination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v (%T), want *ValidationError", err, err)
			}
			if verr.Field != tt.wantErr {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	err := &ParseError{
		Message: "Lua error",
		Detail:  "<string>:1: unexpected EOF\nstack traceback:\n\t[G]: ?",
	}

	if got := FormatError(err, false); got != "Lua error: <string>:1: unexpected EOF" {
		t.Errorf("FormatError(verbose=false) = %q", got)
	}
	if got := FormatError(err, true); !strings.Contains(got, "stack traceback") {
		t.Errorf("FormatError(verbose=true) = %q, want traceback", got)
	}
	if got := FormatError(os.ErrPermission, false); got != os.ErrPermission.Error() {
		t.Errorf("FormatError(plain) = %q", got)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// skipOnWindows skips tests whose Unix-style destinations are not absolute on Windows.
func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses Unix absolute paths")
	}
}
