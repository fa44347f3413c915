package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyrod3v/gitman/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser evaluates install.lua files.
type Parser struct {
	detector platform.Detector
}

// NewParser returns a Parser that exposes the host detected by detector to
// the configuration. A nil detector leaves the platform table undefined.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError is a configuration error with a short message for users and
// the raw detail behind it.
type ParseError struct {
	Message string
	Detail  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// Load reads <dir>/.gitman/install.lua. A missing file yields Default().
func (p *Parser) Load(ctx context.Context, dir string) (*Config, error) {
	path := filepath.Join(dir, DirName, FileName)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > MaxConfigSize {
		return nil, &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s is %d bytes, maximum is %d", path, info.Size(), MaxConfigSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return p.ParseString(ctx, string(data))
}

// ParseString evaluates luaCode and extracts the install table. Fields the
// code leaves out keep their Default() values.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{Message: "Lua error", Detail: err.Error()}
	}

	cfg, err := extractConfig(L)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Message: "invalid config", Detail: err.Error()}
	}

	return cfg, nil
}

func extractConfig(L *lua.LState) (*Config, error) {
	cfg := Default()

	global := L.GetGlobal(luaGlobalInstall)
	switch global.Type() {
	case lua.LTNil:
		return cfg, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid '%s' table", luaGlobalInstall),
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}
	table := global.(*lua.LTable)

	switch build := table.RawGetString(luaFieldBuild); build.Type() {
	case lua.LTNil:
	case lua.LTTable:
		if err := extractBuild(build.(*lua.LTable), &cfg.Build); err != nil {
			return nil, err
		}
	default:
		return nil, typeError(luaFieldBuild, "table", build)
	}

	dest, err := optionalString(table, luaFieldDest, luaFieldDest)
	if err != nil {
		return nil, err
	}
	cfg.Destination = dest

	return cfg, nil
}

func extractBuild(table *lua.LTable, build *Build) error {
	tool, err := optionalString(table, luaFieldTool, "build.tool")
	if err != nil {
		return err
	}
	if tool != "" {
		build.Tool = tool
	}

	// An explicit empty string clears the default package.
	if table.RawGetString(luaFieldPackage) != lua.LNil {
		pkg, err := optionalString(table, luaFieldPackage, "build.package")
		if err != nil {
			return err
		}
		build.Package = pkg
	}

	switch flags := table.RawGetString(luaFieldFlags); flags.Type() {
	case lua.LTNil:
	case lua.LTTable:
		var perr error
		flags.(*lua.LTable).ForEach(func(_, v lua.LValue) {
			if perr != nil {
				return
			}
			if v.Type() != lua.LTString {
				perr = typeError("build.flags[]", "string", v)
				return
			}
			build.Flags = append(build.Flags, v.String())
		})
		if perr != nil {
			return perr
		}
	default:
		return typeError("build.flags", "table", flags)
	}

	return nil
}

func optionalString(table *lua.LTable, key, field string) (string, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return strings.TrimSpace(v.String()), nil
	default:
		return "", typeError(field, "string", v)
	}
}

func typeError(field, want string, got lua.LValue) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("invalid value for %s", field),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError renders err for users. Unless verbose, Lua stack tracebacks
// are cut from parse errors.
func FormatError(err error, verbose bool) string {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", perr.Message, perr.Detail)
	}
	detail := perr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", perr.Message, detail)
}
