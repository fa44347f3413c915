package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the install configuration.
type Config struct {
	Build Build
	// Destination replaces the platform default install directory when set.
	Destination string
}

// Build describes the command used when the binary is missing:
// <Tool> build <Flags...> -o <path> [Package].
type Build struct {
	Tool    string
	Flags   []string
	Package string
}

// Default returns the configuration used when no install.lua exists.
func Default() *Config {
	return &Config{
		Build: Build{Tool: DefaultBuildTool, Package: DefaultBuildPackage},
	}
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for values the installer cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Build.Tool) == "" {
		return &ValidationError{Field: "build.tool", Message: "cannot be empty"}
	}

	for i, flag := range c.Build.Flags {
		if flag == "-o" || strings.HasPrefix(flag, "-o=") {
			return &ValidationError{
				Field:   fmt.Sprintf("build.flags[%d]", i),
				Message: "output path is set by the installer",
			}
		}
	}

	if c.Destination != "" && !filepath.IsAbs(c.Destination) {
		return &ValidationError{
			Field:   "destination",
			Message: fmt.Sprintf("must be an absolute path, got %q", c.Destination),
		}
	}

	return nil
}
