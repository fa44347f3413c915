// Package settings loads the user settings of the gitman command from
// config.yaml.
//
// The file is searched in the project's .gitman directory first and then in
// the user config directory. The user file is created on first use and the
// defaults of any keys it lacks are written back to it.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pyrod3v/gitman/internal/platform"
)

// Keys of config.yaml. Viper matches them case-insensitively.
const (
	KeyCacheGitignores = "CacheGitignores"
	KeyCacheLicenses   = "CacheLicenses"
	KeyLogLevel        = "LogLevel"
)

const (
	// AppName names the user config directory.
	AppName = "gitman"
	// ProjectDir holds project-local settings, relative to the working directory.
	ProjectDir = ".gitman"
	// FileName is the settings file in either location.
	FileName = "config.yaml"
	// EnvLogLevel overrides the LogLevel key.
	EnvLogLevel = "GITMAN_LOG"
	// EnvConfigHome relocates the user config directory.
	EnvConfigHome = "XDG_CONFIG_HOME"
)

// Settings are the resolved gitman settings.
type Settings struct {
	// ConfigDir is the user config directory holding custom templates and
	// the template cache.
	ConfigDir string
	// File is the config.yaml that was read.
	File string

	CacheGitignores bool
	CacheLicenses   bool
	LogLevel        string
}

// ConfigDir returns the user config directory: $XDG_CONFIG_HOME/gitman when
// set, otherwise %USERPROFILE%\AppData\Roaming\gitman on Windows and
// ~/.config/gitman elsewhere.
func ConfigDir(info *platform.Info, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if xdg := getenv(EnvConfigHome); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	if info != nil && info.IsWindows() {
		return filepath.Join(home, "AppData", "Roaming", AppName), nil
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load reads config.yaml from workDir/.gitman or configDir, in that order.
// getenv supplies EnvLogLevel; nil means os.Getenv.
func Load(configDir, workDir string, getenv func(string) string) (*Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	userFile := filepath.Join(configDir, FileName)
	if err := touch(userFile); err != nil {
		return nil, fmt.Errorf("create config file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(workDir, ProjectDir))
	v.AddConfigPath(configDir)

	v.SetDefault(KeyCacheGitignores, false)
	v.SetDefault(KeyCacheLicenses, false)
	v.SetDefault(KeyLogLevel, "warn")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Project files are left as the user wrote them.
	if v.ConfigFileUsed() == userFile && missingKeys(v) {
		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("write config defaults: %w", err)
		}
	}

	level := v.GetString(KeyLogLevel)
	if env := getenv(EnvLogLevel); env != "" {
		level = env
	}

	return &Settings{
		ConfigDir:       configDir,
		File:            v.ConfigFileUsed(),
		CacheGitignores: v.GetBool(KeyCacheGitignores),
		CacheLicenses:   v.GetBool(KeyCacheLicenses),
		LogLevel:        level,
	}, nil
}

func missingKeys(v *viper.Viper) bool {
	for _, key := range []string{KeyCacheGitignores, KeyCacheLicenses, KeyLogLevel} {
		if !v.InConfig(key) {
			return true
		}
	}
	return false
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}
