package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "sheetcols"

// Format failure policies.
const (
	OnErrorFail = "fail"
	OnErrorWarn = "warn"
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Prompt PromptConfig `toml:"prompt"`
	Format FormatConfig `toml:"format"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type PromptConfig struct {
	PageSize  int  `toml:"page_size"`
	AltScreen bool `toml:"alt_screen"`
}

type FormatConfig struct {
	// OnError decides whether a failure to re-apply number formats fails
	// the run ("fail") or is reported as a warning ("warn").
	OnError string `toml:"on_error"`
}

// Default returns the configuration used when no config file exists.
// Logging stays off until log.file names a file.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Format: FormatConfig{
			OnError: OnErrorFail,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" when the
// platform has no config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// LoadConfig loads configuration from the specified config file path. A
// missing file yields the defaults; the file is never created.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Set defaults if missing
	defaults := Default()
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Prompt.PageSize < 0 {
		config.Prompt.PageSize = 0
	}
	config.Format.OnError = strings.ToLower(config.Format.OnError)
	if config.Format.OnError == "" {
		config.Format.OnError = defaults.Format.OnError
	}
	if config.Format.OnError != OnErrorFail && config.Format.OnError != OnErrorWarn {
		return nil, fmt.Errorf("invalid format.on_error %q in %s: want %q or %q",
			config.Format.OnError, configPath, OnErrorFail, OnErrorWarn)
	}

	return &config, nil
}
