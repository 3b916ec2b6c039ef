// Package config loads pngme settings from a YAML file.
//
// The file is named by the --config flag or, failing that, the PNGME_CONFIG
// environment variable. With neither, Default is used. There is no search
// path.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "PNGME_CONFIG"

// Config holds the settings shared by every command.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Backup makes in-place rewrites copy the original file to <path>.bak
	// first.
	Backup bool `yaml:"backup"`

	// NotFoundMessage is printed by decode when the chunk type is absent.
	NotFoundMessage string `yaml:"not_found_message"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		NotFoundMessage: "Not found",
	}
}

// Load reads the file at path, or the file named by EnvVar when path is
// empty. With neither it returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel to a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
