package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bamsammich/fixity/internal/digest"
)

// MismatchPolicy decides how a MISMATCH affects the exit status.
type MismatchPolicy string

const (
	// MismatchWarn prints the mismatch and exits 0.
	MismatchWarn MismatchPolicy = "warn"
	// MismatchFail prints the mismatch and exits 1.
	MismatchFail MismatchPolicy = "fail"
)

// ParseMismatchPolicy validates s.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch p := MismatchPolicy(s); p {
	case MismatchWarn, MismatchFail:
		return p, nil
	default:
		return "", fmt.Errorf("invalid mismatch policy %q (use warn or fail)", s)
	}
}

// Config represents the optional fixity configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Mismatch  *string `toml:"mismatch"`
	ChunkSize *int    `toml:"chunk_size"`
	Atomic    *bool   `toml:"atomic"`
	Quiet     *bool   `toml:"quiet"`
}

// ThemeConfig holds optional color overrides.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Red    *string `toml:"red"`
	Yellow *string `toml:"yellow"`
	Muted  *string `toml:"muted"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fixity", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML types alone cannot.
func (c Config) Validate() error {
	if c.Defaults.Mismatch != nil {
		if _, err := ParseMismatchPolicy(*c.Defaults.Mismatch); err != nil {
			return err
		}
	}
	if c.Defaults.ChunkSize != nil && !digest.ValidChunkSize(*c.Defaults.ChunkSize) {
		return fmt.Errorf("chunk_size must be between 1 and %d, got %d",
			digest.MaxChunkSize, *c.Defaults.ChunkSize)
	}
	return nil
}
