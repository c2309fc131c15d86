// Package config loads the default design values used when a command
// line or project file leaves them out.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the design defaults
type Config struct {
	Voltage        float64 `toml:"voltage"`          // V, nominal
	MaxDropPercent float64 `toml:"max_drop_percent"` // %
	CosPhi         float64 `toml:"cos_phi"`          // load power factor
	AmbientTemp    float64 `toml:"ambient_temp"`     // °C
	Device         string  `toml:"device"`           // protective device family
	SoilKj         float64 `toml:"soil_kj"`          // field soil factor for buried methods
	SourceIk       float64 `toml:"source_ik"`        // A, source short-circuit current
	SourceCosPhi   float64 `toml:"source_cos_phi"`
	OutputDir      string  `toml:"output_dir"`
}

// Environment variables that override file values
const (
	EnvVoltage   = "GOCABLE_VOLTAGE"
	EnvMaxDrop   = "GOCABLE_MAX_DROP"
	EnvDevice    = "GOCABLE_DEVICE"
	EnvSourceIk  = "GOCABLE_SOURCE_IK"
	EnvOutputDir = "GOCABLE_OUTPUT_DIR"
)

// Defaults returns the built-in defaults for a 400 V installation
func Defaults() Config {
	return Config{
		Voltage:        400,
		MaxDropPercent: 3,
		CosPhi:         0.9,
		AmbientTemp:    30,
		Device:         "neozed-gg",
		SoilKj:         1,
		SourceIk:       10000,
		SourceCosPhi:   0.3,
		OutputDir:      "output",
	}
}

// DefaultPath returns ~/.gocable/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gocable", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults. An empty path means
// DefaultPath; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating the directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv loads a .env file from the working directory if present and
// overrides cfg with GOCABLE_* variables.
func ApplyEnv(cfg Config) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvVoltage, &cfg.Voltage},
		{EnvMaxDrop, &cfg.MaxDropPercent},
		{EnvSourceIk, &cfg.SourceIk},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s=%q: %w", f.key, v, err)
		}
		*f.dst = n
	}
	if v := os.Getenv(EnvDevice); v != "" {
		cfg.Device = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no circuit could use
func (c Config) Validate() error {
	for _, v := range []float64{c.Voltage, c.MaxDropPercent, c.CosPhi, c.AmbientTemp, c.SoilKj, c.SourceIk, c.SourceCosPhi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: values must be finite numbers, got %g", v)
		}
	}
	switch {
	case c.Voltage <= 0:
		return fmt.Errorf("config: voltage must be positive, got %g", c.Voltage)
	case c.MaxDropPercent <= 0:
		return fmt.Errorf("config: max_drop_percent must be positive, got %g", c.MaxDropPercent)
	case c.CosPhi <= 0 || c.CosPhi > 1:
		return fmt.Errorf("config: cos_phi must be in (0, 1], got %g", c.CosPhi)
	case c.SourceIk <= 0:
		return fmt.Errorf("config: source_ik must be positive, got %g", c.SourceIk)
	case c.SourceCosPhi < 0 || c.SourceCosPhi > 1:
		return fmt.Errorf("config: source_cos_phi must be in [0, 1], got %g", c.SourceCosPhi)
	}
	return nil
}
