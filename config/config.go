package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/serialscope/serialscope/engine"
)

// Config holds user-configurable defaults. The momentum constants and
// the zoom floor live here on purpose: they are feel parameters, not
// correctness constraints, and people do retune them.
type Config struct {
	Capacity           int     `json:"capacity"`
	Window             int     `json:"window"`
	MinWindow          int     `json:"min_window"`
	FPS                int     `json:"fps"`
	MomentumHalfLifeMS int     `json:"momentum_half_life_ms"`
	MomentumMinSpeed   float64 `json:"momentum_min_speed"`

	Port string `json:"port"`
	Baud int    `json:"baud"`

	Autoscale bool   `json:"autoscale"`
	TimeMode  string `json:"time_mode"` // "relative" or "absolute"
}

// Default returns a config with sensible defaults.
func Default() Config {
	ec := engine.DefaultConfig()
	return Config{
		Capacity:           ec.Capacity,
		Window:             ec.Window,
		MinWindow:          ec.MinWindow,
		FPS:                30,
		MomentumHalfLifeMS: int(ec.MomentumHalfLife / time.Millisecond),
		MomentumMinSpeed:   ec.MomentumMinSpeed,
		Baud:               115200,
		Autoscale:          true,
		TimeMode:           "relative",
	}
}

// Engine converts the file values into engine tunables. The engine
// clamps out-of-range values itself.
func (c Config) Engine() engine.Config {
	return engine.Config{
		Capacity:         c.Capacity,
		Window:           c.Window,
		MinWindow:        c.MinWindow,
		MomentumHalfLife: time.Duration(c.MomentumHalfLifeMS) * time.Millisecond,
		MomentumMinSpeed: c.MomentumMinSpeed,
	}
}

// Path returns ~/.config/serialscope/config.json (or XDG_CONFIG_HOME).
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "serialscope", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("serialscope: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
