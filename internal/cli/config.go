package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/coursepath/coursepath/pkg/pipeline"
)

// Config holds user configuration loaded from a TOML file.
//
// The file lives at ~/.config/coursepath/config.toml (or $XDG_CONFIG_HOME)
// and every field is optional; command-line flags override config values.
//
// Example:
//
//	[cache]
//	redis_addr = "localhost:6379"
//
//	[layout]
//	entry_courses = ["CSE 114", "AMS 151"]
//	h_spacing = 180
//
//	[plan]
//	future_mode = true
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
	Plan   PlanConfig   `toml:"plan"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// RedisAddr switches the backend to Redis when set.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// LayoutConfig carries default layout parameters.
type LayoutConfig struct {
	HSpacing     float64  `toml:"h_spacing"`
	VSpacing     float64  `toml:"v_spacing"`
	BaseRadius   float64  `toml:"base_radius"`
	RingSpacing  float64  `toml:"ring_spacing"`
	EntryCourses []string `toml:"entry_courses"`
}

// PlanConfig carries defaults for availability classification.
type PlanConfig struct {
	FutureMode bool `toml:"future_mode"`
}

// ServerConfig configures the HTTP server and its record store.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields an empty config; a missing
// explicit file is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return &Config{}, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return &Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultConfigPath returns the XDG config file location.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// applyLayoutConfig fills pipeline options from config where flags left them
// unset.
func (cfg *Config) applyLayoutConfig(opts *pipeline.Options) {
	if opts.HSpacing == 0 {
		opts.HSpacing = cfg.Layout.HSpacing
	}
	if opts.VSpacing == 0 {
		opts.VSpacing = cfg.Layout.VSpacing
	}
	if opts.BaseRadius == 0 {
		opts.BaseRadius = cfg.Layout.BaseRadius
	}
	if opts.RingSpacing == 0 {
		opts.RingSpacing = cfg.Layout.RingSpacing
	}
	if len(opts.EntryCourses) == 0 {
		opts.EntryCourses = cfg.Layout.EntryCourses
	}
}
