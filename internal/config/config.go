// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for the coaching service.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `yaml:"listen_addr"`
	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`
	// StaticDir serves a web frontend when set.
	StaticDir string `yaml:"static_dir"`
	// CameraID selects the capture device for the live pipeline.
	CameraID int `yaml:"camera_id"`
	// FrameInterval is the sampling stride for uploaded videos.
	FrameInterval int `yaml:"frame_interval"`
	// MotionThreshold is the percent of changed pixels that counts as
	// motion.
	MotionThreshold float64 `yaml:"motion_threshold"`
	// WindowSize is the temporal analysis window in frames.
	WindowSize int `yaml:"window_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:      ":8000",
		DBPath:          "formcoach.db",
		CameraID:        0,
		FrameInterval:   5,
		MotionThreshold: 1.0,
		WindowSize:      10,
	}
}

// Load reads the configuration from path, layering the file's values over
// the defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.FrameInterval < 1 {
		return fmt.Errorf("frame_interval must be at least 1")
	}
	if c.MotionThreshold <= 0 {
		return fmt.Errorf("motion_threshold must be positive")
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1")
	}
	return nil
}
