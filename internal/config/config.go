// Package config loads the optional brew-math configuration file.
//
// Example ~/.config/brew-math/config.yaml:
//
//	storage:
//	  backend: bolt
//	  path: ~/.local/state/brew-math/preferences.db
//	log_level: debug
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/brew-math/internal/storage"
	"github.com/ensigniasec/brew-math/internal/validate"
)

// DefaultPath is where the configuration file is looked up when --config is not set.
const DefaultPath = "~/.config/brew-math/config.yaml"

// Storage selects the preference store.
type Storage struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=json bolt"`
	Path    string `yaml:"path"`
}

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Storage  Storage `yaml:"storage"`
	LogLevel string  `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error"`
}

// Load reads the configuration at path. A missing file yields an empty Config.
func Load(path string) (Config, error) {
	var cfg Config
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if os.IsNotExist(err) {
		logrus.Debugf("No config file at %s; using defaults", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", expanded, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	logrus.Debugf("Loaded config from %s", expanded)
	return cfg, nil
}

// Level returns the configured log level, or fallback when none is set.
func (c Config) Level(fallback logrus.Level) logrus.Level {
	if c.LogLevel == "" {
		return fallback
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fallback
	}
	return lvl
}
