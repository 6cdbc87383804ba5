// Package config loads portcheck settings from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/liamg/portcheck/scan"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Protocol  string   `toml:"protocol"`
	TimeoutMS int      `toml:"timeout_ms"`
	Workers   int      `toml:"workers"`
	Insecure  bool     `toml:"insecure"`
	LogLevel  string   `toml:"log_level"`
	Output    string   `toml:"output"`
	Ports     []string `toml:"ports"`
}

func Default() Config {
	return Config{
		Protocol:  string(scan.DefaultProtocol),
		TimeoutMS: int(scan.DefaultTimeout.Milliseconds()),
		Output:    "table",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file not found: %w", err)
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, key := range meta.Undecoded() {
		logrus.Debugf("Ignoring unknown config key '%s' in %s", key, path)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, ok := scan.ParseProtocol(c.Protocol); !ok {
		return fmt.Errorf("invalid protocol '%s'", c.Protocol)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMS)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	return nil
}
