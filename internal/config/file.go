package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors docdex.yml. Booleans are pointers so an explicit
// false in the file still overrides the environment.
type fileConfig struct {
	Out     string   `yaml:"out"`
	Verbose *bool    `yaml:"verbose"`
	Workers int      `yaml:"workers"`
	Exclude []string `yaml:"exclude"`

	Serve struct {
		Addr        string `yaml:"addr"`
		APIKey      string `yaml:"api_key"`
		Watch       *bool  `yaml:"watch"`
		Debounce    string `yaml:"debounce"`
		StatsWindow string `yaml:"stats_window"`
	} `yaml:"serve"`
}

// ApplyFile overlays settings from a YAML file onto the config. Fields
// absent from the file keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Out != "" {
		c.Out = fc.Out
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	if fc.Workers != 0 {
		c.Workers = fc.Workers
	}
	if len(fc.Exclude) > 0 {
		c.Excludes = fc.Exclude
	}

	if fc.Serve.Addr != "" {
		c.Addr = fc.Serve.Addr
	}
	if fc.Serve.APIKey != "" {
		c.APIKey = fc.Serve.APIKey
	}
	if fc.Serve.Watch != nil {
		c.Watch = *fc.Serve.Watch
	}
	if fc.Serve.Debounce != "" {
		d, err := time.ParseDuration(fc.Serve.Debounce)
		if err != nil {
			return fmt.Errorf("parse config %s: debounce: %w", path, err)
		}
		c.Debounce = d
	}
	if fc.Serve.StatsWindow != "" {
		d, err := time.ParseDuration(fc.Serve.StatsWindow)
		if err != nil {
			return fmt.Errorf("parse config %s: stats_window: %w", path, err)
		}
		c.StatsWindow = d
	}

	return nil
}
