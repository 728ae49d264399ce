// Package config resolves tool settings. Precedence, lowest to
// highest: built-in defaults, DOCDEX_* environment variables, an
// optional docdex.yml file, command-line flags (applied by the CLI).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultFileName is the config file looked up in the scanned root.
const DefaultFileName = "docdex.yml"

type Config struct {
	// Out is the index output path. Empty means <root>/INDEX.md.
	Out string

	// Verbose enables per-file skip diagnostics.
	Verbose bool

	// Workers is the parse pool size.
	Workers int

	// Excludes are doublestar patterns dropped during discovery.
	Excludes []string

	// Serve mode.
	Addr        string
	APIKey      string
	Watch       bool
	Debounce    time.Duration
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Out:      os.Getenv("DOCDEX_OUT"),
		Verbose:  envBool("DOCDEX_VERBOSE", false),
		Workers:  envInt("DOCDEX_WORKERS", 4),
		Excludes: envList("DOCDEX_EXCLUDE"),

		Addr:        envOr("DOCDEX_ADDR", ":8090"),
		APIKey:      os.Getenv("DOCDEX_API_KEY"),
		Watch:       envBool("DOCDEX_WATCH", false),
		Debounce:    envDuration("DOCDEX_DEBOUNCE", 500*time.Millisecond),
		StatsWindow: envDuration("DOCDEX_STATS_WINDOW", time.Hour),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	if c.StatsWindow <= 0 {
		return fmt.Errorf("stats window must be positive, got %s", c.StatsWindow)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
