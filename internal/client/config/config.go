// Package config handles configuration for the CLI client: defaults, an
// optional JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the zorgkaart CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP endpoint.
//   - SearchDebounce: quiet period applied to search input before the list
//     is re-filtered.
type Config struct {
	ServerBaseURL  string
	SearchDebounce time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.SearchDebounce = 200 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
