package config

import (
	"encoding/json"
	"os"

	"zorgkaart/internal/flagx"
	"zorgkaart/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Absent fields
// keep their current (default) values.
type JsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	SearchDebounce *timex.Duration `json:"search_debounce"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerBaseURL != nil {
		cfg.ServerBaseURL = *c.ServerBaseURL
	}
	if c.SearchDebounce != nil {
		cfg.SearchDebounce = c.SearchDebounce.Duration
	}
}
