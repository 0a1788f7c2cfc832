package config

import (
	"encoding/json"
	"os"

	"zorgkaart/internal/flagx"
	"zorgkaart/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Duration fields
// accept both strings ("200ms") and integer nanoseconds. Absent fields keep
// their current (default) values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	PasswordDigest   *string         `json:"password_digest"`
	SessionValidity  *timex.Duration `json:"session_validity"`
	NotifyQuiet      *timex.Duration `json:"notify_quiet"`
	RedisAddr        *string         `json:"redis_addr"`
	NominatimBaseURL *string         `json:"nominatim_base_url"`
	NominatimRegion  *string         `json:"nominatim_region"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// Unreadable or invalid files panic: a misconfigured server should not come
// up half-configured.
func parseJson(config *Config) {
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

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.PasswordDigest != nil {
		config.PasswordDigest = *c.PasswordDigest
	}
	if c.SessionValidity != nil {
		config.SessionValidity = c.SessionValidity.Duration
	}
	if c.NotifyQuiet != nil {
		config.NotifyQuiet = c.NotifyQuiet.Duration
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.NominatimBaseURL != nil {
		config.NominatimBaseURL = *c.NominatimBaseURL
	}
	if c.NominatimRegion != nil {
		config.NominatimRegion = *c.NominatimRegion
	}
}
