// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Krishi Mitre CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API (includes the /api prefix).
//   - ForecastBaseURL / GeocodingBaseURL / ReverseGeocodeBaseURL: public
//     weather and geocoding services consumed directly by the client.
//   - SessionDBPath: sqlite file holding the persisted session.
//   - RequestTimeout: per-request timeout for outbound HTTP calls.
type Config struct {
	APIBaseURL            string
	ForecastBaseURL       string
	GeocodingBaseURL      string
	ReverseGeocodeBaseURL string
	SessionDBPath         string
	RequestTimeout        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.ForecastBaseURL = "https://api.open-meteo.com/v1"
	c.GeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
	c.ReverseGeocodeBaseURL = "https://nominatim.openstreetmap.org"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
