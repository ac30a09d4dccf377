package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/krishimitre/krishimitre/internal/flagx"
	"github.com/krishimitre/krishimitre/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL            string         `json:"api_base_url"`
	ForecastBaseURL       string         `json:"forecast_base_url"`
	GeocodingBaseURL      string         `json:"geocoding_base_url"`
	ReverseGeocodeBaseURL string         `json:"reverse_geocode_base_url"`
	SessionDBPath         string         `json:"session_db_path"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file resolved via
// the -c/-config flags. Missing file path means no overlay. Empty fields in
// the file leave the current value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.ForecastBaseURL != "" {
		cfg.ForecastBaseURL = jc.ForecastBaseURL
	}
	if jc.GeocodingBaseURL != "" {
		cfg.GeocodingBaseURL = jc.GeocodingBaseURL
	}
	if jc.ReverseGeocodeBaseURL != "" {
		cfg.ReverseGeocodeBaseURL = jc.ReverseGeocodeBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
