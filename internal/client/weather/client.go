// Package weather wraps the public geocoding and forecast services the
// weather view depends on. The upstream documents are large; only the
// fields the CLI renders are decoded, everything else is ignored.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrPlaceNotFound is returned when geocoding yields no match.
var ErrPlaceNotFound = errors.New("place not found")

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// Current holds the current conditions block of a forecast.
type Current struct {
	Temperature float64 `json:"temperature_2m"`
	Humidity    float64 `json:"relative_humidity_2m"`
	WeatherCode int     `json:"weather_code"`
	WindSpeed   float64 `json:"wind_speed_10m"`
}

// Daily holds the parallel per-day arrays of a forecast.
type Daily struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	Precipitation  []float64 `json:"precipitation_sum"`
}

// Forecast is the subset of the forecast document the CLI renders.
type Forecast struct {
	Current Current `json:"current"`
	Daily   Daily   `json:"daily"`
}

// Client talks to the forecast, geocoding and reverse-geocoding services.
type Client struct {
	forecastBase string
	geocodeBase  string
	reverseBase  string
	hc           *http.Client
}

func NewClient(forecastBase, geocodeBase, reverseBase string, timeout time.Duration) *Client {
	return &Client{
		forecastBase: strings.TrimRight(forecastBase, "/"),
		geocodeBase:  strings.TrimRight(geocodeBase, "/"),
		reverseBase:  strings.TrimRight(reverseBase, "/"),
		hc:           &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("weather service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("weather service: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Geocode resolves a place name to coordinates, taking the first match.
func (c *Client) Geocode(ctx context.Context, place string) (*Location, error) {
	u := fmt.Sprintf("%s/search?name=%s&count=1&language=en&format=json",
		c.geocodeBase, url.QueryEscape(place))

	var doc struct {
		Results []Location `json:"results"`
	}
	if err := c.getJSON(ctx, u, &doc); err != nil {
		return nil, err
	}
	if len(doc.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlaceNotFound, place)
	}
	return &doc.Results[0], nil
}

// Forecast fetches current conditions and the daily outlook for a point.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	u := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f"+
		"&current=temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"+
		"&daily=weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"+
		"&timezone=auto",
		c.forecastBase, lat, lon)

	var f Forecast
	if err := c.getJSON(ctx, u, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ReverseGeocode resolves coordinates to a display name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%.6f&lon=%.6f", c.reverseBase, lat, lon)

	var doc struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.getJSON(ctx, u, &doc); err != nil {
		return "", err
	}
	return doc.DisplayName, nil
}
