package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/client/weather"
)

// Weather geocodes the place and prints current conditions plus the daily
// outlook.
func (a *App) Weather(ctx context.Context, place string) error {
	return a.gate.Allow(func() error {
		loc, err := a.weather.Geocode(ctx, place)
		if errors.Is(err, weather.ErrPlaceNotFound) {
			fmt.Fprintf(a.out, "No match for %q.\n", place)
			return nil
		}
		if err != nil {
			a.printError(err)
			return err
		}

		fc, err := a.weather.Forecast(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			a.printError(err)
			return err
		}

		region := loc.Country
		if loc.Admin1 != "" {
			region = loc.Admin1 + ", " + loc.Country
		}
		fmt.Fprintf(a.out, "%s (%s)\n", loc.Name, region)
		fmt.Fprintf(a.out, "Now: %.1fC, %s, humidity %.0f%%, wind %.1f km/h\n",
			fc.Current.Temperature, weatherDescription(fc.Current.WeatherCode),
			fc.Current.Humidity, fc.Current.WindSpeed)

		for i, day := range fc.Daily.Time {
			if i >= len(fc.Daily.TemperatureMin) || i >= len(fc.Daily.TemperatureMax) ||
				i >= len(fc.Daily.WeatherCode) || i >= len(fc.Daily.Precipitation) {
				break
			}
			fmt.Fprintf(a.out, "%s  %5.1fC .. %5.1fC  %-13s  %.1f mm\n",
				day, fc.Daily.TemperatureMin[i], fc.Daily.TemperatureMax[i],
				weatherDescription(fc.Daily.WeatherCode[i]), fc.Daily.Precipitation[i])
		}
		return nil
	})
}

// weatherDescription maps WMO weather interpretation codes to short labels.
func weatherDescription(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
