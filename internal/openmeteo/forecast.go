package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

var forecastDailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"weather_code",
	"sunshine_duration",
	"precipitation_sum",
	"precipitation_hours",
	"precipitation_probability_max",
	"sunrise",
	"sunset",
	"uv_index_max",
	"daylight_duration",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
	"wind_direction_10m_dominant",
	"apparent_temperature_max",
	"apparent_temperature_min",
}

var forecastHourlyFields = []string{
	"temperature_2m",
	"weather_code",
	"relative_humidity_2m",
	"wind_speed_10m",
	"precipitation_probability",
	"precipitation",
	"apparent_temperature",
	"dew_point_2m",
	"visibility",
	"wind_direction_10m",
	"wind_gusts_10m",
	"cloud_cover",
	"is_day",
	"cape",
	"surface_pressure",
}

var forecastCurrentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"weather_code",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
	"surface_pressure",
	"cloud_cover",
	"is_day",
}

// Forecast fetches the forecast for a city: a live current block, 16
// days of daily and hourly data ahead, and 5 past days overlapping the
// archive.
func (c *Client) Forecast(ctx context.Context, city weather.City) (*weather.ForecastResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%g", city.Lat))
	values.Set("longitude", fmt.Sprintf("%g", city.Lon))
	values.Set("current", strings.Join(forecastCurrentFields, ","))
	values.Set("daily", strings.Join(forecastDailyFields, ","))
	values.Set("hourly", strings.Join(forecastHourlyFields, ","))
	values.Set("timezone", "Asia/Kolkata")
	values.Set("forecast_days", "16")
	values.Set("past_days", "5")

	var out weather.ForecastResponse
	u := fmt.Sprintf("%s?%s", c.endpoints.Forecast, values.Encode())
	if err := c.getJSON(ctx, c.forecastCB, u, &out); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	return &out, nil
}
