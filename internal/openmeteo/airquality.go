package openmeteo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// AirQuality fetches the current AQI block plus a two-day hourly
// pollutant window for a city.
func (c *Client) AirQuality(ctx context.Context, city weather.City) (*weather.AirQualityResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%g", city.Lat))
	values.Set("longitude", fmt.Sprintf("%g", city.Lon))
	values.Set("current", "us_aqi,european_aqi,pm2_5,pm10")
	values.Set("hourly", "us_aqi,pm2_5,pm10")
	values.Set("timezone", "Asia/Kolkata")
	values.Set("forecast_days", "2")

	var out weather.AirQualityResponse
	u := fmt.Sprintf("%s?%s", c.endpoints.AirQuality, values.Encode())
	if err := c.getJSON(ctx, c.airQualityCB, u, &out); err != nil {
		return nil, fmt.Errorf("air quality: %w", err)
	}
	return &out, nil
}
