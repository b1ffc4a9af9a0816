package openmeteo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// Flood fetches the seven-day river-discharge forecast for a city.
func (c *Client) Flood(ctx context.Context, city weather.City) (*weather.FloodResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%g", city.Lat))
	values.Set("longitude", fmt.Sprintf("%g", city.Lon))
	values.Set("daily", "river_discharge_mean,river_discharge_max")
	values.Set("forecast_days", "7")

	var out weather.FloodResponse
	u := fmt.Sprintf("%s?%s", c.endpoints.Flood, values.Encode())
	if err := c.getJSON(ctx, c.floodCB, u, &out); err != nil {
		return nil, fmt.Errorf("flood: %w", err)
	}
	return &out, nil
}
