package openmeteo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// Search runs a free-text place search and returns up to eight
// candidates. No matches is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]weather.GeoResult, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "8")
	values.Set("language", "en")
	values.Set("format", "json")

	var out struct {
		Results []weather.GeoResult `json:"results"`
	}
	u := fmt.Sprintf("%s?%s", c.endpoints.Geocoding, values.Encode())
	if err := c.getJSON(ctx, c.geocodingCB, u, &out); err != nil {
		return nil, fmt.Errorf("geocoding: %w", err)
	}
	if out.Results == nil {
		return []weather.GeoResult{}, nil
	}
	return out.Results, nil
}
