package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// historicalStart is the beginning of the archive window the dashboard
// charts from.
const historicalStart = "2026-01-01"

// archiveLagDays keeps the archive request clear of the window the
// archive API has not yet consolidated; the forecast's past_days
// covers it instead.
const archiveLagDays = 5

// Archive fetches the historical daily record for a city, from the
// season start up to five days ago, in IST.
func (c *Client) Archive(ctx context.Context, city weather.City) (*weather.ArchiveResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%g", city.Lat))
	values.Set("longitude", fmt.Sprintf("%g", city.Lon))
	values.Set("start_date", historicalStart)
	values.Set("end_date", weather.DaysAgo(time.Now(), archiveLagDays))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	values.Set("timezone", "Asia/Kolkata")

	var out weather.ArchiveResponse
	u := fmt.Sprintf("%s?%s", c.endpoints.Archive, values.Encode())
	if err := c.getJSON(ctx, c.archiveCB, u, &out); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return &out, nil
}
