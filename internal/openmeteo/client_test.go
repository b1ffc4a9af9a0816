package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

func testClient(srvURL string) *Client {
	return NewClient(&http.Client{}, Endpoints{
		Archive:    srvURL + "/archive",
		Forecast:   srvURL + "/forecast",
		AirQuality: srvURL + "/air-quality",
		Flood:      srvURL + "/flood",
		Geocoding:  srvURL + "/search",
	})
}

func TestForecastDecodesParallelArrays(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"current": {"time": "2026-02-01T14:15", "temperature_2m": 31.4, "weather_code": 1},
			"daily": {
				"time": ["2026-02-01", "2026-02-02"],
				"temperature_2m_max": [30.1, null],
				"temperature_2m_min": [20.2, 21.0],
				"weather_code": [0, 3],
				"sunshine_duration": [34200.0, null]
			},
			"hourly": {
				"time": ["2026-02-01T13:00", "2026-02-01T14:00"],
				"temperature_2m": [28.5, 29.0],
				"cape": [null, 450.0]
			}
		}`))
	}))
	defer srv.Close()

	fc, err := testClient(srv.URL).Forecast(context.Background(), weather.City{Name: "Kota", Lat: 25.21, Lon: 75.86})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("timezone") != "Asia/Kolkata" {
		t.Errorf("expected fixed timezone, got %q", gotQuery.Get("timezone"))
	}
	if gotQuery.Get("forecast_days") != "16" || gotQuery.Get("past_days") != "5" {
		t.Errorf("expected 16-day lookahead and 5-day lookback, got %q/%q",
			gotQuery.Get("forecast_days"), gotQuery.Get("past_days"))
	}

	if fc.Current == nil || fc.Current.Temperature == nil || *fc.Current.Temperature != 31.4 {
		t.Errorf("current block not decoded: %+v", fc.Current)
	}
	if len(fc.Daily.Time) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(fc.Daily.Time))
	}
	if fc.Daily.TemperatureMax[1] != nil {
		t.Errorf("expected null max to decode as nil")
	}
	if fc.Hourly.Cape[0] != nil || fc.Hourly.Cape[1] == nil || *fc.Hourly.Cape[1] != 450 {
		t.Errorf("cape array not decoded field-by-field: %+v", fc.Hourly.Cape)
	}
}

func TestArchiveQueryWindow(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"daily": {"time": ["2026-01-01"], "temperature_2m_max": [25.0], "temperature_2m_min": [12.0]}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Archive(context.Background(), weather.City{Lat: 25.21, Lon: 75.86}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("start_date") != historicalStart {
		t.Errorf("expected start_date %s, got %q", historicalStart, gotQuery.Get("start_date"))
	}
	if gotQuery.Get("end_date") == "" {
		t.Error("expected end_date set")
	}
	if gotQuery.Get("daily") != "temperature_2m_max,temperature_2m_min,weather_code" {
		t.Errorf("unexpected daily fields %q", gotQuery.Get("daily"))
	}
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Open-Meteo omits the results key entirely when nothing
		// matches.
		w.Write([]byte(`{"generationtime_ms": 0.5}`))
	}))
	defer srv.Close()

	results, err := testClient(srv.URL).Search(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("no matches must not error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty slice, got %v", results)
	}
}

func TestFloodMissingDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	fl, err := testClient(srv.URL).Flood(context.Background(), weather.City{Lat: 25.21, Lon: 75.86})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fl.Daily != nil {
		t.Errorf("expected nil daily block, got %+v", fl.Daily)
	}
	if got := weather.ExtractFlood(fl); got != nil {
		t.Errorf("expected no flood data, got %+v", got)
	}
}
