// Package openmeteo implements the weather.Source contract against the
// Open-Meteo family of APIs: archive, forecast, air quality, flood and
// geocoding.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour for upstream
// requests.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Endpoints holds the base URL of each Open-Meteo API.
type Endpoints struct {
	Archive    string
	Forecast   string
	AirQuality string
	Flood      string
	Geocoding  string
}

// DefaultEndpoints returns the production Open-Meteo hosts.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Archive:    "https://archive-api.open-meteo.com/v1/archive",
		Forecast:   "https://api.open-meteo.com/v1/forecast",
		AirQuality: "https://air-quality-api.open-meteo.com/v1/air-quality",
		Flood:      "https://flood-api.open-meteo.com/v1/flood",
		Geocoding:  "https://geocoding-api.open-meteo.com/v1/search",
	}
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// Client is a resilient Open-Meteo API client. Each API gets its own
// circuit breaker so an outage of one (say, flood) never trips the
// others.
type Client struct {
	client    *http.Client
	endpoints Endpoints
	backoff   BackoffConfig

	archiveCB    *gobreaker.CircuitBreaker
	forecastCB   *gobreaker.CircuitBreaker
	airQualityCB *gobreaker.CircuitBreaker
	floodCB      *gobreaker.CircuitBreaker
	geocodingCB  *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the given HTTP client and base
// URLs.
func NewClient(httpClient *http.Client, endpoints Endpoints) *Client {
	return &Client{
		client:    httpClient,
		endpoints: endpoints,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		archiveCB:    newBreaker("openmeteo-archive"),
		forecastCB:   newBreaker("openmeteo-forecast"),
		airQualityCB: newBreaker("openmeteo-airquality"),
		floodCB:      newBreaker("openmeteo-flood"),
		geocodingCB:  newBreaker("openmeteo-geocoding"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// getJSON executes a GET with retries, exponential backoff and the
// given circuit breaker, then decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, url string, out interface{}) error {
	resp, err := c.do(ctx, cb, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", cb.Name(), err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, cb *gobreaker.CircuitBreaker, url string) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		// An open circuit propagates immediately; retrying would only
		// hammer a host already known to be down.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
