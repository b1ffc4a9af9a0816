package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pradeeppeddineni/weather-app/internal/store"
	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

func testApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()

	app := fiber.New()
	memStore := store.NewMemoryStore()
	svc := weather.NewService(memStore, nil, nil)
	RegisterRoutes(app, svc, nil)
	return app, memStore
}

func TestListCities(t *testing.T) {
	app, memStore := testApp(t)

	// One city with a bundle, the rest never fetched.
	memStore.Set("Kota", weather.Bundle{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Cities []struct {
			City    weather.City               `json:"city"`
			Current *weather.CurrentConditions `json:"current"`
		} `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Cities) != len(weather.DefaultCities) {
		t.Fatalf("expected %d cities, got %d", len(weather.DefaultCities), len(body.Cities))
	}

	for _, c := range body.Cities {
		if c.City.Name == "Kota" {
			if c.Current == nil {
				t.Error("expected resolved conditions for fetched city")
			}
		} else if c.Current != nil {
			t.Errorf("expected nil conditions for unfetched city %s", c.City.Name)
		}
	}
}

func TestCityDetailNotFound(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/Atlantis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestCityDetail(t *testing.T) {
	app, memStore := testApp(t)

	memStore.Set("Kota", weather.Bundle{
		Daily: []weather.DailyRecord{{Date: "2026-02-01", Max: 30, Min: 20}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/Kota", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		City   weather.City   `json:"city"`
		Bundle weather.Bundle `json:"bundle"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.City.Name != "Kota" {
		t.Errorf("expected Kota, got %s", body.City.Name)
	}
	if len(body.Bundle.Daily) != 1 {
		t.Errorf("expected bundle daily data in response")
	}
}

func TestAddCityValidation(t *testing.T) {
	app, _ := testApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing coordinates", `{"name": "Pune"}`},
		{"not json", `name=Pune`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cities", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
		})
	}
}

func TestRemoveCityNotFound(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cities/Atlantis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestSearchQueryValidation(t *testing.T) {
	app, _ := testApp(t)

	// Missing and too-short queries are rejected before any upstream
	// call.
	for _, target := range []string{"/api/v1/search", "/api/v1/search?q=a"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}
