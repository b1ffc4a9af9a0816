package store

import (
	"testing"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

func openTestDB(t *testing.T) *CityDB {
	t.Helper()
	db, err := OpenCityDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCityDBRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cities := []weather.City{
		{Name: "Pune", Lat: 18.52, Lon: 73.86, Anchor: "l"},
		{Name: "Guwahati", Lat: 26.14, Lon: 91.73, Anchor: "r"},
	}
	if err := db.SaveCustom(cities); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := db.LoadCustom()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(cities) {
		t.Fatalf("expected %d cities, got %d", len(cities), len(got))
	}
	for i := range cities {
		if got[i] != cities[i] {
			t.Errorf("city %d mismatch: got %+v, want %+v", i, got[i], cities[i])
		}
	}
}

func TestCityDBOverwrite(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveCustom([]weather.City{{Name: "Pune", Lat: 18.52, Lon: 73.86}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := db.SaveCustom(nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := db.LoadCustom()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list after overwrite, got %+v", got)
	}
}

func TestCityDBMissingRow(t *testing.T) {
	db := openTestDB(t)

	got, err := db.LoadCustom()
	if err != nil {
		t.Fatalf("missing row must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no cities, got %+v", got)
	}
}

func TestCityDBCorruptValue(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?)", customCitiesKey, "{not json",
	); err != nil {
		t.Fatalf("failed to seed corrupt value: %v", err)
	}

	got, err := db.LoadCustom()
	if err != nil {
		t.Fatalf("corrupt value must read as empty, got error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no cities from corrupt value, got %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get("Kota"); ok {
		t.Error("expected no bundle before Set")
	}

	s.Set("Kota", weather.Bundle{Daily: []weather.DailyRecord{{Date: "2026-02-01"}}})
	b, ok := s.Get("Kota")
	if !ok || len(b.Daily) != 1 {
		t.Errorf("expected stored bundle back, got ok=%v %+v", ok, b)
	}

	// Replacement is wholesale.
	s.Set("Kota", weather.Bundle{})
	b, _ = s.Get("Kota")
	if len(b.Daily) != 0 {
		t.Error("expected bundle replaced, not merged")
	}

	s.Remove("Kota")
	if _, ok := s.Get("Kota"); ok {
		t.Error("expected bundle removed")
	}
}
