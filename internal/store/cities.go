package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// customCitiesKey is the single key under which the user-added city
// list is saved.
const customCitiesKey = "customCities"

// CityDB persists user-added cities in a sqlite key-value table. The
// whole list is stored as one JSON value; corrupt or absent data reads
// back as "no custom cities".
type CityDB struct {
	db *sql.DB
}

// OpenCityDB opens (creating if needed) the sqlite database at path.
// Use ":memory:" for an ephemeral store.
func OpenCityDB(path string) (*CityDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open city db: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &CityDB{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *CityDB) Close() error {
	return c.db.Close()
}

// LoadCustom returns the persisted user-added cities. A missing row or
// an unparseable value yields an empty list without error.
func (c *CityDB) LoadCustom() ([]weather.City, error) {
	var raw string
	err := c.db.QueryRow("SELECT value FROM settings WHERE key = ?", customCitiesKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load custom cities: %w", err)
	}

	var cities []weather.City
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		log.Printf("INFO: ignoring corrupt custom cities value: %v", err)
		return nil, nil
	}
	return cities, nil
}

// SaveCustom replaces the persisted user-added city list.
func (c *CityDB) SaveCustom(cities []weather.City) error {
	if cities == nil {
		cities = []weather.City{}
	}
	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("encode custom cities: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, customCitiesKey, string(raw))
	if err != nil {
		return fmt.Errorf("save custom cities: %w", err)
	}
	return nil
}
