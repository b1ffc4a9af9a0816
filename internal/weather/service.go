package weather

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

var (
	// ErrUnknownCity is returned for operations on a city that is not
	// in the tracked list.
	ErrUnknownCity = errors.New("unknown city")

	// ErrCityExists is returned when adding a city that is already
	// tracked.
	ErrCityExists = errors.New("city already added")
)

// countryFilter limits geocoding candidates to Indian places.
const countryFilter = "IN"

// Service owns the tracked city list and orchestrates fetching,
// merging and storing per-city bundles.
type Service struct {
	store  BundleStore
	source Source
	repo   CityRepository

	mu     sync.RWMutex
	cities []City
}

// NewService creates a Service tracking the built-in cities plus any
// custom cities restored from the repository. A repository load
// failure means "no custom cities", not a startup error.
func NewService(store BundleStore, source Source, repo CityRepository) *Service {
	s := &Service{
		store:  store,
		source: source,
		repo:   repo,
		cities: append([]City(nil), DefaultCities...),
	}

	if repo != nil {
		custom, err := repo.LoadCustom()
		if err != nil {
			log.Printf("INFO: no custom cities restored: %v", err)
		}
		for _, c := range custom {
			if _, ok := s.findCity(c.Name); !ok {
				s.cities = append(s.cities, c)
			}
		}
	}

	return s
}

// Cities returns a copy of the tracked city list.
func (s *Service) Cities() []City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]City(nil), s.cities...)
}

// CityByName looks a tracked city up by its identity key.
func (s *Service) CityByName(name string) (City, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findCity(name)
}

func (s *Service) findCity(name string) (City, bool) {
	for _, c := range s.cities {
		if c.Name == name {
			return c, true
		}
	}
	return City{}, false
}

// LoadAll fetches bundles for every tracked city in parallel. Each
// city degrades independently; a fetch failure never fails the load.
func (s *Service) LoadAll(ctx context.Context) {
	cities := s.Cities()

	var wg sync.WaitGroup
	var mu sync.Mutex
	loaded := 0

	for _, city := range cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loadCity(ctx, city)

			mu.Lock()
			loaded++
			log.Printf("INFO: loaded %d/%d cities", loaded, len(cities))
			mu.Unlock()
		}()
	}
	wg.Wait()
}

// loadCity fetches and stores a city's bundle. The bundle is always
// registered, empty on required-source failure, so the city still
// renders with placeholders.
func (s *Service) loadCity(ctx context.Context, city City) {
	bundle, err := s.fetchBundle(ctx, city)
	if err != nil {
		log.Printf("fetch failed for %s: %v", city.Name, err)
	}
	s.store.Set(city.Name, bundle)
}

// fetchBundle issues the four upstream fetches together and waits for
// them all. Historical and forecast are required; a failure in either
// degrades the city to an empty bundle. Air quality and flood are
// optional enrichments and fail independently.
func (s *Service) fetchBundle(ctx context.Context, city City) (Bundle, error) {
	var (
		wg      sync.WaitGroup
		hist    *ArchiveResponse
		fore    *ForecastResponse
		aqi     *AirQualityResponse
		flood   *FloodResponse
		histErr error
		foreErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		hist, histErr = s.source.Archive(ctx, city)
	}()
	go func() {
		defer wg.Done()
		fore, foreErr = s.source.Forecast(ctx, city)
	}()
	go func() {
		defer wg.Done()
		var err error
		if aqi, err = s.source.AirQuality(ctx, city); err != nil {
			log.Printf("air quality fetch failed for %s: %v", city.Name, err)
			aqi = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if flood, err = s.source.Flood(ctx, city); err != nil {
			log.Printf("flood fetch failed for %s: %v", city.Name, err)
			flood = nil
		}
	}()
	wg.Wait()

	if histErr != nil {
		return emptyBundle(), histErr
	}
	if foreErr != nil {
		return emptyBundle(), foreErr
	}

	return Bundle{
		Daily:     MergeDaily(hist, fore),
		Hourly:    ExtractHourly(fore),
		Current:   ExtractCurrent(fore),
		Aqi:       ExtractAqiCurrent(aqi),
		AqiHourly: ExtractAqiHourly(aqi),
		Flood:     ExtractFlood(flood),
	}, nil
}

func emptyBundle() Bundle {
	return Bundle{Daily: []DailyRecord{}, Hourly: []HourlyRecord{}, AqiHourly: []AqiHourlyRecord{}}
}

// Refresh replaces a city's bundle wholesale.
func (s *Service) Refresh(ctx context.Context, name string) error {
	city, ok := s.CityByName(name)
	if !ok {
		return ErrUnknownCity
	}
	s.loadCity(ctx, city)
	return nil
}

// AddCity registers a geocoding candidate as a tracked city, persists
// the custom list, and fetches the city's data. A candidate matching
// an existing city by name and nearby latitude is rejected.
func (s *Service) AddCity(ctx context.Context, res GeoResult) (City, error) {
	anchor := "l"
	if res.Lon > 78 {
		anchor = "r"
	}
	city := City{Name: res.Name, Lat: res.Lat, Lon: res.Lon, Anchor: anchor}

	s.mu.Lock()
	for _, c := range s.cities {
		if c.Name == city.Name && abs(c.Lat-city.Lat) < 0.5 {
			s.mu.Unlock()
			return City{}, ErrCityExists
		}
	}
	s.cities = append(s.cities, city)
	custom := s.customCitiesLocked()
	s.mu.Unlock()

	s.persistCustom(custom)
	s.loadCity(ctx, city)
	return city, nil
}

// RemoveCity drops a city and its bundle in the same step so no
// orphaned bundle survives.
func (s *Service) RemoveCity(name string) error {
	s.mu.Lock()
	idx := -1
	for i, c := range s.cities {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownCity
	}
	s.cities = append(s.cities[:idx], s.cities[idx+1:]...)
	custom := s.customCitiesLocked()
	s.mu.Unlock()

	s.store.Remove(name)
	s.persistCustom(custom)
	return nil
}

// customCitiesLocked returns the user-added cities: everything whose
// name is not built in. Re-added built-in names are never persisted.
func (s *Service) customCitiesLocked() []City {
	var custom []City
	for _, c := range s.cities {
		if !IsDefaultCity(c.Name) {
			custom = append(custom, c)
		}
	}
	return custom
}

func (s *Service) persistCustom(custom []City) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveCustom(custom); err != nil {
		log.Printf("failed to persist custom cities: %v", err)
	}
}

// Summary resolves a city's current conditions for right now, or nil
// when the city was never fetched.
func (s *Service) Summary(name string) *CurrentConditions {
	bundle, ok := s.store.Get(name)
	if !ok {
		return nil
	}
	now := time.Now()
	return ResolveCurrent(&bundle, CivilDate(now), CivilHour(now))
}

// Detail returns a city's full bundle plus its resolved current
// conditions.
func (s *Service) Detail(name string) (City, Bundle, *CurrentConditions, error) {
	city, ok := s.CityByName(name)
	if !ok {
		return City{}, Bundle{}, nil, ErrUnknownCity
	}
	bundle, ok := s.store.Get(name)
	if !ok {
		return city, emptyBundle(), nil, nil
	}
	now := time.Now()
	return city, bundle, ResolveCurrent(&bundle, CivilDate(now), CivilHour(now)), nil
}

// SearchResult is a geocoding candidate annotated with whether it is
// already tracked.
type SearchResult struct {
	GeoResult
	Region  string `json:"region"`
	Already bool   `json:"already"`
}

// Search returns geocoding candidates for a free-text query, filtered
// to the dashboard's country.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	results, err := s.source.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.CountryCode != countryFilter {
			continue
		}
		already := false
		for _, c := range s.cities {
			if c.Name == r.Name && abs(c.Lat-r.Lat) < 0.5 {
				already = true
				break
			}
		}
		out = append(out, SearchResult{GeoResult: r, Region: r.Region(), Already: already})
	}
	return out, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
