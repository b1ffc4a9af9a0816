package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeStore struct {
	mu      sync.Mutex
	bundles map[string]Bundle
	removed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{bundles: make(map[string]Bundle)}
}

func (f *fakeStore) Set(name string, b Bundle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bundles[name] = b
}

func (f *fakeStore) Get(name string) (Bundle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bundles[name]
	return b, ok
}

func (f *fakeStore) Remove(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bundles, name)
	f.removed = append(f.removed, name)
}

type fakeSource struct {
	archiveErr  error
	forecastErr error
	aqiErr      error
	floodErr    error
	results     []GeoResult
	searchErr   error
}

func (f *fakeSource) Archive(ctx context.Context, city City) (*ArchiveResponse, error) {
	if f.archiveErr != nil {
		return nil, f.archiveErr
	}
	return &ArchiveResponse{Daily: dailyBlock(
		[]string{"2026-02-01"}, []*float64{fp(30)}, []*float64{fp(20)}, []*int{ip(0)},
	)}, nil
}

func (f *fakeSource) Forecast(ctx context.Context, city City) (*ForecastResponse, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return &ForecastResponse{
		Daily: dailyBlock(
			[]string{"2026-02-01", "2026-02-02"},
			[]*float64{fp(31), fp(32)},
			[]*float64{fp(19), fp(21)},
			[]*int{ip(3), ip(2)},
		),
		Hourly: &HourlyBlock{
			Time:        []string{"2026-02-02T10:00"},
			Temperature: []*float64{fp(27)},
		},
	}, nil
}

func (f *fakeSource) AirQuality(ctx context.Context, city City) (*AirQualityResponse, error) {
	if f.aqiErr != nil {
		return nil, f.aqiErr
	}
	return &AirQualityResponse{Current: &AqiCurrentBlock{USAqi: fp(90)}}, nil
}

func (f *fakeSource) Flood(ctx context.Context, city City) (*FloodResponse, error) {
	if f.floodErr != nil {
		return nil, f.floodErr
	}
	return &FloodResponse{}, nil
}

func (f *fakeSource) Search(ctx context.Context, query string) ([]GeoResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

type fakeRepo struct {
	custom  []City
	saved   [][]City
	loadErr error
	saveErr error
}

func (f *fakeRepo) LoadCustom() ([]City, error) {
	return f.custom, f.loadErr
}

func (f *fakeRepo) SaveCustom(cities []City) error {
	f.saved = append(f.saved, append([]City(nil), cities...))
	return f.saveErr
}

func TestNewServiceRestoresCustomCities(t *testing.T) {
	repo := &fakeRepo{custom: []City{
		{Name: "Pune", Lat: 18.52, Lon: 73.86, Anchor: "l"},
		{Name: "Kolkata", Lat: 22.57, Lon: 88.36, Anchor: "r"}, // duplicate of built-in, skipped
	}}

	svc := NewService(newFakeStore(), &fakeSource{}, repo)
	cities := svc.Cities()
	if len(cities) != len(DefaultCities)+1 {
		t.Fatalf("expected %d cities, got %d", len(DefaultCities)+1, len(cities))
	}
	if cities[len(cities)-1].Name != "Pune" {
		t.Errorf("expected Pune appended last, got %s", cities[len(cities)-1].Name)
	}
}

func TestFetchBundleOptionalSourcesDegradeIndependently(t *testing.T) {
	src := &fakeSource{
		aqiErr:   errors.New("aqi down"),
		floodErr: errors.New("flood down"),
	}
	svc := NewService(newFakeStore(), src, nil)

	bundle, err := svc.fetchBundle(context.Background(), City{Name: "Kota"})
	if err != nil {
		t.Fatalf("optional failures must not fail the bundle: %v", err)
	}
	if bundle.Aqi != nil || bundle.Flood != nil {
		t.Errorf("expected nil enrichment blocks on failure")
	}
	if len(bundle.Daily) == 0 || len(bundle.Hourly) == 0 {
		t.Errorf("expected core data to survive enrichment failures")
	}
	// Historical wins the 2026-02-01 collision.
	if bundle.Daily[0].Date != "2026-02-01" || bundle.Daily[0].Max != 30 {
		t.Errorf("unexpected first daily record: %+v", bundle.Daily[0])
	}
}

func TestFetchBundleRequiredFailureDegradesToEmpty(t *testing.T) {
	for _, name := range []string{"archive", "forecast"} {
		t.Run(name, func(t *testing.T) {
			src := &fakeSource{}
			if name == "archive" {
				src.archiveErr = errors.New("down")
			} else {
				src.forecastErr = errors.New("down")
			}
			store := newFakeStore()
			svc := NewService(store, src, nil)

			svc.loadCity(context.Background(), City{Name: "Kota"})

			bundle, ok := store.Get("Kota")
			if !ok {
				t.Fatal("expected a bundle registered even on failure")
			}
			if !bundle.Empty() {
				t.Errorf("expected empty bundle, got %d daily / %d hourly",
					len(bundle.Daily), len(bundle.Hourly))
			}
		})
	}
}

func TestAddCityDuplicateGuard(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeSource{}, &fakeRepo{})

	_, err := svc.AddCity(context.Background(), GeoResult{Name: "Kolkata", Lat: 22.6, Lon: 88.4})
	if !errors.Is(err, ErrCityExists) {
		t.Errorf("expected ErrCityExists for nearby duplicate, got %v", err)
	}

	// Same name far away is a different place, accepted.
	city, err := svc.AddCity(context.Background(), GeoResult{Name: "Kolkata", Lat: 11.0, Lon: 76.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if city.Anchor != "l" {
		t.Errorf("expected anchor l for lon<=78, got %q", city.Anchor)
	}
}

func TestAddCityAnchorDerivation(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeSource{}, nil)

	east, err := svc.AddCity(context.Background(), GeoResult{Name: "Guwahati", Lat: 26.14, Lon: 91.73})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if east.Anchor != "r" {
		t.Errorf("expected anchor r for lon>78, got %q", east.Anchor)
	}
}

func TestCustomPersistenceExcludesBuiltins(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(newFakeStore(), &fakeSource{}, repo)

	if _, err := svc.AddCity(context.Background(), GeoResult{Name: "Pune", Lat: 18.52, Lon: 73.86}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A re-added built-in name (distant coordinates pass the guard)
	// must still not be persisted.
	if _, err := svc.AddCity(context.Background(), GeoResult{Name: "Kota", Lat: 11.0, Lon: 76.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.saved) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(repo.saved))
	}
	last := repo.saved[len(repo.saved)-1]
	if len(last) != 1 || last[0].Name != "Pune" {
		t.Errorf("expected only Pune persisted, got %+v", last)
	}
}

func TestRemoveCityRemovesBundle(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeSource{}, &fakeRepo{})

	city, err := svc.AddCity(context.Background(), GeoResult{Name: "Pune", Lat: 18.52, Lon: 73.86})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Get(city.Name); !ok {
		t.Fatal("expected bundle after add")
	}

	if err := svc.RemoveCity("Pune"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Get("Pune"); ok {
		t.Error("expected bundle removed with city")
	}
	if _, ok := svc.CityByName("Pune"); ok {
		t.Error("expected city removed from list")
	}

	if err := svc.RemoveCity("Pune"); !errors.Is(err, ErrUnknownCity) {
		t.Errorf("expected ErrUnknownCity, got %v", err)
	}
}

func TestSearchFiltersCountry(t *testing.T) {
	src := &fakeSource{results: []GeoResult{
		{Name: "Salem", Lat: 11.65, Lon: 78.16, CountryCode: "IN", Country: "India", Admin1: "Tamil Nadu"},
		{Name: "Salem", Lat: 44.94, Lon: -123.03, CountryCode: "US", Country: "United States"},
		{Name: "Kolkata", Lat: 22.57, Lon: 88.36, CountryCode: "IN", Country: "India"},
	}}
	svc := NewService(newFakeStore(), src, nil)

	results, err := svc.Search(context.Background(), "sale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after country filter, got %d", len(results))
	}
	if results[0].Region != "Tamil Nadu, India" {
		t.Errorf("unexpected region %q", results[0].Region)
	}
	if results[0].Already {
		t.Error("Salem should not be marked as already added")
	}
	if !results[1].Already {
		t.Error("Kolkata should be marked as already added")
	}
}
