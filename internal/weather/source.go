package weather

import "context"

// The upstream API returns blocks of parallel arrays keyed by a `time`
// array. Every value slice is pointer-typed so a missing or null entry
// degrades that field only, not the whole response.

// DailyBlock is the `daily` block of an archive or forecast response.
type DailyBlock struct {
	Time             []string   `json:"time"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	WeatherCode      []*int     `json:"weather_code"`
	SunshineDuration []*float64 `json:"sunshine_duration"`
	PrecipSum        []*float64 `json:"precipitation_sum"`
	PrecipHours      []*float64 `json:"precipitation_hours"`
	PrecipProbMax    []*float64 `json:"precipitation_probability_max"`
	Sunrise          []*string  `json:"sunrise"`
	Sunset           []*string  `json:"sunset"`
	UVIndexMax       []*float64 `json:"uv_index_max"`
	DaylightDuration []*float64 `json:"daylight_duration"`
	WindSpeedMax     []*float64 `json:"wind_speed_10m_max"`
	WindGustsMax     []*float64 `json:"wind_gusts_10m_max"`
	WindDirDominant  []*float64 `json:"wind_direction_10m_dominant"`
	FeelsLikeMax     []*float64 `json:"apparent_temperature_max"`
	FeelsLikeMin     []*float64 `json:"apparent_temperature_min"`
}

// HourlyBlock is the `hourly` block of a forecast response.
type HourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature   []*float64 `json:"temperature_2m"`
	WeatherCode   []*int     `json:"weather_code"`
	Humidity      []*float64 `json:"relative_humidity_2m"`
	WindSpeed     []*float64 `json:"wind_speed_10m"`
	PrecipProb    []*float64 `json:"precipitation_probability"`
	Precipitation []*float64 `json:"precipitation"`
	FeelsLike     []*float64 `json:"apparent_temperature"`
	DewPoint      []*float64 `json:"dew_point_2m"`
	Visibility    []*float64 `json:"visibility"`
	WindDir       []*float64 `json:"wind_direction_10m"`
	WindGusts     []*float64 `json:"wind_gusts_10m"`
	CloudCover    []*float64 `json:"cloud_cover"`
	IsDay         []*int     `json:"is_day"`
	Cape          []*float64 `json:"cape"`
	Pressure      []*float64 `json:"surface_pressure"`
}

// CurrentBlock is the `current` block of a forecast response.
type CurrentBlock struct {
	Time        string   `json:"time"`
	Temperature *float64 `json:"temperature_2m"`
	WeatherCode *int     `json:"weather_code"`
	Humidity    *float64 `json:"relative_humidity_2m"`
	FeelsLike   *float64 `json:"apparent_temperature"`
	WindSpeed   *float64 `json:"wind_speed_10m"`
	WindDir     *float64 `json:"wind_direction_10m"`
	WindGusts   *float64 `json:"wind_gusts_10m"`
	Pressure    *float64 `json:"surface_pressure"`
	CloudCover  *float64 `json:"cloud_cover"`
	IsDay       *int     `json:"is_day"`
}

// ArchiveResponse is the historical-daily API response.
type ArchiveResponse struct {
	Daily *DailyBlock `json:"daily"`
}

// ForecastResponse is the forecast API response.
type ForecastResponse struct {
	Daily   *DailyBlock   `json:"daily"`
	Hourly  *HourlyBlock  `json:"hourly"`
	Current *CurrentBlock `json:"current"`
}

// AqiHourlyBlock is the `hourly` block of an air-quality response.
type AqiHourlyBlock struct {
	Time  []string   `json:"time"`
	USAqi []*float64 `json:"us_aqi"`
	PM25  []*float64 `json:"pm2_5"`
	PM10  []*float64 `json:"pm10"`
}

// AqiCurrentBlock is the `current` block of an air-quality response.
type AqiCurrentBlock struct {
	USAqi       *float64 `json:"us_aqi"`
	EuropeanAqi *float64 `json:"european_aqi"`
	PM25        *float64 `json:"pm2_5"`
	PM10        *float64 `json:"pm10"`
}

// AirQualityResponse is the air-quality API response.
type AirQualityResponse struct {
	Current *AqiCurrentBlock `json:"current"`
	Hourly  *AqiHourlyBlock  `json:"hourly"`
}

// FloodResponse is the flood API response.
type FloodResponse struct {
	Daily *struct {
		Time          []string   `json:"time"`
		DischargeMean []*float64 `json:"river_discharge_mean"`
		DischargeMax  []*float64 `json:"river_discharge_max"`
	} `json:"daily"`
}

// GeoResult is one geocoding candidate for a free-text city search.
type GeoResult struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"latitude"`
	Lon         float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
}

// Region renders the candidate's admin region and country for display.
func (g GeoResult) Region() string {
	if g.Admin1 != "" && g.Country != "" {
		return g.Admin1 + ", " + g.Country
	}
	if g.Admin1 != "" {
		return g.Admin1
	}
	return g.Country
}

// Source abstracts the upstream weather service. Historical and
// forecast are the required pair; air quality and flood are optional
// enrichments.
type Source interface {
	Archive(ctx context.Context, city City) (*ArchiveResponse, error)
	Forecast(ctx context.Context, city City) (*ForecastResponse, error)
	AirQuality(ctx context.Context, city City) (*AirQualityResponse, error)
	Flood(ctx context.Context, city City) (*FloodResponse, error)
	Search(ctx context.Context, query string) ([]GeoResult, error)
}

// BundleStore is the contract the in-memory per-city store must
// satisfy.
type BundleStore interface {
	Set(name string, b Bundle)
	Get(name string) (Bundle, bool)
	Remove(name string)
}

// CityRepository persists user-added cities across restarts.
type CityRepository interface {
	LoadCustom() ([]City, error)
	SaveCustom(cities []City) error
}
