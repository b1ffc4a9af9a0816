package weather

// City represents one place tracked on the dashboard.
// Name is the identity key (case-sensitive, unique).
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`

	// Anchor is the side the map label hangs on: "l" or "r".
	Anchor string `json:"anchor"`
}

// DefaultCities is the built-in city list the dashboard starts with.
// User-added cities are appended to this list at load time.
var DefaultCities = []City{
	{Name: "Bikaner", Lat: 28.02, Lon: 73.31, Anchor: "l"},
	{Name: "Ludhiana", Lat: 30.90, Lon: 75.85, Anchor: "l"},
	{Name: "Amritsar", Lat: 31.63, Lon: 74.87, Anchor: "l"},
	{Name: "Kota", Lat: 25.21, Lon: 75.86, Anchor: "l"},
	{Name: "Rajkot", Lat: 22.30, Lon: 70.80, Anchor: "l"},
	{Name: "Nadiad", Lat: 22.69, Lon: 72.86, Anchor: "l"},
	{Name: "Nagpur", Lat: 21.15, Lon: 79.09, Anchor: "r"},
	{Name: "Indore", Lat: 22.72, Lon: 75.86, Anchor: "l"},
	{Name: "Lalitpur", Lat: 24.69, Lon: 78.41, Anchor: "r"},
	{Name: "Shahjahanpur", Lat: 27.88, Lon: 79.91, Anchor: "r"},
	{Name: "Gonda", Lat: 27.13, Lon: 81.96, Anchor: "r"},
	{Name: "Begusarai", Lat: 25.42, Lon: 86.13, Anchor: "r"},
	{Name: "Hajipur", Lat: 25.69, Lon: 85.21, Anchor: "r"},
	{Name: "Kolkata", Lat: 22.57, Lon: 88.36, Anchor: "r"},
}

// IsDefaultCity reports whether name is one of the built-in cities.
// Only non-default cities are persisted.
func IsDefaultCity(name string) bool {
	for _, c := range DefaultCities {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DailyRecord is one calendar date's aggregate for a city.
// Max, Min and Code are always present; everything else is nil when the
// source had no data for that field.
type DailyRecord struct {
	Date     string   `json:"date"` // ISO date, e.g. "2026-02-01"
	Max      float64  `json:"max"`
	Min      float64  `json:"min"`
	Code     int      `json:"code"`
	Sunshine *float64 `json:"sunshine"` // seconds

	Precip       *float64 `json:"precip"`      // mm
	PrecipHours  *float64 `json:"precipHours"` // hours
	PrecipProb   *float64 `json:"precipProb"`  // percent
	Sunrise      *string  `json:"sunrise"`
	Sunset       *string  `json:"sunset"`
	UVIndex      *float64 `json:"uvIndex"`
	Daylight     *float64 `json:"daylightDuration"` // seconds
	WindMax      *float64 `json:"windMax"`          // km/h
	GustsMax     *float64 `json:"gustsMax"`         // km/h
	WindDir      *float64 `json:"windDir"`          // degrees
	FeelsLikeMax *float64 `json:"feelsLikeMax"`
	FeelsLikeMin *float64 `json:"feelsLikeMin"`
}

// HourlyRecord is one hour's snapshot for a city.
type HourlyRecord struct {
	Time string  `json:"time"` // ISO datetime, e.g. "2026-02-01T14:00"
	Temp float64 `json:"temp"`
	Code int     `json:"code"`

	Humidity   *float64 `json:"humidity"`
	Wind       *float64 `json:"wind"`
	PrecipProb *float64 `json:"precipProb"`
	Precip     *float64 `json:"precip"`
	FeelsLike  *float64 `json:"feelsLike"`
	DewPoint   *float64 `json:"dewPoint"`
	Visibility *float64 `json:"visibility"`
	WindDir    *float64 `json:"windDir"`
	Gusts      *float64 `json:"gusts"`
	CloudCover *float64 `json:"cloudCover"`
	IsDay      *bool    `json:"isDay"`
	Cape       *float64 `json:"cape"` // J/kg
	Pressure   *float64 `json:"pressure"`
}

// Date returns the ISO date portion of the record's timestamp.
func (h HourlyRecord) Date() string {
	if len(h.Time) < 10 {
		return h.Time
	}
	return h.Time[:10]
}

// Hour returns the hour-of-day of the record, or -1 if unparseable.
func (h HourlyRecord) Hour() int {
	if len(h.Time) < 13 {
		return -1
	}
	hr := 0
	for _, ch := range h.Time[11:13] {
		if ch < '0' || ch > '9' {
			return -1
		}
		hr = hr*10 + int(ch-'0')
	}
	return hr
}

// AqiHourlyRecord is one hour's air-quality snapshot.
type AqiHourlyRecord struct {
	Time  string   `json:"time"`
	USAqi *float64 `json:"usAqi"`
	PM25  *float64 `json:"pm25"`
	PM10  *float64 `json:"pm10"`
}

// CurrentObservation is the live "current" block of a forecast
// response. It is the most authoritative source for right-now values.
type CurrentObservation struct {
	Time        string   `json:"time"`
	Temperature float64  `json:"temperature"`
	Code        int      `json:"code"`
	Humidity    *float64 `json:"humidity"`
	FeelsLike   *float64 `json:"feelsLike"`
	Wind        *float64 `json:"wind"`
	WindDir     *float64 `json:"windDir"`
	Gusts       *float64 `json:"gusts"`
	Pressure    *float64 `json:"pressure"`
	CloudCover  *float64 `json:"cloudCover"`
	IsDay       *bool    `json:"isDay"`
}

// AqiObservation is the live air-quality block.
type AqiObservation struct {
	USAqi       *float64 `json:"usAqi"`
	EuropeanAqi *float64 `json:"europeanAqi"`
	PM25        *float64 `json:"pm25"`
	PM10        *float64 `json:"pm10"`
}

// FloodData holds the river-discharge forecast window for a city.
type FloodData struct {
	Time          []string   `json:"time"`
	DischargeMean []*float64 `json:"dischargeMean"` // m3/s
	DischargeMax  []*float64 `json:"dischargeMax"`  // m3/s
}

// Bundle is the per-city aggregate of all fetched data kinds. It is
// created whole when a city's data is first fetched, replaced whole on
// refresh, and removed together with the city.
type Bundle struct {
	Daily     []DailyRecord       `json:"daily"`
	Hourly    []HourlyRecord      `json:"hourly"`
	Current   *CurrentObservation `json:"current"`
	Aqi       *AqiObservation     `json:"aqi"`
	AqiHourly []AqiHourlyRecord   `json:"aqiHourly"`
	Flood     *FloodData          `json:"flood"`
}

// Empty reports whether the bundle carries no daily or hourly data at
// all, which is how a city with failed core fetches renders.
func (b Bundle) Empty() bool {
	return len(b.Daily) == 0 && len(b.Hourly) == 0
}

// ComfortLevel is the dew-point comfort band.
type ComfortLevel string

const (
	ComfortComfortable ComfortLevel = "Comfortable"
	ComfortWarm        ComfortLevel = "Warm"
	ComfortHot         ComfortLevel = "Hot"
	ComfortOppressive  ComfortLevel = "Oppressive"
)

// StormRisk is the CAPE-derived instability band. Empty means CAPE was
// below the reporting threshold or unavailable.
type StormRisk string

const (
	StormModerate StormRisk = "Moderate"
	StormHigh     StormRisk = "High"
	StormSevere   StormRisk = "Severe"
)

// PressureTrend is the 3-hour pressure tendency.
type PressureTrend string

const (
	TrendRising  PressureTrend = "Rising"
	TrendFalling PressureTrend = "Falling"
	TrendSteady  PressureTrend = "Steady"
)

// FloodRisk is the river-discharge risk band. Empty means no signal.
type FloodRisk string

const (
	FloodWatch FloodRisk = "Flood Watch"
	FloodAlert FloodRisk = "Flood Risk"
)

// AqiBandMissing is the placeholder shown when no AQI value exists.
const AqiBandMissing = "--"

// CurrentConditions is the derived right-now view for a city. It is
// recomputed on every request and never stored.
type CurrentConditions struct {
	Temp *float64 `json:"temp"` // rounded °C
	Code int      `json:"code"`
	Desc string   `json:"desc"`
	Icon string   `json:"icon"`

	High *float64 `json:"high"`
	Low  *float64 `json:"low"`

	Wind       *float64 `json:"wind"`
	WindDir    *float64 `json:"windDir"`
	Gusts      *float64 `json:"gusts"`
	Humidity   *float64 `json:"humidity"`
	DewPoint   *float64 `json:"dewPoint"`
	Pressure   *float64 `json:"pressure"`
	CloudCover *float64 `json:"cloudCover"`
	Visibility *float64 `json:"visibility"`
	PrecipProb *float64 `json:"precipProb"`
	FeelsLike  *float64 `json:"feelsLike"`
	UVIndex    *float64 `json:"uvIndex"`

	SunshineHours *int `json:"sunshineHours"`

	Aqi     *float64 `json:"aqi"`
	AqiBand string   `json:"aqiBand"`

	Comfort       ComfortLevel  `json:"comfort,omitempty"`
	StormRisk     StormRisk     `json:"stormRisk,omitempty"`
	PressureTrend PressureTrend `json:"pressureTrend,omitempty"`
	FloodRisk     FloodRisk     `json:"floodRisk,omitempty"`
}
