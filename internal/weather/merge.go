package weather

import "sort"

// Merge policy: historical overrides forecast on date collision. The
// archive is authoritative once it has a date; the overlapping
// past_days portion of the forecast is treated as provisional and
// skipped entirely for those dates.

// MergeDaily combines historical and forecast daily blocks into one
// ascending, date-unique sequence. A missing daily block on either
// side contributes nothing. Absent weather codes default to 0 (clear
// sky); every other absent field stays nil.
func MergeDaily(historical *ArchiveResponse, forecast *ForecastResponse) []DailyRecord {
	byDate := make(map[string]DailyRecord)

	if historical != nil && historical.Daily != nil {
		for i, date := range historical.Daily.Time {
			byDate[date] = dailyAt(historical.Daily, i)
		}
	}

	if forecast != nil && forecast.Daily != nil {
		for i, date := range forecast.Daily.Time {
			if _, exists := byDate[date]; exists {
				continue
			}
			byDate[date] = dailyAt(forecast.Daily, i)
		}
	}

	out := make([]DailyRecord, 0, len(byDate))
	for _, rec := range byDate {
		out = append(out, rec)
	}
	// Lexicographic equals chronological for ISO dates.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func dailyAt(d *DailyBlock, i int) DailyRecord {
	return DailyRecord{
		Date:         d.Time[i],
		Max:          floatOrZero(d.TemperatureMax, i),
		Min:          floatOrZero(d.TemperatureMin, i),
		Code:         intOrZero(d.WeatherCode, i),
		Sunshine:     floatAt(d.SunshineDuration, i),
		Precip:       floatAt(d.PrecipSum, i),
		PrecipHours:  floatAt(d.PrecipHours, i),
		PrecipProb:   floatAt(d.PrecipProbMax, i),
		Sunrise:      stringAt(d.Sunrise, i),
		Sunset:       stringAt(d.Sunset, i),
		UVIndex:      floatAt(d.UVIndexMax, i),
		Daylight:     floatAt(d.DaylightDuration, i),
		WindMax:      floatAt(d.WindSpeedMax, i),
		GustsMax:     floatAt(d.WindGustsMax, i),
		WindDir:      floatAt(d.WindDirDominant, i),
		FeelsLikeMax: floatAt(d.FeelsLikeMax, i),
		FeelsLikeMin: floatAt(d.FeelsLikeMin, i),
	}
}

// ExtractHourly flattens the forecast's parallel hourly arrays into
// per-timestamp records. An absent hourly block or time array yields
// an empty slice, never an error.
func ExtractHourly(forecast *ForecastResponse) []HourlyRecord {
	if forecast == nil || forecast.Hourly == nil || len(forecast.Hourly.Time) == 0 {
		return []HourlyRecord{}
	}

	h := forecast.Hourly
	out := make([]HourlyRecord, 0, len(h.Time))
	for i, t := range h.Time {
		out = append(out, HourlyRecord{
			Time:       t,
			Temp:       floatOrZero(h.Temperature, i),
			Code:       intOrZero(h.WeatherCode, i),
			Humidity:   floatAt(h.Humidity, i),
			Wind:       floatAt(h.WindSpeed, i),
			PrecipProb: floatAt(h.PrecipProb, i),
			Precip:     floatAt(h.Precipitation, i),
			FeelsLike:  floatAt(h.FeelsLike, i),
			DewPoint:   floatAt(h.DewPoint, i),
			Visibility: floatAt(h.Visibility, i),
			WindDir:    floatAt(h.WindDir, i),
			Gusts:      floatAt(h.WindGusts, i),
			CloudCover: floatAt(h.CloudCover, i),
			IsDay:      boolAt(h.IsDay, i),
			Cape:       floatAt(h.Cape, i),
			Pressure:   floatAt(h.Pressure, i),
		})
	}
	return out
}

// ExtractAqiHourly flattens the air-quality hourly arrays.
func ExtractAqiHourly(aqi *AirQualityResponse) []AqiHourlyRecord {
	if aqi == nil || aqi.Hourly == nil || len(aqi.Hourly.Time) == 0 {
		return []AqiHourlyRecord{}
	}

	h := aqi.Hourly
	out := make([]AqiHourlyRecord, 0, len(h.Time))
	for i, t := range h.Time {
		out = append(out, AqiHourlyRecord{
			Time:  t,
			USAqi: floatAt(h.USAqi, i),
			PM25:  floatAt(h.PM25, i),
			PM10:  floatAt(h.PM10, i),
		})
	}
	return out
}

// ExtractCurrent converts the forecast's live current block.
func ExtractCurrent(forecast *ForecastResponse) *CurrentObservation {
	if forecast == nil || forecast.Current == nil || forecast.Current.Temperature == nil {
		return nil
	}

	c := forecast.Current
	code := 0
	if c.WeatherCode != nil {
		code = *c.WeatherCode
	}
	var isDay *bool
	if c.IsDay != nil {
		v := *c.IsDay != 0
		isDay = &v
	}
	return &CurrentObservation{
		Time:        c.Time,
		Temperature: *c.Temperature,
		Code:        code,
		Humidity:    c.Humidity,
		FeelsLike:   c.FeelsLike,
		Wind:        c.WindSpeed,
		WindDir:     c.WindDir,
		Gusts:       c.WindGusts,
		Pressure:    c.Pressure,
		CloudCover:  c.CloudCover,
		IsDay:       isDay,
	}
}

// ExtractAqiCurrent converts the air-quality live block.
func ExtractAqiCurrent(aqi *AirQualityResponse) *AqiObservation {
	if aqi == nil || aqi.Current == nil {
		return nil
	}
	c := aqi.Current
	return &AqiObservation{
		USAqi:       c.USAqi,
		EuropeanAqi: c.EuropeanAqi,
		PM25:        c.PM25,
		PM10:        c.PM10,
	}
}

// ExtractFlood converts the flood response's daily discharge arrays.
func ExtractFlood(flood *FloodResponse) *FloodData {
	if flood == nil || flood.Daily == nil || len(flood.Daily.Time) == 0 {
		return nil
	}
	return &FloodData{
		Time:          flood.Daily.Time,
		DischargeMean: flood.Daily.DischargeMean,
		DischargeMax:  flood.Daily.DischargeMax,
	}
}

// Safe indexed access into parallel arrays. Short or nil arrays mean
// the field was absent for that index.

func floatAt(arr []*float64, i int) *float64 {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}

func floatOrZero(arr []*float64, i int) float64 {
	if v := floatAt(arr, i); v != nil {
		return *v
	}
	return 0
}

func intOrZero(arr []*int, i int) int {
	if i < len(arr) && arr[i] != nil {
		return *arr[i]
	}
	return 0
}

func stringAt(arr []*string, i int) *string {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}

func boolAt(arr []*int, i int) *bool {
	if i >= len(arr) || arr[i] == nil {
		return nil
	}
	v := *arr[i] != 0
	return &v
}
