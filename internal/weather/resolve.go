package weather

import "math"

// ResolveCurrent picks the best available right-now snapshot for a
// city from its bundle. Precedence for the headline values: the live
// current block if present, else the hourly record matching today's
// date and the current civil hour exactly (first match), else today's
// daily max/min midpoint. Returns nil only when there is no bundle.
func ResolveCurrent(bundle *Bundle, today string, nowHour int) *CurrentConditions {
	if bundle == nil {
		return nil
	}

	cc := &CurrentConditions{AqiBand: AqiBandMissing}

	var todayDaily *DailyRecord
	for i := range bundle.Daily {
		if bundle.Daily[i].Date == today {
			todayDaily = &bundle.Daily[i]
			break
		}
	}

	hourlyIdx := -1
	for i := range bundle.Hourly {
		if bundle.Hourly[i].Date() == today && bundle.Hourly[i].Hour() == nowHour {
			hourlyIdx = i
			break
		}
	}
	var hourly *HourlyRecord
	if hourlyIdx >= 0 {
		hourly = &bundle.Hourly[hourlyIdx]
	}

	switch {
	case bundle.Current != nil:
		cc.Temp = roundPtr(bundle.Current.Temperature)
		cc.Code = bundle.Current.Code
		cc.Wind = bundle.Current.Wind
		cc.WindDir = bundle.Current.WindDir
		cc.Gusts = bundle.Current.Gusts
		cc.Humidity = bundle.Current.Humidity
		cc.CloudCover = bundle.Current.CloudCover
		cc.FeelsLike = bundle.Current.FeelsLike
		cc.Pressure = bundle.Current.Pressure
	case hourly != nil:
		cc.Temp = roundPtr(hourly.Temp)
		cc.Code = hourly.Code
		cc.Wind = hourly.Wind
		cc.WindDir = hourly.WindDir
		cc.Gusts = hourly.Gusts
		cc.Humidity = hourly.Humidity
		cc.CloudCover = hourly.CloudCover
		cc.FeelsLike = hourly.FeelsLike
		cc.Pressure = hourly.Pressure
	case todayDaily != nil:
		cc.Temp = roundPtr((todayDaily.Max + todayDaily.Min) / 2)
		cc.Code = todayDaily.Code
	}

	info := Classify(cc.Code)
	cc.Desc = info.Desc
	cc.Icon = info.Icon

	if todayDaily != nil {
		cc.High = roundPtr(todayDaily.Max)
		cc.Low = roundPtr(todayDaily.Min)
		cc.UVIndex = todayDaily.UVIndex
		if todayDaily.Sunshine != nil {
			hrs := int(math.Round(*todayDaily.Sunshine / 3600))
			cc.SunshineHours = &hrs
		}
	}

	// Fields the current block never carries come from the same-hour
	// hourly record when one exists.
	if hourly != nil {
		cc.DewPoint = hourly.DewPoint
		cc.Visibility = hourly.Visibility
		cc.PrecipProb = hourly.PrecipProb
		if cc.Pressure == nil {
			cc.Pressure = hourly.Pressure
		}
		if cc.DewPoint != nil {
			cc.Comfort = ComfortFromDewPoint(*cc.DewPoint)
		}
		if hourly.Cape != nil {
			cc.StormRisk = StormFromCape(*hourly.Cape)
		}
	}
	if cc.PrecipProb == nil && todayDaily != nil {
		cc.PrecipProb = todayDaily.PrecipProb
	}

	if cc.Pressure != nil {
		cc.PressureTrend = pressureTrend(bundle.Hourly, hourlyIdx, *cc.Pressure)
	}

	if bundle.Aqi != nil {
		if v := bundle.Aqi.USAqi; v != nil {
			cc.Aqi = v
		} else if v := bundle.Aqi.EuropeanAqi; v != nil {
			cc.Aqi = v
		}
	}
	if cc.Aqi != nil {
		cc.AqiBand = AqiBand(*cc.Aqi)
	}

	cc.FloodRisk = FloodSignal(bundle.Flood)

	return cc
}

// ComfortFromDewPoint maps a dew point in °C to a comfort band.
func ComfortFromDewPoint(dp float64) ComfortLevel {
	switch {
	case dp < 16:
		return ComfortComfortable
	case dp < 21:
		return ComfortWarm
	case dp < 24:
		return ComfortHot
	default:
		return ComfortOppressive
	}
}

// StormFromCape maps CAPE in J/kg to a storm-risk band. Below 300 no
// risk is reported at all.
func StormFromCape(cape float64) StormRisk {
	if cape < 300 {
		return ""
	}
	switch {
	case cape >= 2500:
		return StormSevere
	case cape >= 1000:
		return StormHigh
	default:
		return StormModerate
	}
}

// AqiBand maps an AQI value to its display band.
func AqiBand(v float64) string {
	switch {
	case v <= 50:
		return "Good"
	case v <= 100:
		return "Moderate"
	case v <= 150:
		return "Unhealthy for Sensitive Groups"
	case v <= 200:
		return "Unhealthy"
	default:
		return "Very Unhealthy"
	}
}

// pressureTrend compares the resolved pressure against the hourly
// reading exactly three index positions before the current hour's
// record. Fewer than three prior samples reads as Steady.
func pressureTrend(hourly []HourlyRecord, idx int, current float64) PressureTrend {
	if idx < 3 {
		return TrendSteady
	}
	prior := hourly[idx-3].Pressure
	if prior == nil {
		return TrendSteady
	}
	diff := current - *prior
	switch {
	case diff > 1:
		return TrendRising
	case diff < -1:
		return TrendFalling
	default:
		return TrendSteady
	}
}

// FloodSignal derives the flood-risk band from the river-discharge
// forecast window: the max of the daily maxima over the mean of the
// daily means. A zero or missing mean suppresses the signal.
func FloodSignal(f *FloodData) FloodRisk {
	if f == nil {
		return ""
	}

	var sum float64
	var n int
	for _, v := range f.DischargeMean {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return ""
	}
	mean := sum / float64(n)
	if mean == 0 {
		return ""
	}

	var max float64
	for _, v := range f.DischargeMax {
		if v != nil && *v > max {
			max = *v
		}
	}

	ratio := max / mean
	switch {
	case ratio > 3:
		return FloodAlert
	case ratio > 2:
		return FloodWatch
	default:
		return ""
	}
}

func roundPtr(v float64) *float64 {
	r := math.Round(v)
	return &r
}
