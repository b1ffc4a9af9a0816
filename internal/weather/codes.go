package weather

// CodeInfo is the human description and icon category for a WMO
// weather code.
type CodeInfo struct {
	Desc string `json:"desc"`
	Icon string `json:"icon"`
}

// wmoCodes maps WMO weather codes to display info. Exact integer keys
// only; anything unmapped falls back to "Unknown"/"cloud".
var wmoCodes = map[int]CodeInfo{
	0:  {Desc: "Clear sky", Icon: "sun"},
	1:  {Desc: "Mainly clear", Icon: "sun"},
	2:  {Desc: "Partly cloudy", Icon: "cloud-sun"},
	3:  {Desc: "Overcast", Icon: "cloud"},
	45: {Desc: "Foggy", Icon: "fog"},
	47: {Desc: "Depositing rime fog", Icon: "fog"},
	51: {Desc: "Light drizzle", Icon: "drizzle"},
	53: {Desc: "Moderate drizzle", Icon: "drizzle"},
	55: {Desc: "Dense drizzle", Icon: "drizzle"},
	61: {Desc: "Slight rain", Icon: "rain"},
	63: {Desc: "Moderate rain", Icon: "rain"},
	65: {Desc: "Heavy rain", Icon: "rain-heavy"},
	71: {Desc: "Slight snow", Icon: "snow"},
	73: {Desc: "Moderate snow", Icon: "snow"},
	75: {Desc: "Heavy snow", Icon: "snow"},
	77: {Desc: "Snow grains", Icon: "snow"},
	80: {Desc: "Slight rain showers", Icon: "rain"},
	81: {Desc: "Moderate rain showers", Icon: "rain-heavy"},
	82: {Desc: "Violent rain showers", Icon: "rain-heavy"},
	85: {Desc: "Slight snow showers", Icon: "snow"},
	86: {Desc: "Heavy snow showers", Icon: "snow"},
	95: {Desc: "Thunderstorm", Icon: "thunder"},
	96: {Desc: "Thunderstorm with hail", Icon: "thunder"},
	99: {Desc: "Thunderstorm with heavy hail", Icon: "thunder"},
}

// Classify returns the description and icon category for a weather
// code.
func Classify(code int) CodeInfo {
	if info, ok := wmoCodes[code]; ok {
		return info
	}
	return CodeInfo{Desc: "Unknown", Icon: "cloud"}
}
