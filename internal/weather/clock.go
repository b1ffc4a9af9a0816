package weather

import (
	"fmt"
	"time"
)

// The dashboard compares cities on one clock: Indian Standard Time.
// Dates and hours are always computed in this zone regardless of where
// the process runs.
var istLocation = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// CivilDate returns t's calendar date in IST as an ISO date string.
func CivilDate(t time.Time) string {
	return t.In(istLocation).Format("2006-01-02")
}

// CivilHour returns t's hour of day in IST.
func CivilHour(t time.Time) int {
	return t.In(istLocation).Hour()
}

// DaysAgo returns the IST date n days before t.
func DaysAgo(t time.Time, n int) string {
	return CivilDate(t.AddDate(0, 0, -n))
}

// DaysFromNow returns the IST date n days after t.
func DaysFromNow(t time.Time, n int) string {
	return CivilDate(t.AddDate(0, 0, n))
}

// FormatLabel renders an ISO date as a short chart label, e.g. "Feb 1".
func FormatLabel(dateStr string) string {
	d, err := time.ParseInLocation("2006-01-02", dateStr, istLocation)
	if err != nil {
		return dateStr
	}
	return d.Format("Jan 2")
}

// FormatDay renders an ISO date as the daily-list label: "Today",
// "Tmrw", or a three-letter weekday.
func FormatDay(dateStr string, now time.Time) string {
	today := CivilDate(now)
	if dateStr == today {
		return "Today"
	}
	if dateStr == DaysFromNow(now, 1) {
		return "Tmrw"
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr, istLocation)
	if err != nil {
		return dateStr
	}
	return d.Format("Mon")
}

// FormatHour renders an hour of day as "12am", "3pm" etc.
func FormatHour(h int) string {
	switch {
	case h == 0:
		return "12am"
	case h == 12:
		return "12pm"
	case h < 12:
		return fmt.Sprintf("%dam", h)
	default:
		return fmt.Sprintf("%dpm", h-12)
	}
}

// FormatFullDate renders an ISO date in long form, e.g.
// "Sunday, 1 February 2026".
func FormatFullDate(dateStr string) string {
	d, err := time.ParseInLocation("2006-01-02", dateStr, istLocation)
	if err != nil {
		return dateStr
	}
	return d.Format("Monday, 2 January 2006")
}

// FormatNewsDate renders a news group date: "Today", "Yesterday", or a
// medium-form date.
func FormatNewsDate(dateKey string, now time.Time) string {
	if dateKey == CivilDate(now) {
		return "Today"
	}
	if dateKey == DaysAgo(now, 1) {
		return "Yesterday"
	}
	d, err := time.ParseInLocation("2006-01-02", dateKey, istLocation)
	if err != nil {
		return dateKey
	}
	return d.Format("Monday, 2 Jan")
}

// TimeAgo renders how long ago t was relative to now: "just now",
// "42m ago", "3h ago", "2d ago".
func TimeAgo(t, now time.Time) string {
	mins := int(now.Sub(t).Minutes())
	if mins < 1 {
		return "just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	hrs := mins / 60
	if hrs < 24 {
		return fmt.Sprintf("%dh ago", hrs)
	}
	return fmt.Sprintf("%dd ago", hrs/24)
}
