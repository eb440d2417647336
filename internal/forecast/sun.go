package forecast

import (
	"fmt"
	"math"
	"time"
)

// SunTimes holds approximate local sunrise and sunset. The decimal hours are
// kept alongside the formatted clock strings for downstream arithmetic.
type SunTimes struct {
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
	SunriseHours float64 `json:"-"`
	SunsetHours  float64 `json:"-"`
}

// SunTimesAt estimates sunrise and sunset from latitude and day of year using
// the solar declination and hour-angle approximation. It ignores longitude,
// timezone and the equation of time, so results are centred on 12:00.
func SunTimesAt(latitude float64, ref time.Time) SunTimes {
	day := float64(ref.YearDay())
	declination := 23.45 * math.Sin(360.0/365.0*(day-81)*math.Pi/180)

	latRad := latitude * math.Pi / 180
	declRad := declination * math.Pi / 180
	cosOmega := -math.Tan(latRad) * math.Tan(declRad)
	cosOmega = math.Max(-1, math.Min(1, cosOmega))
	omega := math.Acos(cosOmega) * 180 / math.Pi

	sunrise := 12 - omega/15
	sunset := 12 + omega/15
	return SunTimes{
		Sunrise:      FormatClock(sunrise),
		Sunset:       FormatClock(sunset),
		SunriseHours: sunrise,
		SunsetHours:  sunset,
	}
}

// FormatClock renders decimal hours as zero-padded HH:MM, truncating minutes.
func FormatClock(hours float64) string {
	h := int(math.Floor(hours))
	m := int(math.Floor((hours - float64(h)) * 60))
	return fmt.Sprintf("%02d:%02d", h, m)
}
