package forecast

import (
	"fmt"
	"math"
)

// FishingWindow is a suggested time range with the reason it was picked.
type FishingWindow struct {
	Range  string `json:"range"`
	Reason string `json:"reason"`
	Icon   string `json:"icon"`
}

// FishingWindows derives the dawn, dusk and high-tide windows from the sun and
// tide estimates. No scoring is involved.
func FishingWindows(sun SunTimes, tides TideTable) []FishingWindow {
	sunrise := int(math.Floor(sun.SunriseHours))
	sunset := int(math.Floor(sun.SunsetHours))
	high := tides.NextHigh.Hour()

	return []FishingWindow{
		{
			Range:  fmt.Sprintf("%02d:00-08:00", sunrise),
			Reason: "Aube + Marée favorable",
			Icon:   "🟢",
		},
		{
			Range:  fmt.Sprintf("%02d:00-%02d:00", wrapHour(sunset-1), wrapHour(sunset+1)),
			Reason: "Crépuscule + Activité poissons",
			Icon:   "🟢",
		},
		{
			Range:  fmt.Sprintf("%02d:00-%02d:00", high, wrapHour(high+2)),
			Reason: "Marée haute",
			Icon:   "🟡",
		},
	}
}

func wrapHour(h int) int {
	return ((h % 24) + 24) % 24
}
