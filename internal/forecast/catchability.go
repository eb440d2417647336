package forecast

import (
	"math"
	"sort"
	"time"
)

// CatchabilityResult pairs a species with the confidence (0-100) that it can be
// caught under the current conditions.
type CatchabilityResult struct {
	Species    Species `json:"species"`
	Confidence int     `json:"confidence"`
}

// Badge returns the traffic-light marker shown next to the confidence.
func (r CatchabilityResult) Badge() string {
	switch {
	case r.Confidence > 75:
		return "🟢"
	case r.Confidence > 50:
		return "🟡"
	default:
		return "🔴"
	}
}

// SeasonForMonth maps a calendar month onto a fishing season.
func SeasonForMonth(month time.Month) Season {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// Eligible reports whether the species can be caught at all: right season,
// sea temperature inside its range and waves no higher than it tolerates.
func Eligible(s Species, seaTemp, waveHeight float64, month time.Month) bool {
	if !s.InSeason(SeasonForMonth(month)) {
		return false
	}
	// NaN fails both comparisons and is never eligible.
	if !(seaTemp >= s.TempMin && seaTemp <= s.TempMax) {
		return false
	}
	return waveHeight <= s.WaveMax
}

// Confidence scores an eligible species. The score falls by 3 points per degree
// away from the ideal temperature, and by 10 or 20 points as the waves approach
// the species' limit.
func Confidence(s Species, seaTemp, waveHeight float64) int {
	score := 100.0
	score -= math.Abs(seaTemp-s.IdealTemp()) * 3

	ratio := waveHeight / s.WaveMax
	if ratio > 0.8 {
		score -= 20
	} else if ratio > 0.5 {
		score -= 10
	}

	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

// ScoreSpecies returns the species catchable under the given conditions, most
// likely first. Species outside their window are left out; ties keep catalog
// order.
func ScoreSpecies(seaTemp, waveHeight float64, month time.Month) []CatchabilityResult {
	var results []CatchabilityResult
	for _, s := range catalog {
		if !Eligible(s, seaTemp, waveHeight, month) {
			continue
		}
		results = append(results, CatchabilityResult{
			Species:    s,
			Confidence: Confidence(s, seaTemp, waveHeight),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}
