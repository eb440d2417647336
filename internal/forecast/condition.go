package forecast

import (
	"math"
	"time"
)

// Tier is the overall sea-condition favorability, most favorable first.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "bon"
	TierAverage   Tier = "moyen"
	TierPoor      Tier = "mauvais"
)

// ConditionVerdict is the four-tier classification used by the forecast views.
type ConditionVerdict struct {
	Tier    Tier   `json:"tier"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
	Details string `json:"details"`
}

var verdicts = map[Tier]ConditionVerdict{
	TierExcellent: {
		Tier:    TierExcellent,
		Color:   "#10B981",
		Icon:    "🟢",
		Message: "Conditions excellentes!",
		Details: "Mer calme, idéal pour la pêche",
	},
	TierGood: {
		Tier:    TierGood,
		Color:   "#F59E0B",
		Icon:    "🟡",
		Message: "Bonnes conditions",
		Details: "Mer praticable, bonne pêche possible",
	},
	TierAverage: {
		Tier:    TierAverage,
		Color:   "#FBBF24",
		Icon:    "🟡",
		Message: "Conditions moyennes",
		Details: "Pêche possible mais prudence recommandée",
	},
	TierPoor: {
		Tier:    TierPoor,
		Color:   "#EF4444",
		Icon:    "🔴",
		Message: "Mer agitée - Pêche déconseillée",
		Details: "Conditions dangereuses pour la pêche",
	},
}

// VerdictFor returns the fixed presentation attributes of a tier.
func VerdictFor(t Tier) ConditionVerdict {
	if v, ok := verdicts[t]; ok {
		return v
	}
	return verdicts[TierAverage]
}

// Classify maps waves (m), wind (km/h) and sea temperature (°C) to a tier.
// Rules are evaluated in order and the first match wins: rough sea or strong
// wind is always poor, even when the water temperature is ideal.
func Classify(waveHeight, windSpeed, seaTemp float64) ConditionVerdict {
	switch {
	case waveHeight > 3.0 || windSpeed > 40:
		return VerdictFor(TierPoor)
	case waveHeight < 1.5 && windSpeed < 20 && seaTemp >= 15 && seaTemp <= 22:
		return VerdictFor(TierExcellent)
	case waveHeight < 2.5 && windSpeed < 30:
		return VerdictFor(TierGood)
	default:
		return VerdictFor(TierAverage)
	}
}

// DailyOutlook classifies a forecast day from its maximum wave height alone.
// Typical waves are taken as 70% of the daily maximum, with a nominal 20 km/h
// wind and 18°C sea.
func DailyOutlook(waveMax float64) ConditionVerdict {
	return Classify(waveMax*0.7, 20, 18)
}

// Advice returns the short tips shown under a verdict.
func Advice(t Tier) []string {
	switch t {
	case TierExcellent:
		return []string{
			"🎣 Parfait pour sortir en mer",
			"⏰ Meilleures prises tôt le matin",
			"🌊 Mer calme, idéale pour débutants",
		}
	case TierGood:
		return []string{
			"✅ Bonnes conditions de pêche",
			"⚠️ Surveiller l'évolution de la mer",
			"🎣 Équipement standard recommandé",
		}
	case TierAverage:
		return []string{
			"⚠️ Conditions acceptables",
			"🧑‍🤝‍🧑 Pêche recommandée pour expérimentés",
			"🦺 Gilet de sauvetage obligatoire",
		}
	default:
		return []string{
			"❌ Pêche fortement déconseillée",
			"🏠 Restez à terre",
			"📅 Consultez les prévisions pour demain",
		}
	}
}

// HomeVerdict is the additive 0-100 verdict shown on the home screen. It is
// scored independently of Classify and the two do not always agree.
type HomeVerdict struct {
	Score     int    `json:"score"`
	Favorable bool   `json:"favorable"`
	Icon      string `json:"icon"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Color     string `json:"color"`
	BgColor   string `json:"bg_color"`
}

// HomeScore sums the wave, wind and temperature penalties.
func HomeScore(waveHeight, windSpeed, seaTemp float64) int {
	score := 100

	switch {
	case waveHeight > 3:
		score -= 50
	case waveHeight > 2:
		score -= 30
	case waveHeight > 1.5:
		score -= 15
	}

	switch {
	case windSpeed > 35:
		score -= 40
	case windSpeed > 25:
		score -= 25
	case windSpeed > 15:
		score -= 10
	}

	switch {
	case seaTemp < 12 || seaTemp > 28:
		score -= 20
	case seaTemp < 15 || seaTemp > 25:
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// Home computes the home-screen verdict.
func Home(waveHeight, windSpeed, seaTemp float64) HomeVerdict {
	score := HomeScore(waveHeight, windSpeed, seaTemp)
	switch {
	case score >= 70:
		return HomeVerdict{
			Score:     score,
			Favorable: true,
			Icon:      "🟢",
			Title:     "CONDITIONS FAVORABLES",
			Message:   "Ideal pour la peche!",
			Color:     "#10B981",
			BgColor:   "#D1FAE5",
		}
	case score >= 40:
		return HomeVerdict{
			Score:     score,
			Favorable: true,
			Icon:      "🟡",
			Title:     "CONDITIONS ACCEPTABLES",
			Message:   "Peche possible avec precautions",
			Color:     "#F59E0B",
			BgColor:   "#FEF3C7",
		}
	default:
		return HomeVerdict{
			Score:     score,
			Favorable: false,
			Icon:      "🔴",
			Title:     "CONDITIONS DIFFICILES",
			Message:   "Peche deconseillee",
			Color:     "#EF4444",
			BgColor:   "#FEE2E2",
		}
	}
}

// MoonPhase represents the current lunar phase.
type MoonPhase string

const (
	MoonNew            MoonPhase = "new"
	MoonWaxingCrescent MoonPhase = "waxing_crescent"
	MoonFirstQuarter   MoonPhase = "first_quarter"
	MoonWaxingGibbous  MoonPhase = "waxing_gibbous"
	MoonFull           MoonPhase = "full"
	MoonWaningGibbous  MoonPhase = "waning_gibbous"
	MoonLastQuarter    MoonPhase = "last_quarter"
	MoonWaningCrescent MoonPhase = "waning_crescent"
)

// LunarCycle is approximately 29.53 days.
const LunarCycle = 29.53

// reference new moon: January 6, 2000 18:14 UTC
var refNewMoon = time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)

func lunarAge(t time.Time) float64 {
	days := t.Sub(refNewMoon).Hours() / 24
	pos := math.Mod(days, LunarCycle)
	if pos < 0 {
		pos += LunarCycle
	}
	return pos
}

// GetMoonPhase calculates the moon phase for a given instant.
func GetMoonPhase(t time.Time) MoonPhase {
	switch int(lunarAge(t) / LunarCycle * 8) {
	case 0:
		return MoonNew
	case 1:
		return MoonWaxingCrescent
	case 2:
		return MoonFirstQuarter
	case 3:
		return MoonWaxingGibbous
	case 4:
		return MoonFull
	case 5:
		return MoonWaningGibbous
	case 6:
		return MoonLastQuarter
	default:
		return MoonWaningCrescent
	}
}

// MoonIllumination returns approximate illumination percentage (0-100).
func MoonIllumination(t time.Time) int {
	angle := lunarAge(t) / LunarCycle * 2 * math.Pi
	return int((1 - math.Cos(angle)) / 2 * 100)
}

// MoonName returns the French name of a phase.
func MoonName(phase MoonPhase) string {
	switch phase {
	case MoonNew:
		return "Nouvelle lune"
	case MoonWaxingCrescent:
		return "Premier croissant"
	case MoonFirstQuarter:
		return "Premier quartier"
	case MoonWaxingGibbous:
		return "Gibbeuse croissante"
	case MoonFull:
		return "Pleine lune"
	case MoonWaningGibbous:
		return "Gibbeuse décroissante"
	case MoonLastQuarter:
		return "Dernier quartier"
	case MoonWaningCrescent:
		return "Dernier croissant"
	default:
		return "Lune"
	}
}

// Moon summarises the lunar state for a report.
type Moon struct {
	Phase        MoonPhase `json:"phase"`
	Name         string    `json:"name"`
	Illumination int       `json:"illumination"`
}

// MoonAt returns the lunar state at t.
func MoonAt(t time.Time) Moon {
	phase := GetMoonPhase(t)
	return Moon{
		Phase:        phase,
		Name:         MoonName(phase),
		Illumination: MoonIllumination(t),
	}
}
