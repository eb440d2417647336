package forecast

import (
	"math"
	"testing"
	"time"
)

func TestListSpeciesOrder(t *testing.T) {
	want := []string{"sardine", "dorade", "bar", "maquereau", "thon", "mulet"}
	got := ListSpecies()
	if len(got) != len(want) {
		t.Fatalf("got %d species, want %d", len(got), len(want))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("species[%d] = %s, want %s", i, got[i].Key, key)
		}
	}

	got[0].Name = "mutated"
	if ListSpecies()[0].Name != "Sardine" {
		t.Error("ListSpecies exposed the catalog to mutation")
	}
}

func TestLookupSpecies(t *testing.T) {
	s, ok := LookupSpecies("thon")
	if !ok || s.TempMin != 20 || s.TempMax != 26 || s.WaveMax != 3.0 {
		t.Errorf("LookupSpecies(thon) = %+v, %v", s, ok)
	}
	if _, ok := LookupSpecies("requin"); ok {
		t.Error("unknown key should not be found")
	}
}

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.November, SeasonAutumn},
		{time.December, SeasonWinter},
	}
	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestScoreSpeciesSummerScenario(t *testing.T) {
	got := ScoreSpecies(19, 1.0, time.July)

	want := []struct {
		key        string
		confidence int
	}{
		{"sardine", 99},
		{"bar", 91},
		{"mulet", 87},
		{"dorade", 83},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Species.Key != w.key || got[i].Confidence != w.confidence {
			t.Errorf("result[%d] = %s %d, want %s %d", i, got[i].Species.Key, got[i].Confidence, w.key, w.confidence)
		}
	}
}

func TestScoreSpeciesWinter(t *testing.T) {
	got := ScoreSpecies(15, 1.0, time.January)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].Species.Key != "bar" || got[0].Confidence != 97 {
		t.Errorf("first = %s %d, want bar 97", got[0].Species.Key, got[0].Confidence)
	}
	if got[1].Species.Key != "mulet" || got[1].Confidence != 81 {
		t.Errorf("second = %s %d, want mulet 81", got[1].Species.Key, got[1].Confidence)
	}
}

func TestScoreSpeciesRoughSea(t *testing.T) {
	if got := ScoreSpecies(20, 3.5, time.July); len(got) != 0 {
		t.Errorf("expected no species in 3.5 m waves, got %+v", got)
	}
}

func TestScoreSpeciesProperties(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		for temp := 8.0; temp <= 30; temp += 0.5 {
			for wave := 0.0; wave <= 3.5; wave += 0.25 {
				results := ScoreSpecies(temp, wave, month)

				present := make(map[string]bool)
				for i, r := range results {
					present[r.Species.Key] = true
					if r.Confidence < 0 || r.Confidence > 100 {
						t.Fatalf("confidence %d out of range for %s", r.Confidence, r.Species.Key)
					}
					if i > 0 && r.Confidence > results[i-1].Confidence {
						t.Fatalf("results not sorted at %v/%v/%s", temp, wave, month)
					}
				}
				for _, s := range ListSpecies() {
					if Eligible(s, temp, wave, month) != present[s.Key] {
						t.Fatalf("%s eligibility mismatch at %v/%v/%s", s.Key, temp, wave, month)
					}
				}
			}
		}
	}
}

func TestScoreSpeciesNonFinite(t *testing.T) {
	tests := []struct {
		name          string
		seaTemp, wave float64
	}{
		{"nan temperature", math.NaN(), 1.0},
		{"nan waves", 19, math.NaN()},
		{"infinite temperature", math.Inf(1), 1.0},
		{"negative infinite temperature", math.Inf(-1), 1.0},
		{"infinite waves", 19, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSpecies(tt.seaTemp, tt.wave, time.July); len(got) != 0 {
				t.Errorf("ScoreSpecies(%v, %v) = %v, want none", tt.seaTemp, tt.wave, got)
			}
		})
	}
}

func TestConfidenceClamp(t *testing.T) {
	sardine, _ := LookupSpecies("sardine")
	if got := Confidence(sardine, 60, 0); got != 0 {
		t.Errorf("Confidence far from ideal = %d, want 0", got)
	}
	if got := Confidence(sardine, 18.5, 0); got != 100 {
		t.Errorf("Confidence at ideal = %d, want 100", got)
	}
	if got := Confidence(sardine, 18.5, 1.7); got != 80 {
		t.Errorf("Confidence near wave limit = %d, want 80", got)
	}
}

func TestBadge(t *testing.T) {
	tests := []struct {
		confidence int
		want       string
	}{
		{100, "🟢"},
		{76, "🟢"},
		{75, "🟡"},
		{51, "🟡"},
		{50, "🔴"},
		{0, "🔴"},
	}
	for _, tt := range tests {
		r := CatchabilityResult{Confidence: tt.confidence}
		if got := r.Badge(); got != tt.want {
			t.Errorf("Badge(%d) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}
