package forecast

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		waves   float64
		wind    float64
		seaTemp float64
		want    Tier
	}{
		{"calm sea in ideal water", 0.5, 10, 18, TierExcellent},
		{"wave threshold alone is poor", 3.5, 10, 18, TierPoor},
		{"strong wind alone is poor", 0.5, 45, 18, TierPoor},
		{"moderate sea is good", 2.0, 25, 18, TierGood},
		{"calm but cold water is good", 1.0, 10, 13, TierGood},
		{"calm but warm water is good", 1.0, 10, 23, TierGood},
		{"temperature bounds are inclusive", 1.0, 10, 15, TierExcellent},
		{"upper temperature bound", 1.0, 10, 22, TierExcellent},
		{"wave exactly 3 is not poor", 3.0, 10, 18, TierAverage},
		{"wind exactly 40 is not poor", 1.0, 40, 18, TierAverage},
		{"wave 2.5 falls to average", 2.5, 10, 18, TierAverage},
		{"wind 30 falls to average", 2.0, 30, 18, TierAverage},
		{"poor wins over ideal water", 3.2, 5, 18, TierPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.waves, tt.wind, tt.seaTemp)
			if got.Tier != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %s, want %s", tt.waves, tt.wind, tt.seaTemp, got.Tier, tt.want)
			}
			if got != VerdictFor(tt.want) {
				t.Errorf("verdict attributes = %+v, want %+v", got, VerdictFor(tt.want))
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	a := Classify(1.7, 22, 19)
	b := Classify(1.7, 22, 19)
	if a != b {
		t.Errorf("Classify not deterministic: %+v vs %+v", a, b)
	}
}

func TestVerdictAttributes(t *testing.T) {
	poor := VerdictFor(TierPoor)
	if poor.Color != "#EF4444" || poor.Icon != "🔴" {
		t.Errorf("poor = %+v", poor)
	}
	if poor.Message != "Mer agitée - Pêche déconseillée" {
		t.Errorf("poor message = %q", poor.Message)
	}
	excellent := VerdictFor(TierExcellent)
	if excellent.Color != "#10B981" || excellent.Details != "Mer calme, idéal pour la pêche" {
		t.Errorf("excellent = %+v", excellent)
	}
	if VerdictFor(Tier("unknown")).Tier != TierAverage {
		t.Error("unknown tier should fall back to average")
	}
}

func TestDailyOutlook(t *testing.T) {
	tests := []struct {
		waveMax float64
		want    Tier
	}{
		{1.0, TierGood},
		{3.5, TierGood},
		{4.0, TierAverage},
		{4.5, TierPoor},
	}
	for _, tt := range tests {
		if got := DailyOutlook(tt.waveMax); got.Tier != tt.want {
			t.Errorf("DailyOutlook(%v) = %s, want %s", tt.waveMax, got.Tier, tt.want)
		}
	}
}

func TestAdvice(t *testing.T) {
	for _, tier := range []Tier{TierExcellent, TierGood, TierAverage, TierPoor} {
		tips := Advice(tier)
		if len(tips) != 3 {
			t.Errorf("Advice(%s) returned %d tips, want 3", tier, len(tips))
		}
	}
	if got := Advice(TierPoor)[1]; got != "🏠 Restez à terre" {
		t.Errorf("poor advice = %q", got)
	}
}

func TestHome(t *testing.T) {
	tests := []struct {
		name      string
		waves     float64
		wind      float64
		seaTemp   float64
		score     int
		favorable bool
		title     string
	}{
		{"perfect day", 0.5, 10, 18, 100, true, "CONDITIONS FAVORABLES"},
		{"moderate penalties", 1.8, 20, 14, 65, true, "CONDITIONS ACCEPTABLES"},
		{"threshold 70 is green", 2.5, 10, 18, 70, true, "CONDITIONS FAVORABLES"},
		{"threshold 40 is yellow", 2.5, 20, 10, 40, true, "CONDITIONS ACCEPTABLES"},
		{"rough and warm", 2.5, 30, 26, 35, false, "CONDITIONS DIFFICILES"},
		{"score floors at zero", 3.5, 45, 10, 0, false, "CONDITIONS DIFFICILES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Home(tt.waves, tt.wind, tt.seaTemp)
			if got.Score != tt.score {
				t.Errorf("Score = %d, want %d", got.Score, tt.score)
			}
			if got.Favorable != tt.favorable {
				t.Errorf("Favorable = %v, want %v", got.Favorable, tt.favorable)
			}
			if got.Title != tt.title {
				t.Errorf("Title = %q, want %q", got.Title, tt.title)
			}
		})
	}
}

func TestHomeAndClassifyDiverge(t *testing.T) {
	// 2.9 m waves and 39 km/h wind: the four-tier classifier says average,
	// the home screen says conditions are difficult.
	if got := Classify(2.9, 39, 18).Tier; got != TierAverage {
		t.Fatalf("Classify = %s, want average", got)
	}
	if got := Home(2.9, 39, 18); got.Favorable {
		t.Errorf("Home = %+v, want unfavorable", got)
	}
}

func TestGetMoonPhase(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
		want MoonPhase
	}{
		{"reference new moon", time.Date(2000, 1, 6, 20, 0, 0, 0, time.UTC), MoonNew},
		{"half a cycle later", time.Date(2000, 1, 22, 0, 0, 0, 0, time.UTC), MoonFull},
		{"first quarter", time.Date(2000, 1, 14, 12, 0, 0, 0, time.UTC), MoonFirstQuarter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetMoonPhase(tt.when); got != tt.want {
				t.Errorf("GetMoonPhase = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoonAt(t *testing.T) {
	m := MoonAt(time.Date(2000, 1, 22, 0, 0, 0, 0, time.UTC))
	if m.Name != "Pleine lune" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Illumination < 95 {
		t.Errorf("Illumination = %d, want near 100", m.Illumination)
	}
}
