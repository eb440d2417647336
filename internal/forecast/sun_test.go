package forecast

import (
	"math"
	"testing"
	"time"
)

func TestSunTimesAtSolstice(t *testing.T) {
	// Day 172 at Casablanca's latitude.
	ref := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	if ref.YearDay() != 172 {
		t.Fatalf("YearDay = %d", ref.YearDay())
	}

	got := SunTimesAt(33.57, ref)
	if got.SunriseHours >= 7 {
		t.Errorf("sunrise %s should be before 07:00", got.Sunrise)
	}
	if got.SunsetHours <= 18.5 {
		t.Errorf("sunset %s should be after 18:30", got.Sunset)
	}
	if got.Sunrise != "04:53" || got.Sunset != "19:06" {
		t.Errorf("got %s-%s, want 04:53-19:06", got.Sunrise, got.Sunset)
	}
	if math.Abs(got.SunriseHours+got.SunsetHours-24) > 1e-9 {
		t.Errorf("sunrise and sunset should be symmetric around noon")
	}
}

func TestSunTimesAtEquator(t *testing.T) {
	got := SunTimesAt(0, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if got.Sunrise != "06:00" || got.Sunset != "18:00" {
		t.Errorf("equator got %s-%s, want 06:00-18:00", got.Sunrise, got.Sunset)
	}
}

func TestSunTimesAtPolarDay(t *testing.T) {
	got := SunTimesAt(80, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	if got.SunriseHours != 0 || got.Sunrise != "00:00" {
		t.Errorf("polar day sunrise = %s", got.Sunrise)
	}
}

func TestSunTimesAtIgnoresClock(t *testing.T) {
	morning := SunTimesAt(33.57, time.Date(2025, 10, 3, 1, 0, 0, 0, time.UTC))
	evening := SunTimesAt(33.57, time.Date(2025, 10, 3, 23, 0, 0, 0, time.UTC))
	if morning != evening {
		t.Errorf("same day gave %+v and %+v", morning, evening)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{6.5, "06:30"},
		{23.92, "23:55"},
		{0, "00:00"},
		{12.999, "12:59"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.hours); got != tt.want {
			t.Errorf("FormatClock(%v) = %s, want %s", tt.hours, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{0, "Nord"},
		{44, "Nord-Est"},
		{90, "Est"},
		{135, "Sud-Est"},
		{180, "Sud"},
		{225, "Sud-Ouest"},
		{270, "Ouest"},
		{337, "Nord-Ouest"},
		{350, "Nord"},
		{360, "Nord"},
	}
	for _, tt := range tests {
		if got := Direction(tt.degrees); got != tt.want {
			t.Errorf("Direction(%v) = %s, want %s", tt.degrees, got, tt.want)
		}
	}
}
