package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DefaultCity  string    `json:"default_city"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TripLog is one fishing outing recorded by a user. Date is YYYY-MM-DD and the
// start/end times are HH:MM; FishCaught is a free-text comma-separated list.
type TripLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	City       string    `json:"city" validate:"required,city"`
	StartTime  string    `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime    string    `json:"end_time" validate:"omitempty,datetime=15:04"`
	Waves      float64   `json:"waves" validate:"gte=0"`
	Wind       float64   `json:"wind" validate:"gte=0"`
	SeaTemp    float64   `json:"sea_temp"`
	FishCaught string    `json:"fish_caught"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// FishCount counts the entries of FishCaught as commas plus one. An empty field
// counts as zero.
func (t TripLog) FishCount() int {
	if t.FishCaught == "" {
		return 0
	}
	return strings.Count(t.FishCaught, ",") + 1
}

type CityCount struct {
	City  string `json:"city"`
	Trips int    `json:"trips"`
}

type TripStats struct {
	TotalTrips   int        `json:"total_trips"`
	TotalFish    int        `json:"total_fish"`
	FavoriteCity *CityCount `json:"favorite_city"`
}

type FavoriteCity struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	CityCode string    `json:"city_code"`
	AddedAt  time.Time `json:"added_at"`
}

type Settings struct {
	Theme         string `json:"theme" validate:"oneof=clair sombre"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language" validate:"oneof=fr ar en"`
	TempUnit      string `json:"temp_unit" validate:"oneof=celsius fahrenheit"`
	WindUnit      string `json:"wind_unit" validate:"oneof=kmh noeuds ms"`
	WaveUnit      string `json:"wave_unit" validate:"oneof=metres pieds"`
}

// DefaultSettings is what a user gets before saving any preference.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "clair",
		Notifications: true,
		Language:      "fr",
		TempUnit:      "celsius",
		WindUnit:      "kmh",
		WaveUnit:      "metres",
	}
}

type Export struct {
	User       *User     `json:"user"`
	Trips      []TripLog `json:"trips"`
	Stats      TripStats `json:"stats"`
	ExportedAt time.Time `json:"exported_at"`
}

// Snapshot holds the current-instant marine and weather readings after
// defaults have been applied.
type Snapshot struct {
	ObservedAt       string  `json:"observed_at"`
	WaveHeight       float64 `json:"wave_height"`
	WaveDirection    float64 `json:"wave_direction"`
	WavePeriod       float64 `json:"wave_period"`
	SeaTemp          float64 `json:"sea_temp"`
	CurrentSpeed     float64 `json:"current_speed"`
	CurrentDirection float64 `json:"current_direction"`
	WindSpeed        float64 `json:"wind_speed"`
	WindDirection    float64 `json:"wind_direction"`
	WindGusts        float64 `json:"wind_gusts"`
	AirTemp          float64 `json:"air_temp"`
	CloudCover       float64 `json:"cloud_cover"`
}
