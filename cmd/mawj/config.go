package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/ingest"
	"github.com/lox/mawj/internal/report"
	"github.com/lox/mawj/internal/store"
)

// Globals are the flags shared by every command.
type Globals struct {
	DB          string `help:"Path to the SQLite database." default:"data/mawj.db" env:"MAWJ_DB" validate:"required"`
	Timezone    string `help:"Timezone of displayed clock times." default:"Africa/Casablanca" env:"MAWJ_TIMEZONE" validate:"required"`
	MarineURL   string `help:"Open-Meteo marine endpoint." env:"MAWJ_MARINE_URL" validate:"omitempty,url"`
	WeatherURL  string `help:"Open-Meteo weather endpoint." env:"MAWJ_WEATHER_URL" validate:"omitempty,url"`
	TideModel   string `help:"Tide model: approximate or harmonic." default:"approximate" env:"MAWJ_TIDE_MODEL" validate:"oneof=approximate harmonic"`
	TideStation string `help:"Station id for the harmonic tide model." env:"MAWJ_TIDE_STATION"`
	Audit       bool   `help:"Record feed requests in the database." default:"true" env:"MAWJ_AUDIT" negatable:""`
}

func (g *Globals) check() error {
	if err := validator.New().Struct(g); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (g *Globals) location() *time.Location {
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		log.Printf("Warning: could not load %s timezone, using UTC: %v", g.Timezone, err)
		return time.UTC
	}
	return loc
}

// openStore opens and migrates the database. The returned func closes it.
func (g *Globals) openStore() (*store.Store, func(), error) {
	if dir := filepath.Dir(g.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", g.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db, g.location())
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, func() { db.Close() }, nil
}

func (g *Globals) tideModel() (forecast.TideModel, error) {
	return forecast.NewTideModel(forecast.TideModelConfig{
		Kind:      g.TideModel,
		StationID: g.TideStation,
	}, nil)
}

type feeds struct {
	marine  *ingest.MarineClient
	weather *ingest.WeatherClient
	builder *report.Builder
}

// newFeeds wires the Open-Meteo clients into a report builder. With audit
// enabled every request is recorded in st.
func (g *Globals) newFeeds(st *store.Store, tides forecast.TideModel) *feeds {
	marine := ingest.NewMarineClient(g.MarineURL)
	weather := ingest.NewWeatherClient(g.WeatherURL)
	if g.Audit && st != nil {
		marine.SetRecorder(st)
		weather.SetRecorder(st)
	}
	return &feeds{
		marine:  marine,
		weather: weather,
		builder: report.NewBuilder(marine, weather, tides, g.location()),
	}
}
