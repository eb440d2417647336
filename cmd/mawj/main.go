package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/lox/mawj/internal/api"
	"github.com/lox/mawj/internal/cities"
	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/ingest"
	"github.com/lox/mawj/internal/render"
	"github.com/lox/mawj/internal/report"
)

type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API."`
	Report  ReportCmd  `cmd:"" help:"Print the fishing report of a city or position."`
	Species SpeciesCmd `cmd:"" help:"List species, or score them for given conditions."`
	Tides   TidesCmd   `cmd:"" help:"Print estimated tides, sun times and fishing windows."`
	Cities  CitiesCmd  `cmd:"" help:"List the coastal cities."`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations."`
	Status  StatusCmd  `cmd:"" help:"Show feed request health."`
	Prune   PruneCmd   `cmd:"" help:"Delete old feed payloads and idle sessions."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: %v", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mawj"),
		kong.Description("Conditions de pêche sur la côte marocaine."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(cli.Globals.check())
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

type ServeCmd struct {
	Port           string        `help:"HTTP server port." default:"8080" env:"PORT"`
	NoHousekeeping bool          `help:"Disable periodic pruning."`
	RetentionDays  int           `help:"Days of feed payloads to keep." default:"30" env:"MAWJ_PAYLOAD_RETENTION_DAYS"`
	SessionIdle    time.Duration `help:"Idle time after which sessions expire." default:"720h" env:"MAWJ_SESSION_IDLE"`
}

func (c *ServeCmd) Run(g *Globals) error {
	st, closeDB, err := g.openStore()
	if err != nil {
		return err
	}
	defer closeDB()
	log.Println("database migrated")

	tides, err := g.tideModel()
	if err != nil {
		return err
	}
	f := g.newFeeds(st, tides)

	server := api.NewServer(st, f.builder, tides, c.Port, g.location())
	server.SetBreaker(ingest.FeedMarine, f.marine)
	server.SetBreaker(ingest.FeedWeather, f.weather)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !c.NoHousekeeping {
		scheduler := ingest.NewScheduler(st, g.location(), c.RetentionDays, c.SessionIdle)
		go scheduler.Run(ctx)
	} else {
		log.Println("housekeeping disabled (--no-housekeeping)")
	}

	return server.Run(ctx)
}

type ReportCmd struct {
	City string   `arg:"" optional:"" default:"casablanca" help:"City code."`
	Lat  *float64 `help:"Latitude, instead of a city."`
	Lon  *float64 `help:"Longitude, instead of a city."`
	JSON bool     `help:"Print JSON."`
}

func (c *ReportCmd) Run(g *Globals) error {
	if (c.Lat == nil) != (c.Lon == nil) {
		return errors.New("--lat and --lon must be given together")
	}

	st, closeDB, err := g.openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	tides, err := g.tideModel()
	if err != nil {
		return err
	}
	b := g.newFeeds(st, tides).builder

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var r *report.Report
	if c.Lat != nil {
		r, err = b.Build(ctx, *c.Lat, *c.Lon)
	} else {
		r, err = b.BuildForCity(ctx, c.City)
	}
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return render.Report(os.Stdout, r)
}

type SpeciesCmd struct {
	SeaTemp *float64 `help:"Sea temperature in °C; scores species when set."`
	Waves   float64  `help:"Wave height in metres." default:"0"`
	Month   int      `help:"Month 1-12, defaults to the current month." default:"0"`
}

func (c *SpeciesCmd) Run(g *Globals) error {
	if c.SeaTemp == nil {
		return render.Catalog(os.Stdout, forecast.ListSpecies())
	}
	if !finite(*c.SeaTemp) || !finite(c.Waves) {
		return errors.New("--sea-temp and --waves must be finite numbers")
	}

	month := time.Now().In(g.location()).Month()
	if c.Month != 0 {
		if c.Month < 1 || c.Month > 12 {
			return fmt.Errorf("invalid month %d", c.Month)
		}
		month = time.Month(c.Month)
	}
	return render.Species(os.Stdout, forecast.ScoreSpecies(*c.SeaTemp, c.Waves, month))
}

type TidesCmd struct {
	City string `arg:"" optional:"" default:"casablanca" help:"City code."`
}

func (c *TidesCmd) Run(g *Globals) error {
	city, ok := cities.Lookup(c.City)
	if !ok {
		return fmt.Errorf("%w: %q", report.ErrUnknownCity, c.City)
	}
	tides, err := g.tideModel()
	if err != nil {
		return err
	}

	now := time.Now().In(g.location())
	sun := forecast.SunTimesAt(city.Latitude, now)
	table := tides.Tides(now)
	return render.Tides(os.Stdout, city, sun, table, forecast.FishingWindows(sun, table))
}

type CitiesCmd struct{}

func (c *CitiesCmd) Run() error {
	return render.Cities(os.Stdout)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	st, closeDB, err := g.openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	version, err := st.MigrationVersion()
	if err != nil {
		return err
	}
	log.Printf("database at schema version %d", version)
	return nil
}

type StatusCmd struct {
	Days   int `help:"Days of history." default:"7"`
	Errors int `help:"Number of recent failures to show." default:"10"`
}

func (c *StatusCmd) Run(g *Globals) error {
	st, closeDB, err := g.openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	health, err := st.GetFeedHealth(c.Days)
	if err != nil {
		return fmt.Errorf("feed health: %w", err)
	}
	failures, err := st.GetRecentFeedErrors(c.Errors)
	if err != nil {
		return fmt.Errorf("feed errors: %w", err)
	}
	archive, err := st.GetFeedPayloadStats()
	if err != nil {
		return fmt.Errorf("payload stats: %w", err)
	}
	return render.Status(os.Stdout, health, failures, archive)
}

type PruneCmd struct {
	RetentionDays int           `help:"Days of feed payloads to keep." default:"30" env:"MAWJ_PAYLOAD_RETENTION_DAYS"`
	SessionIdle   time.Duration `help:"Idle time after which sessions expire." default:"720h" env:"MAWJ_SESSION_IDLE"`
}

func (c *PruneCmd) Run(g *Globals) error {
	st, closeDB, err := g.openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	ingest.NewScheduler(st, g.location(), c.RetentionDays, c.SessionIdle).RunOnce()
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
