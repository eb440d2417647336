// Package report assembles the fishing-conditions report for one location
// from the marine and weather feeds and the local estimators.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/mawj/internal/cities"
	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/ingest"
	"github.com/lox/mawj/internal/metrics"
	"github.com/lox/mawj/internal/models"
)

var ErrUnknownCity = errors.New("unknown city")

// Snapshot defaults for missing, null or zero readings.
const (
	DefaultSeaTemp = 18.0
	DefaultAirTemp = 20.0
)

// evolution sampling marks, in hours
var evolutionMarks = []int{0, 3, 6, 9, 12, 15, 18, 21}

type MarineFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*ingest.MarineSeries, error)
}

type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*ingest.WeatherSeries, error)
}

type Report struct {
	City         *cities.City                  `json:"city,omitempty"`
	Latitude     float64                       `json:"latitude"`
	Longitude    float64                       `json:"longitude"`
	GeneratedAt  time.Time                     `json:"generated_at"`
	Current      models.Snapshot               `json:"current"`
	Compass      Compass                       `json:"compass"`
	Verdict      forecast.ConditionVerdict     `json:"verdict"`
	Home         forecast.HomeVerdict          `json:"home"`
	Advice       []string                      `json:"advice"`
	Species      []forecast.CatchabilityResult `json:"species"`
	Sun          forecast.SunTimes             `json:"sun"`
	Tides        forecast.TideTable            `json:"tides"`
	Windows      []forecast.FishingWindow      `json:"windows"`
	Moon         forecast.Moon                 `json:"moon"`
	Evolution    []EvolutionPoint              `json:"evolution"`
	Daily        []DayOutlook                  `json:"daily"`
	QualityFlags []string                      `json:"quality_flags,omitempty"`
}

// Compass holds the French compass names of the current directions.
type Compass struct {
	Wave    string `json:"wave"`
	Wind    string `json:"wind"`
	Current string `json:"current"`
}

// EvolutionPoint is one sample of the next 24 hours.
type EvolutionPoint struct {
	Hour          int     `json:"hour"`
	Label         string  `json:"label"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection string  `json:"wind_direction"`
	WaveHeight    float64 `json:"wave_height"`
	SeaTemp       float64 `json:"sea_temp"`
}

// DayOutlook is one day of the 7-day digest. Air temperatures are nil when the
// weather feed has no value for the day.
type DayOutlook struct {
	Date    string                    `json:"date"`
	WaveMax float64                   `json:"wave_max"`
	TempMax *float64                  `json:"temp_max"`
	TempMin *float64                  `json:"temp_min"`
	Verdict forecast.ConditionVerdict `json:"verdict"`
}

type Builder struct {
	marine  MarineFetcher
	weather WeatherFetcher
	tides   forecast.TideModel
	loc     *time.Location
	now     func() time.Time
}

func NewBuilder(marine MarineFetcher, weather WeatherFetcher, tides forecast.TideModel, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{
		marine:  marine,
		weather: weather,
		tides:   tides,
		loc:     loc,
		now:     time.Now,
	}
}

// SetClock replaces the wall clock, for tests and replays.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// BuildForCity builds the report of a registry city.
func (b *Builder) BuildForCity(ctx context.Context, code string) (*Report, error) {
	city, ok := cities.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, code)
	}
	r, err := b.build(ctx, city.Code, city.Latitude, city.Longitude)
	if err != nil {
		return nil, err
	}
	r.City = &city
	return r, nil
}

// Build fetches both feeds concurrently and assembles the report. If either
// feed fails the whole build fails.
func (b *Builder) Build(ctx context.Context, lat, lon float64) (*Report, error) {
	return b.build(ctx, "coordinates", lat, lon)
}

func (b *Builder) build(ctx context.Context, label string, lat, lon float64) (*Report, error) {
	var (
		marine  *ingest.MarineSeries
		weather *ingest.WeatherSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		marine, err = b.marine.Fetch(gctx, lat, lon)
		return err
	})
	g.Go(func() error {
		var err error
		weather, err = b.weather.Fetch(gctx, lat, lon)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.ReportsBuilt.WithLabelValues(label, "error").Inc()
		return nil, err
	}

	now := b.now().In(b.loc)
	r := assemble(now, lat, lon, marine, weather, b.tides)

	for _, flag := range r.QualityFlags {
		metrics.QualityFlagsTotal.WithLabelValues(flag).Inc()
	}
	if len(r.QualityFlags) > 0 {
		log.Printf("report: %s quality flags: %s", label, ingest.QualityFlagsToJSON(r.QualityFlags))
	}
	metrics.ReportsBuilt.WithLabelValues(label, "ok").Inc()
	return r, nil
}

func assemble(now time.Time, lat, lon float64, marine *ingest.MarineSeries, weather *ingest.WeatherSeries, tides forecast.TideModel) *Report {
	cur := currentSnapshot(marine, weather)
	verdict := forecast.Classify(cur.WaveHeight, cur.WindSpeed, cur.SeaTemp)
	sun := forecast.SunTimesAt(lat, now)
	table := tides.Tides(now)

	species := forecast.ScoreSpecies(cur.SeaTemp, cur.WaveHeight, now.Month())
	if species == nil {
		species = []forecast.CatchabilityResult{}
	}

	return &Report{
		Latitude:    lat,
		Longitude:   lon,
		GeneratedAt: now,
		Current:     cur,
		Compass: Compass{
			Wave:    forecast.Direction(cur.WaveDirection),
			Wind:    forecast.Direction(cur.WindDirection),
			Current: forecast.Direction(cur.CurrentDirection),
		},
		Verdict:      verdict,
		Home:         forecast.Home(cur.WaveHeight, cur.WindSpeed, cur.SeaTemp),
		Advice:       forecast.Advice(verdict.Tier),
		Species:      species,
		Sun:          sun,
		Tides:        table,
		Windows:      forecast.FishingWindows(sun, table),
		Moon:         forecast.MoonAt(now),
		Evolution:    evolution(now.Hour(), marine, weather),
		Daily:        dailyDigest(marine, weather),
		QualityFlags: ingest.ValidateSnapshot(cur),
	}
}

// valueAt returns series[i], or def when the element is absent, null or zero.
func valueAt(series []*float64, i int, def float64) float64 {
	if i < 0 || i >= len(series) || series[i] == nil || *series[i] == 0 {
		return def
	}
	return *series[i]
}

func currentSnapshot(m *ingest.MarineSeries, w *ingest.WeatherSeries) models.Snapshot {
	snap := models.Snapshot{
		WaveHeight:       valueAt(m.Hourly.WaveHeight, 0, 0),
		WaveDirection:    valueAt(m.Hourly.WaveDirection, 0, 0),
		WavePeriod:       valueAt(m.Hourly.WavePeriod, 0, 0),
		SeaTemp:          valueAt(m.Hourly.SeaSurfaceTemperature, 0, DefaultSeaTemp),
		CurrentSpeed:     valueAt(m.Hourly.OceanCurrentVelocity, 0, 0),
		CurrentDirection: valueAt(m.Hourly.OceanCurrentDirection, 0, 0),
		WindSpeed:        valueAt(w.Hourly.WindSpeed10m, 0, 0),
		WindDirection:    valueAt(w.Hourly.WindDirection10m, 0, 0),
		WindGusts:        valueAt(w.Hourly.WindGusts10m, 0, 0),
		AirTemp:          valueAt(w.Hourly.Temperature2m, 0, DefaultAirTemp),
		CloudCover:       valueAt(w.Hourly.CloudCover, 0, 0),
	}
	if len(m.Hourly.Time) > 0 {
		snap.ObservedAt = m.Hourly.Time[0]
	}
	return snap
}

// evolutionIndex maps an hour mark to a series index. Marks already behind the
// current hour are taken from tomorrow; the index never passes the series end.
func evolutionIndex(mark, currentHour, length int) int {
	idx := mark
	if mark < currentHour {
		idx = mark + 24
	}
	if idx > length-1 {
		idx = length - 1
	}
	return idx
}

func evolution(currentHour int, m *ingest.MarineSeries, w *ingest.WeatherSeries) []EvolutionPoint {
	points := make([]EvolutionPoint, 0, len(evolutionMarks))
	for _, h := range evolutionMarks {
		label := fmt.Sprintf("%dh", h)
		if h == currentHour {
			label = "Maintenant"
		}

		wi := evolutionIndex(h, currentHour, len(w.Hourly.Time))
		mi := evolutionIndex(h, currentHour, len(m.Hourly.Time))
		points = append(points, EvolutionPoint{
			Hour:          h,
			Label:         label,
			WindSpeed:     valueAt(w.Hourly.WindSpeed10m, wi, 0),
			WindDirection: forecast.Direction(valueAt(w.Hourly.WindDirection10m, wi, 0)),
			WaveHeight:    valueAt(m.Hourly.WaveHeight, mi, 0),
			SeaTemp:       valueAt(m.Hourly.SeaSurfaceTemperature, mi, DefaultSeaTemp),
		})
	}
	return points
}

func dailyDigest(m *ingest.MarineSeries, w *ingest.WeatherSeries) []DayOutlook {
	days := make([]DayOutlook, 0, len(m.Daily.Time))
	for i, date := range m.Daily.Time {
		waveMax := valueAt(m.Daily.WaveHeightMax, i, 0)
		days = append(days, DayOutlook{
			Date:    date,
			WaveMax: waveMax,
			TempMax: pointAt(w.Daily.Temperature2mMax, i),
			TempMin: pointAt(w.Daily.Temperature2mMin, i),
			Verdict: forecast.DailyOutlook(waveMax),
		})
	}
	return days
}

func pointAt(series []*float64, i int) *float64 {
	if i >= len(series) || series[i] == nil {
		return nil
	}
	v := *series[i]
	return &v
}
