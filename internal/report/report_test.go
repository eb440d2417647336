package report

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/ingest"
)

type marineFunc func(ctx context.Context, lat, lon float64) (*ingest.MarineSeries, error)

func (f marineFunc) Fetch(ctx context.Context, lat, lon float64) (*ingest.MarineSeries, error) {
	return f(ctx, lat, lon)
}

type weatherFunc func(ctx context.Context, lat, lon float64) (*ingest.WeatherSeries, error)

func (f weatherFunc) Fetch(ctx context.Context, lat, lon float64) (*ingest.WeatherSeries, error) {
	return f(ctx, lat, lon)
}

func ptr(v float64) *float64 { return &v }

func constant(n int, v float64) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		out[i] = ptr(v)
	}
	return out
}

func hours(n int) []string {
	out := make([]string, n)
	start := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
	}
	return out
}

// marineSeries has calm 1 m waves and a sea temperature that encodes the hour
// index: 19 + i/100.
func marineSeries(n int) *ingest.MarineSeries {
	sea := make([]*float64, n)
	for i := range sea {
		sea[i] = ptr(19 + float64(i)/100)
	}
	return &ingest.MarineSeries{
		Hourly: ingest.MarineHourly{
			Time:                  hours(n),
			WaveHeight:            constant(n, 1.0),
			WaveDirection:         constant(n, 290),
			WavePeriod:            constant(n, 9),
			SeaSurfaceTemperature: sea,
			OceanCurrentVelocity:  constant(n, 0.3),
			OceanCurrentDirection: constant(n, 180),
		},
		Daily: ingest.MarineDaily{
			Time:          []string{"2025-06-06", "2025-06-07", "2025-06-08"},
			WaveHeightMax: []*float64{ptr(1.0), ptr(4.0), nil},
		},
	}
}

func weatherSeries(n int) *ingest.WeatherSeries {
	return &ingest.WeatherSeries{
		Hourly: ingest.WeatherHourly{
			Time:             hours(n),
			WindSpeed10m:     constant(n, 10),
			WindDirection10m: constant(n, 0),
			WindGusts10m:     constant(n, 18),
			Temperature2m:    constant(n, 23),
			CloudCover:       constant(n, 20),
		},
		Daily: ingest.WeatherDaily{
			Time:             []string{"2025-06-06", "2025-06-07"},
			Temperature2mMax: []*float64{ptr(25), ptr(24)},
			Temperature2mMin: []*float64{ptr(17), nil},
		},
	}
}

func newTestBuilder(t *testing.T, m MarineFetcher, w WeatherFetcher, now time.Time) *Builder {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Casablanca")
	require.NoError(t, err)
	b := NewBuilder(m, w, forecast.NewApproximate(rand.New(rand.NewPCG(1, 2))), loc)
	b.SetClock(func() time.Time { return now })
	return b
}

func staticFeeds(n int) (MarineFetcher, WeatherFetcher) {
	m := marineFunc(func(context.Context, float64, float64) (*ingest.MarineSeries, error) {
		return marineSeries(n), nil
	})
	w := weatherFunc(func(context.Context, float64, float64) (*ingest.WeatherSeries, error) {
		return weatherSeries(n), nil
	})
	return m, w
}

func TestBuildForCity(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 6, 6, 9, 30, 0, 0, loc)

	m, w := staticFeeds(168)
	r, err := newTestBuilder(t, m, w, now).BuildForCity(context.Background(), "Casablanca")
	require.NoError(t, err)

	require.NotNil(t, r.City)
	assert.Equal(t, "casablanca", r.City.Code)
	assert.Equal(t, r.City.Latitude, r.Latitude)

	assert.Equal(t, 1.0, r.Current.WaveHeight)
	assert.Equal(t, 19.0, r.Current.SeaTemp)
	assert.Equal(t, 10.0, r.Current.WindSpeed)
	assert.Equal(t, 23.0, r.Current.AirTemp)
	assert.Equal(t, "2025-06-06T00:00", r.Current.ObservedAt)
	assert.Equal(t, "Ouest", r.Compass.Wave)
	assert.Equal(t, "Nord", r.Compass.Wind)
	assert.Equal(t, "Sud", r.Compass.Current)

	assert.Equal(t, forecast.TierExcellent, r.Verdict.Tier)
	assert.Equal(t, forecast.Advice(forecast.TierExcellent), r.Advice)
	assert.Equal(t, 100, r.Home.Score)
	assert.True(t, r.Home.Favorable)

	var keys []string
	for _, s := range r.Species {
		keys = append(keys, s.Species.Key)
	}
	assert.ElementsMatch(t, []string{"sardine", "dorade", "bar", "mulet"}, keys)

	assert.Len(t, r.Tides.AllEvents, 4)
	assert.Len(t, r.Windows, 3)
	assert.Equal(t, forecast.SunTimesAt(r.Latitude, now), r.Sun)
	assert.Equal(t, forecast.MoonAt(now), r.Moon)
	assert.Empty(t, r.QualityFlags)
}

func TestEvolutionSampling(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 6, 6, 9, 30, 0, 0, loc)

	m, w := staticFeeds(48)
	r, err := newTestBuilder(t, m, w, now).Build(context.Background(), 33.57, -7.59)
	require.NoError(t, err)
	require.Len(t, r.Evolution, 8)

	wantIdx := []int{24, 27, 30, 9, 12, 15, 18, 21}
	for i, p := range r.Evolution {
		assert.Equal(t, i*3, p.Hour)
		assert.Equal(t, 19+float64(wantIdx[i])/100, p.SeaTemp, "mark %d", p.Hour)
		assert.Equal(t, 10.0, p.WindSpeed)
		assert.Equal(t, "Nord", p.WindDirection)
	}
	assert.Equal(t, "0h", r.Evolution[0].Label)
	assert.Equal(t, "Maintenant", r.Evolution[3].Label)
	assert.Equal(t, "21h", r.Evolution[7].Label)
}

func TestEvolutionIndex(t *testing.T) {
	tests := []struct {
		mark, hour, length, want int
	}{
		{0, 0, 168, 0},
		{0, 1, 168, 24},
		{21, 22, 168, 45},
		{12, 9, 168, 12},
		{9, 9, 168, 9},
		{21, 22, 30, 29},
		{3, 10, 26, 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, evolutionIndex(tt.mark, tt.hour, tt.length), "mark=%d hour=%d len=%d", tt.mark, tt.hour, tt.length)
	}
}

func TestSnapshotDefaults(t *testing.T) {
	m := &ingest.MarineSeries{
		Hourly: ingest.MarineHourly{
			WaveHeight:            []*float64{nil},
			SeaSurfaceTemperature: []*float64{ptr(0)},
		},
	}
	w := &ingest.WeatherSeries{}

	snap := currentSnapshot(m, w)
	assert.Equal(t, 0.0, snap.WaveHeight)
	assert.Equal(t, DefaultSeaTemp, snap.SeaTemp)
	assert.Equal(t, DefaultAirTemp, snap.AirTemp)
	assert.Equal(t, 0.0, snap.WindSpeed)
	assert.Empty(t, snap.ObservedAt)

	// Empty series still give a full evolution.
	points := evolution(10, m, w)
	require.Len(t, points, 8)
	assert.Equal(t, DefaultSeaTemp, points[5].SeaTemp)
}

func TestDailyDigest(t *testing.T) {
	days := dailyDigest(marineSeries(1), weatherSeries(1))
	require.Len(t, days, 3)

	assert.Equal(t, "2025-06-06", days[0].Date)
	assert.Equal(t, forecast.TierGood, days[0].Verdict.Tier)
	require.NotNil(t, days[0].TempMax)
	assert.Equal(t, 25.0, *days[0].TempMax)

	assert.Equal(t, forecast.TierAverage, days[1].Verdict.Tier)
	assert.Nil(t, days[1].TempMin)

	assert.Equal(t, 0.0, days[2].WaveMax)
	assert.Nil(t, days[2].TempMax)
}

func TestBuildFailsWhenEitherFeedFails(t *testing.T) {
	now := time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC)
	feedErr := &ingest.FetchError{Feed: ingest.FeedMarine, Err: errors.New("status 503")}

	failingMarine := marineFunc(func(context.Context, float64, float64) (*ingest.MarineSeries, error) {
		return nil, feedErr
	})
	// The weather fetch only returns once the failed marine fetch cancels it.
	blockingWeather := weatherFunc(func(ctx context.Context, _, _ float64) (*ingest.WeatherSeries, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	r, err := newTestBuilder(t, failingMarine, blockingWeather, now).Build(context.Background(), 33.57, -7.59)
	assert.Nil(t, r)
	var fe *ingest.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ingest.FeedMarine, fe.Feed)

	m, _ := staticFeeds(24)
	failingWeather := weatherFunc(func(context.Context, float64, float64) (*ingest.WeatherSeries, error) {
		return nil, &ingest.FetchError{Feed: ingest.FeedWeather, Err: errors.New("timeout")}
	})
	r, err = newTestBuilder(t, m, failingWeather, now).Build(context.Background(), 33.57, -7.59)
	assert.Nil(t, r)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ingest.FeedWeather, fe.Feed)
}

func TestBuildForUnknownCity(t *testing.T) {
	m, w := staticFeeds(24)
	_, err := newTestBuilder(t, m, w, time.Now()).BuildForCity(context.Background(), "atlantis")
	assert.ErrorIs(t, err, ErrUnknownCity)
}

func TestBuildFlagsImplausibleReadings(t *testing.T) {
	m := marineSeries(24)
	m.Hourly.SeaSurfaceTemperature[0] = ptr(55)
	marine := marineFunc(func(context.Context, float64, float64) (*ingest.MarineSeries, error) {
		return m, nil
	})
	_, w := staticFeeds(24)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	r, err := newTestBuilder(t, marine, w, time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC)).Build(context.Background(), 33.57, -7.59)
	require.NoError(t, err)
	assert.Contains(t, r.QualityFlags, ingest.FlagSeaTempOutOfRange)
	assert.Contains(t, logs.String(), `quality flags: [`)
	assert.Contains(t, logs.String(), `"sea_temp_out_of_range"`)
	assert.Equal(t, 55.0, r.Current.SeaTemp)
	assert.Empty(t, r.Species)
}
