package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lox/mawj/internal/httputil"
	"github.com/lox/mawj/internal/metrics"
	"github.com/lox/mawj/internal/store"
)

const (
	DefaultMarineURL  = "https://marine-api.open-meteo.com/v1/marine"
	DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

	FeedMarine  = "marine"
	FeedWeather = "weather"

	forecastDays = "7"
)

var (
	marineHourly = []string{
		"wave_height",
		"wave_direction",
		"wave_period",
		"sea_surface_temperature",
		"ocean_current_velocity",
		"ocean_current_direction",
	}
	marineDaily = []string{"wave_height_max"}

	weatherHourly = []string{
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
		"temperature_2m",
		"cloud_cover",
	}
	weatherDaily = []string{"temperature_2m_max", "temperature_2m_min"}
)

// FetchError reports a failed feed request.
type FetchError struct {
	Feed string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s feed: %v", e.Feed, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Series values are pointers because Open-Meteo returns null for hours it has
// no data for.

type MarineHourly struct {
	Time                  []string   `json:"time"`
	WaveHeight            []*float64 `json:"wave_height"`
	WaveDirection         []*float64 `json:"wave_direction"`
	WavePeriod            []*float64 `json:"wave_period"`
	SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	OceanCurrentVelocity  []*float64 `json:"ocean_current_velocity"`
	OceanCurrentDirection []*float64 `json:"ocean_current_direction"`
}

type MarineDaily struct {
	Time          []string   `json:"time"`
	WaveHeightMax []*float64 `json:"wave_height_max"`
}

type MarineSeries struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Hourly    MarineHourly `json:"hourly"`
	Daily     MarineDaily  `json:"daily"`
}

type WeatherHourly struct {
	Time             []string   `json:"time"`
	WindSpeed10m     []*float64 `json:"wind_speed_10m"`
	WindDirection10m []*float64 `json:"wind_direction_10m"`
	WindGusts10m     []*float64 `json:"wind_gusts_10m"`
	Temperature2m    []*float64 `json:"temperature_2m"`
	CloudCover       []*float64 `json:"cloud_cover"`
}

type WeatherDaily struct {
	Time             []string   `json:"time"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
}

type WeatherSeries struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  string        `json:"timezone"`
	Hourly    WeatherHourly `json:"hourly"`
	Daily     WeatherDaily  `json:"daily"`
}

// Recorder receives the audit record of every feed request.
type Recorder interface {
	RecordFeedRun(run store.FeedRun, payload []byte) (int64, error)
}

type feedClient struct {
	feed     string
	baseURL  string
	getter   *httputil.Getter
	recorder Recorder
}

func newFeedClient(feed, baseURL string, opts []httputil.GetterOption) feedClient {
	return feedClient{
		feed:    feed,
		baseURL: baseURL,
		getter:  httputil.NewGetter("open-meteo-"+feed, opts...),
	}
}

// SetRecorder enables the feed audit. A nil recorder disables it.
func (c *feedClient) SetRecorder(r Recorder) {
	c.recorder = r
}

// BreakerState reports the circuit breaker state of the feed.
func (c *feedClient) BreakerState() string {
	return c.getter.State().String()
}

// MarineClient fetches wave, sea temperature and current series.
type MarineClient struct {
	feedClient
}

func NewMarineClient(baseURL string, opts ...httputil.GetterOption) *MarineClient {
	if baseURL == "" {
		baseURL = DefaultMarineURL
	}
	return &MarineClient{newFeedClient(FeedMarine, baseURL, opts)}
}

func (c *MarineClient) Fetch(ctx context.Context, lat, lon float64) (*MarineSeries, error) {
	var data MarineSeries
	if err := c.fetchJSON(ctx, lat, lon, marineHourly, marineDaily, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// WeatherClient fetches wind, air temperature and cloud cover series.
type WeatherClient struct {
	feedClient
}

func NewWeatherClient(baseURL string, opts ...httputil.GetterOption) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &WeatherClient{newFeedClient(FeedWeather, baseURL, opts)}
}

func (c *WeatherClient) Fetch(ctx context.Context, lat, lon float64) (*WeatherSeries, error) {
	var data WeatherSeries
	if err := c.fetchJSON(ctx, lat, lon, weatherHourly, weatherDaily, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func seriesURL(base string, lat, lon float64, hourly, daily []string) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("hourly", strings.Join(hourly, ","))
	q.Set("daily", strings.Join(daily, ","))
	q.Set("timezone", "auto")
	q.Set("forecast_days", forecastDays)
	return base + "?" + q.Encode()
}

func (c *feedClient) fetchJSON(ctx context.Context, lat, lon float64, hourly, daily []string, v any) error {
	start := time.Now()
	body, err := c.getter.Get(ctx, seriesURL(c.baseURL, lat, lon, hourly, daily))
	metrics.FeedLatency.WithLabelValues(c.feed).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(c.feed, "error").Inc()
		c.record(start, lat, lon, nil, err)
		return &FetchError{Feed: c.feed, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(c.feed, "decode_error").Inc()
		err = fmt.Errorf("unmarshal: %w", err)
		c.record(start, lat, lon, body, err)
		return &FetchError{Feed: c.feed, Err: err}
	}
	metrics.FeedRequestsTotal.WithLabelValues(c.feed, "ok").Inc()
	c.record(start, lat, lon, body, nil)
	return nil
}

func (c *feedClient) record(start time.Time, lat, lon float64, body []byte, fetchErr error) {
	if c.recorder == nil {
		return
	}

	run := store.FeedRun{
		StartedAt:         start,
		FinishedAt:        time.Now(),
		Feed:              c.feed,
		Location:          fmt.Sprintf("%.4f,%.4f", lat, lon),
		ResponseSizeBytes: len(body),
		Success:           fetchErr == nil,
	}
	var statusErr *httputil.StatusError
	switch {
	case errors.As(fetchErr, &statusErr):
		run.HTTPStatus = statusErr.StatusCode
	case body != nil:
		run.HTTPStatus = http.StatusOK
	}
	if fetchErr != nil {
		run.ErrorMessage = fetchErr.Error()
	}

	if _, err := c.recorder.RecordFeedRun(run, body); err != nil {
		log.Printf("ingest: record %s feed run: %v", c.feed, err)
	}
}
