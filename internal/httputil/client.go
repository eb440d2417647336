package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

const DefaultTimeout = 30 * time.Second

// maximum bytes of an error body kept in StatusError
const errorBodyLimit = 512

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Getter performs GET requests through a circuit breaker with exponential
// backoff on transport errors, 429 and 5xx responses.
type Getter struct {
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	newBackOff func() backoff.BackOff
}

type GetterOption func(*Getter)

// WithBackOff overrides the retry schedule.
func WithBackOff(fn func() backoff.BackOff) GetterOption {
	return func(g *Getter) {
		g.newBackOff = fn
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) GetterOption {
	return func(g *Getter) {
		g.client = c
	}
}

// DefaultBackOff retries up to three times within 45 seconds.
func DefaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 45 * time.Second
	return backoff.WithMaxRetries(bo, 3)
}

// NewGetter returns a Getter whose breaker is identified by name.
func NewGetter(name string, opts ...GetterOption) *Getter {
	g := &Getter{
		client:     NewClient(),
		newBackOff: DefaultBackOff,
	}
	g.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && !se.Retryable()
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State exposes the breaker state, mostly for logging.
func (g *Getter) State() gobreaker.State {
	return g.breaker.State()
}

// Get fetches url and returns the body of a 200 response.
func (g *Getter) Get(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		body, err := g.breaker.Execute(func() ([]byte, error) {
			return g.do(ctx, url)
		})
		if err == nil {
			return body, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Retryable() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return backoff.RetryWithData(operation, backoff.WithContext(g.newBackOff(), ctx))
}

func (g *Getter) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
