package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/report"
	"github.com/lox/mawj/internal/store"
)

// ReportBuilder assembles condition reports.
type ReportBuilder interface {
	Build(ctx context.Context, lat, lon float64) (*report.Report, error)
	BuildForCity(ctx context.Context, code string) (*report.Report, error)
}

// BreakerStater exposes the circuit breaker of a feed client.
type BreakerStater interface {
	BreakerState() string
}

type Server struct {
	store    *store.Store
	reports  ReportBuilder
	tides    forecast.TideModel
	port     string
	loc      *time.Location
	validate *validator.Validate
	breakers map[string]BreakerStater
	now      func() time.Time
}

func NewServer(store *store.Store, reports ReportBuilder, tides forecast.TideModel, port string, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		store:    store,
		reports:  reports,
		tides:    tides,
		port:     port,
		loc:      loc,
		validate: NewValidator(),
		breakers: map[string]BreakerStater{},
		now:      time.Now,
	}
}

// SetBreaker registers a feed whose breaker state is shown by /api/status.
func (s *Server) SetBreaker(feed string, b BreakerStater) {
	s.breakers[feed] = b
}

// SetClock replaces the wall clock used for tides and species scoring.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/status", s.handleStatus)
		r.Get("/species", s.handleSpecies)
		r.Get("/species/score", s.handleSpeciesScore)
		r.Get("/classify", s.handleClassify)
		r.Get("/report", s.handleSessionReport)

		r.Get("/cities", s.handleCities)
		r.Get("/cities/{city}/report", s.handleCityReport)
		r.Get("/cities/{city}/tides", s.handleCityTides)

		r.Post("/accounts", s.handleCreateAccount)
		r.Post("/sessions", s.handleCreateSession)

		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Delete("/sessions", s.handleDeleteSession)
			r.Get("/session", s.handleGetSession)
			r.Put("/session/city", s.handleSetSessionCity)
			r.Delete("/session/user", s.handleSignOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Put("/account/default-city", s.handleUpdateDefaultCity)

			r.Get("/trips", s.handleListTrips)
			r.Post("/trips", s.handleAddTrip)
			r.Get("/trips/stats", s.handleTripStats)
			r.Delete("/trips/{id}", s.handleDeleteTrip)

			r.Get("/favorites", s.handleListFavorites)
			r.Post("/favorites", s.handleAddFavorite)
			r.Delete("/favorites/{city}", s.handleRemoveFavorite)

			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handleSaveSettings)

			r.Get("/export", s.handleExport)
		})
	})
	return r
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("server: listening on :%s", s.port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
