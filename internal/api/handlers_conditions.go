package api

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lox/mawj/internal/cities"
	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/report"
	"github.com/lox/mawj/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Breakers     map[string]string         `json:"breakers"`
	Health       []store.FeedHealthSummary `json:"health"`
	RecentErrors []store.FeedRun           `json:"recent_errors"`
	Archive      *store.FeedPayloadStats   `json:"archive"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Breakers: map[string]string{}}
	for feed, b := range s.breakers {
		resp.Breakers[feed] = b.BreakerState()
	}

	var err error
	if resp.Health, err = s.store.GetFeedHealth(7); err != nil {
		s.internalError(w, "feed health", err)
		return
	}
	if resp.RecentErrors, err = s.store.GetRecentFeedErrors(10); err != nil {
		s.internalError(w, "feed errors", err)
		return
	}
	if resp.Archive, err = s.store.GetFeedPayloadStats(); err != nil {
		s.internalError(w, "payload stats", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	if region := r.URL.Query().Get("region"); region != "" {
		list := cities.ByRegion()[region]
		if list == nil {
			list = []cities.City{}
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	writeJSON(w, http.StatusOK, cities.All())
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, forecast.ListSpecies())
}

type scoredSpecies struct {
	forecast.CatchabilityResult
	Badge string `json:"badge"`
}

func (s *Server) handleSpeciesScore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seaTemp, ok1 := queryFloat(q.Get("sea_temp"))
	waves, ok2 := queryFloat(q.Get("waves"))
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "Paramètres sea_temp et waves requis")
		return
	}

	month := s.now().In(s.loc).Month()
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Mois invalide")
			return
		}
		month = time.Month(m)
	}

	results := forecast.ScoreSpecies(seaTemp, waves, month)
	out := make([]scoredSpecies, 0, len(results))
	for _, res := range results {
		out = append(out, scoredSpecies{CatchabilityResult: res, Badge: res.Badge()})
	}
	writeJSON(w, http.StatusOK, out)
}

type classifyResponse struct {
	Verdict forecast.ConditionVerdict `json:"verdict"`
	Home    forecast.HomeVerdict      `json:"home"`
	Advice  []string                  `json:"advice"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	waves, ok1 := queryFloat(q.Get("waves"))
	wind, ok2 := queryFloat(q.Get("wind"))
	seaTemp, ok3 := queryFloat(q.Get("sea_temp"))
	if !ok1 || !ok2 || !ok3 {
		writeError(w, http.StatusBadRequest, "Paramètres waves, wind et sea_temp requis")
		return
	}

	verdict := forecast.Classify(waves, wind, seaTemp)
	writeJSON(w, http.StatusOK, classifyResponse{
		Verdict: verdict,
		Home:    forecast.Home(waves, wind, seaTemp),
		Advice:  forecast.Advice(verdict.Tier),
	})
}

func (s *Server) handleSessionReport(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, currentSession(r).City)
}

func (s *Server) handleCityReport(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, chi.URLParam(r, "city"))
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, code string) {
	rep, err := s.reports.BuildForCity(r.Context(), code)
	if errors.Is(err, report.ErrUnknownCity) {
		writeError(w, http.StatusNotFound, "Ville inconnue")
		return
	}
	if err != nil {
		log.Printf("api: report %s: %v", code, err)
		writeError(w, http.StatusBadGateway, msgFeedUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type tidesResponse struct {
	City    cities.City              `json:"city"`
	Tides   forecast.TideTable       `json:"tides"`
	Sun     forecast.SunTimes        `json:"sun"`
	Windows []forecast.FishingWindow `json:"windows"`
	Moon    forecast.Moon            `json:"moon"`
}

// handleCityTides serves the locally estimated tables; it never calls the
// feeds.
func (s *Server) handleCityTides(w http.ResponseWriter, r *http.Request) {
	city, ok := cities.Lookup(chi.URLParam(r, "city"))
	if !ok {
		writeError(w, http.StatusNotFound, "Ville inconnue")
		return
	}

	now := s.now().In(s.loc)
	sun := forecast.SunTimesAt(city.Latitude, now)
	tides := s.tides.Tides(now)
	writeJSON(w, http.StatusOK, tidesResponse{
		City:    city,
		Tides:   tides,
		Sun:     sun,
		Windows: forecast.FishingWindows(sun, tides),
		Moon:    forecast.MoonAt(now),
	})
}

func queryFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (s *Server) internalError(w http.ResponseWriter, what string, err error) {
	log.Printf("api: %s: %v", what, err)
	writeError(w, http.StatusInternalServerError, "Erreur interne")
}
