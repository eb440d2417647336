package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lox/mawj/internal/cities"
	"github.com/lox/mawj/internal/models"
	"github.com/lox/mawj/internal/session"
	"github.com/lox/mawj/internal/store"
)

type createAccountRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DefaultCity string `json:"default_city" validate:"omitempty,city"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !s.decode(w, r, &req) {
		return
	}
	city := cities.DefaultCode
	if req.DefaultCity != "" {
		c, _ := cities.Lookup(req.DefaultCity)
		city = c.Code
	}

	id, err := s.store.CreateAccount(req.Name, req.Email, req.Password, city)
	if errors.Is(err, store.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Cet email est déjà utilisé")
		return
	}
	if err != nil {
		s.internalError(w, "create account", err)
		return
	}
	user, err := s.store.GetUser(id)
	if err != nil {
		s.internalError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type createSessionRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required_with=Email"`
}

type sessionResponse struct {
	*session.Session
	User *models.User `json:"user,omitempty"`
}

// handleCreateSession starts a session. With credentials the session is
// signed in; without a body it is anonymous.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if !s.decode(w, r, &req) {
			return
		}
	}

	sess := session.New()
	var user *models.User
	if req.Email != "" {
		var err error
		user, err = s.store.Authenticate(req.Email, req.Password)
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
			return
		}
		if err != nil {
			s.internalError(w, "authenticate", err)
			return
		}
		sess.SetUser(user.ID, user.DefaultCity)
	}

	if err := s.store.SaveSession(sess); err != nil {
		s.internalError(w, "save session", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Session: sess, User: user})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSession(currentSession(r).Token); err != nil {
		s.internalError(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	resp := sessionResponse{Session: sess}
	if sess.Authenticated() {
		user, err := s.store.GetUser(sess.UserID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.internalError(w, "get user", err)
			return
		}
		resp.User = user
	}
	writeJSON(w, http.StatusOK, resp)
}

type cityRequest struct {
	City string `json:"city" validate:"required,city"`
}

func (s *Server) handleSetSessionCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := currentSession(r)
	sess.SetCity(req.City)
	if err := s.store.SaveSession(sess); err != nil {
		s.internalError(w, "save session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleSignOut detaches the user but keeps the token, which falls back to an
// anonymous session on the default city.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.Clear()
	if err := s.store.SaveSession(sess); err != nil {
		s.internalError(w, "save session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleUpdateDefaultCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, _ := cities.Lookup(req.City)
	if err := s.store.UpdateDefaultCity(currentSession(r).UserID, c.Code); err != nil {
		s.internalError(w, "update default city", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.store.ListTripLogs(currentSession(r).UserID)
	if err != nil {
		s.internalError(w, "list trips", err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleAddTrip(w http.ResponseWriter, r *http.Request) {
	var trip models.TripLog
	if !s.decode(w, r, &trip) {
		return
	}
	c, _ := cities.Lookup(trip.City)
	trip.City = c.Code
	userID := currentSession(r).UserID
	id, err := s.store.AddTripLog(userID, trip)
	if err != nil {
		s.internalError(w, "add trip", err)
		return
	}
	saved, err := s.store.GetTripLog(id)
	if err != nil {
		s.internalError(w, "get trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleTripStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.TripStatistics(currentSession(r).UserID)
	if err != nil {
		s.internalError(w, "trip stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleDeleteTrip removes one of the caller's trips. Trips of other users
// are reported as missing.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	trip, err := s.store.GetTripLog(id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && trip.UserID != currentSession(r).UserID) {
		writeError(w, http.StatusNotFound, "Sortie introuvable")
		return
	}
	if err != nil {
		s.internalError(w, "get trip", err)
		return
	}
	if err := s.store.DeleteTripLog(id); err != nil {
		s.internalError(w, "delete trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.store.ListFavorites(currentSession(r).UserID)
	if err != nil {
		s.internalError(w, "list favourites", err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, _ := cities.Lookup(req.City)
	if err := s.store.AddFavorite(currentSession(r).UserID, c.Code); err != nil {
		s.internalError(w, "add favourite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "city")
	if c, ok := cities.Lookup(code); ok {
		code = c.Code
	}
	if err := s.store.RemoveFavorite(currentSession(r).UserID, code); err != nil {
		s.internalError(w, "remove favourite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetSettings(currentSession(r).UserID)
	if err != nil {
		s.internalError(w, "get settings", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var st models.Settings
	if !s.decode(w, r, &st) {
		return
	}
	if err := s.store.SaveSettings(currentSession(r).UserID, st); err != nil {
		s.internalError(w, "save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	export, err := s.store.Export(currentSession(r).UserID)
	if err != nil {
		s.internalError(w, "export", err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="mawj-export.json"`)
	writeJSON(w, http.StatusOK, export)
}
