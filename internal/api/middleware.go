package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lox/mawj/internal/session"
	"github.com/lox/mawj/internal/store"
)

type storedKey struct{}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// withSession loads the session named by the bearer token. Requests without a
// token get a fresh anonymous session that is not persisted.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			ctx := session.WithSession(r.Context(), session.New())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		sess, err := s.store.GetSession(token)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Session inconnue ou expirée")
			return
		}
		if err != nil {
			log.Printf("api: load session: %v", err)
			writeError(w, http.StatusInternalServerError, "Erreur interne")
			return
		}

		if err := s.store.TouchSession(token); err != nil {
			log.Printf("api: touch session: %v", err)
		}

		ctx := session.WithSession(r.Context(), sess)
		ctx = context.WithValue(ctx, storedKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isStored(ctx context.Context) bool {
	stored, _ := ctx.Value(storedKey{}).(bool)
	return stored
}

func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isStored(r.Context()) {
			writeError(w, http.StatusUnauthorized, "Session requise")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		if !isStored(r.Context()) || !sess.Authenticated() {
			writeError(w, http.StatusUnauthorized, "Connexion requise")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentSession(r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return session.New()
	}
	return sess
}
