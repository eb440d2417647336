package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lox/mawj/internal/session"
)

// sessionTouchInterval limits how often a session's idle clock is written.
const sessionTouchInterval = time.Minute

// SaveSession inserts or updates a session row.
func (s *Store) SaveSession(sess *session.Session) error {
	var userID sql.NullInt64
	if sess.UserID != 0 {
		userID = sql.NullInt64{Int64: sess.UserID, Valid: true}
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, city, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			user_id = excluded.user_id,
			city = excluded.city,
			updated_at = excluded.updated_at
	`, sess.Token, userID, sess.City, now, now)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(token string) (*session.Session, error) {
	var sess session.Session
	var userID sql.NullInt64
	err := s.db.QueryRow(`SELECT token, user_id, city FROM sessions WHERE token = ?`, token).
		Scan(&sess.Token, &userID, &sess.City)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess.UserID = userID.Int64
	return &sess, nil
}

func (s *Store) DeleteSession(token string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// TouchSession marks a session as used now. Writes are skipped when the
// session was already touched within sessionTouchInterval.
func (s *Store) TouchSession(token string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		UPDATE sessions SET updated_at = ?
		WHERE token = ? AND updated_at < ?
	`, now, token, now.Add(-sessionTouchInterval))
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

// CleanupSessions removes sessions idle for longer than maxIdle.
func (s *Store) CleanupSessions(maxIdle time.Duration) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE updated_at < ?`, time.Now().UTC().Add(-maxIdle))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
