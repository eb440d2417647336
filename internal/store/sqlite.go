package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lox/mawj/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Store struct {
	db       *sql.DB
	loc      *time.Location
	hashCost int
}

func New(db *sql.DB, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{db: db, loc: loc, hashCost: bcrypt.DefaultCost}
}

// SetHashCost changes the bcrypt cost for new password hashes.
func (s *Store) SetHashCost(cost int) {
	s.hashCost = cost
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateAccount registers a user and returns its id.
func (s *Store) CreateAccount(name, email, password, defaultCity string) (int64, error) {
	email = normalizeEmail(email)

	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return 0, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO users (name, email, password_hash, default_city, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, strings.TrimSpace(name), email, string(hash), defaultCity, time.Now().UTC())
	if isUniqueViolation(err) {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return result.LastInsertId()
}

const userColumns = `id, name, email, password_hash, COALESCE(default_city, ''), created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.DefaultCity, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks an email/password pair.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, normalizeEmail(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) GetUser(id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, err
}

func (s *Store) UpdateDefaultCity(userID int64, city string) error {
	result, err := s.db.Exec(`UPDATE users SET default_city = ? WHERE id = ?`, city, userID)
	if err != nil {
		return fmt.Errorf("update default city: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Export gathers everything stored about a user.
func (s *Store) Export(userID int64) (*models.Export, error) {
	u, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	trips, err := s.ListTripLogs(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.TripStatistics(userID)
	if err != nil {
		return nil, err
	}
	return &models.Export{
		User:       u,
		Trips:      trips,
		Stats:      *stats,
		ExportedAt: time.Now().In(s.loc),
	}, nil
}
