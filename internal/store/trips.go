package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lox/mawj/internal/metrics"
	"github.com/lox/mawj/internal/models"
)

func (s *Store) AddTripLog(userID int64, t models.TripLog) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO trip_logs (user_id, date, city, start_time, end_time, waves, wind, sea_temp, fish_caught, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, t.Date, t.City, t.StartTime, t.EndTime, t.Waves, t.Wind, t.SeaTemp, t.FishCaught, t.Notes, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert trip log: %w", err)
	}
	metrics.TripsLogged.Inc()
	return result.LastInsertId()
}

const tripColumns = `id, user_id, date, city, COALESCE(start_time, ''), COALESCE(end_time, ''),
	COALESCE(waves, 0), COALESCE(wind, 0), COALESCE(sea_temp, 0),
	COALESCE(fish_caught, ''), COALESCE(notes, ''), created_at`

func scanTrip(row interface{ Scan(...any) error }) (models.TripLog, error) {
	var t models.TripLog
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.City, &t.StartTime, &t.EndTime,
		&t.Waves, &t.Wind, &t.SeaTemp, &t.FishCaught, &t.Notes, &t.CreatedAt)
	return t, err
}

// ListTripLogs returns a user's trips, most recent first.
func (s *Store) ListTripLogs(userID int64) ([]models.TripLog, error) {
	rows, err := s.db.Query(`
		SELECT `+tripColumns+`
		FROM trip_logs
		WHERE user_id = ?
		ORDER BY date DESC, start_time DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list trip logs: %w", err)
	}
	defer rows.Close()

	trips := []models.TripLog{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *Store) GetTripLog(id int64) (*models.TripLog, error) {
	t, err := scanTrip(s.db.QueryRow(`SELECT `+tripColumns+` FROM trip_logs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip log %d: %w", id, err)
	}
	return &t, nil
}

func (s *Store) DeleteTripLog(id int64) error {
	result, err := s.db.Exec(`DELETE FROM trip_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trip log %d: %w", id, err)
	}
	return requireAffected(result)
}

// TripStatistics summarises a user's journal. FavoriteCity is nil when the
// user has no trips.
func (s *Store) TripStatistics(userID int64) (*models.TripStats, error) {
	trips, err := s.ListTripLogs(userID)
	if err != nil {
		return nil, err
	}

	stats := &models.TripStats{TotalTrips: len(trips)}
	for _, t := range trips {
		stats.TotalFish += t.FishCount()
	}

	var fav models.CityCount
	err = s.db.QueryRow(`
		SELECT city, COUNT(*) AS total
		FROM trip_logs
		WHERE user_id = ?
		GROUP BY city
		ORDER BY total DESC, MAX(date) DESC
		LIMIT 1
	`, userID).Scan(&fav.City, &fav.Trips)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("favourite city: %w", err)
	default:
		stats.FavoriteCity = &fav
	}
	return stats, nil
}
