package store

import (
	"fmt"
	"time"

	"github.com/lox/mawj/internal/models"
)

// AddFavorite marks a city as favourite. Adding it twice is a no-op.
func (s *Store) AddFavorite(userID int64, cityCode string) error {
	_, err := s.db.Exec(`
		INSERT INTO favorite_cities (user_id, city_code, added_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, city_code) DO NOTHING
	`, userID, cityCode, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add favourite: %w", err)
	}
	return nil
}

func (s *Store) ListFavorites(userID int64) ([]models.FavoriteCity, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, city_code, added_at
		FROM favorite_cities
		WHERE user_id = ?
		ORDER BY added_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	favs := []models.FavoriteCity{}
	for rows.Next() {
		var f models.FavoriteCity
		if err := rows.Scan(&f.ID, &f.UserID, &f.CityCode, &f.AddedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (s *Store) RemoveFavorite(userID int64, cityCode string) error {
	_, err := s.db.Exec(`DELETE FROM favorite_cities WHERE user_id = ? AND city_code = ?`, userID, cityCode)
	if err != nil {
		return fmt.Errorf("remove favourite: %w", err)
	}
	return nil
}
