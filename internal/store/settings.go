package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lox/mawj/internal/models"
)

// GetSettings returns the user's preferences, or the defaults if none are
// saved.
func (s *Store) GetSettings(userID int64) (models.Settings, error) {
	var st models.Settings
	err := s.db.QueryRow(`
		SELECT theme, notifications, language, temp_unit, wind_unit, wave_unit
		FROM user_settings WHERE user_id = ?
	`, userID).Scan(&st.Theme, &st.Notifications, &st.Language, &st.TempUnit, &st.WindUnit, &st.WaveUnit)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

func (s *Store) SaveSettings(userID int64, st models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO user_settings (user_id, theme, notifications, language, temp_unit, wind_unit, wave_unit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			theme = excluded.theme,
			notifications = excluded.notifications,
			language = excluded.language,
			temp_unit = excluded.temp_unit,
			wind_unit = excluded.wind_unit,
			wave_unit = excluded.wave_unit,
			updated_at = excluded.updated_at
	`, userID, st.Theme, st.Notifications, st.Language, st.TempUnit, st.WindUnit, st.WaveUnit, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
