package store

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// FeedRun is the audit record of one upstream feed request.
type FeedRun struct {
	ID                int64     `json:"id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Feed              string    `json:"feed"`     // "marine", "weather"
	Location          string    `json:"location"` // "lat,lon"
	HTTPStatus        int       `json:"http_status,omitempty"`
	ResponseSizeBytes int       `json:"response_size_bytes"`
	Success           bool      `json:"success"`
	ErrorMessage      string    `json:"error_message,omitempty"`
}

// RecordFeedRun stores the audit row for a feed request and, when the request
// succeeded, archives the compressed response body. Identical bodies are only
// archived once. Returns the run ID.
func (s *Store) RecordFeedRun(run FeedRun, payload []byte) (int64, error) {
	var status, size sql.NullInt64
	if run.HTTPStatus != 0 {
		status = sql.NullInt64{Int64: int64(run.HTTPStatus), Valid: true}
	}
	if run.ResponseSizeBytes != 0 || run.Success {
		size = sql.NullInt64{Int64: int64(run.ResponseSizeBytes), Valid: true}
	}
	var errMsg sql.NullString
	if run.ErrorMessage != "" {
		errMsg = sql.NullString{String: run.ErrorMessage, Valid: true}
	}

	result, err := s.db.Exec(`
		INSERT INTO feed_runs (started_at, finished_at, feed, location, http_status, response_size_bytes, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Feed, run.Location, status, size, run.Success, errMsg)
	if err != nil {
		return 0, fmt.Errorf("insert feed run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if !run.Success || len(payload) == 0 {
		return runID, nil
	}
	if err := s.archivePayload(runID, run, payload); err != nil {
		return runID, err
	}
	return runID, nil
}

func (s *Store) archivePayload(runID int64, run FeedRun, payload []byte) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}

	hash := sha256.Sum256(payload)

	_, err := s.db.Exec(`
		INSERT INTO feed_payloads (feed_run_id, fetched_at, feed, location, payload_compressed, payload_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(payload_hash) DO NOTHING
	`, runID, run.FinishedAt.UTC(), run.Feed, run.Location, buf.Bytes(), hex.EncodeToString(hash[:]))
	if err != nil {
		return fmt.Errorf("insert feed payload: %w", err)
	}
	return nil
}

// GetFeedPayload returns the decompressed body archived for a feed run.
func (s *Store) GetFeedPayload(runID int64) ([]byte, error) {
	var compressed []byte
	err := s.db.QueryRow(`SELECT payload_compressed FROM feed_payloads WHERE feed_run_id = ?`, runID).
		Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

// FeedHealthSummary is a daily roll-up of feed requests.
type FeedHealthSummary struct {
	Date        string `json:"date"`
	Feed        string `json:"feed"`
	TotalRuns   int    `json:"total_runs"`
	SuccessRuns int    `json:"success_runs"`
	FailedRuns  int    `json:"failed_runs"`
}

// GetFeedHealth returns daily feed summaries for the last N days.
func (s *Store) GetFeedHealth(days int) ([]FeedHealthSummary, error) {
	rows, err := s.db.Query(`
		SELECT
			DATE(SUBSTR(started_at, 1, 19)) as date,
			feed,
			COUNT(*) as total_runs,
			SUM(CASE WHEN success THEN 1 ELSE 0 END) as success_runs,
			SUM(CASE WHEN NOT success THEN 1 ELSE 0 END) as failed_runs
		FROM feed_runs
		WHERE SUBSTR(started_at, 1, 19) > datetime('now', '-' || ? || ' days')
		GROUP BY date, feed
		ORDER BY date DESC, feed
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []FeedHealthSummary{}
	for rows.Next() {
		var h FeedHealthSummary
		if err := rows.Scan(&h.Date, &h.Feed, &h.TotalRuns, &h.SuccessRuns, &h.FailedRuns); err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// GetRecentFeedErrors returns the most recent failed feed runs.
func (s *Store) GetRecentFeedErrors(limit int) ([]FeedRun, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, feed, location,
		       COALESCE(http_status, 0), COALESCE(response_size_bytes, 0),
		       success, COALESCE(error_message, '')
		FROM feed_runs
		WHERE success = FALSE
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []FeedRun{}
	for rows.Next() {
		var r FeedRun
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Feed, &r.Location,
			&r.HTTPStatus, &r.ResponseSizeBytes, &r.Success, &r.ErrorMessage); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// FeedPayloadStats describes the payload archive.
type FeedPayloadStats struct {
	TotalCount     int              `json:"total_count"`
	TotalSizeBytes int64            `json:"total_size_bytes"`
	CountByFeed    map[string]int   `json:"count_by_feed"`
	SizeByFeed     map[string]int64 `json:"size_by_feed"`
}

func (s *Store) GetFeedPayloadStats() (*FeedPayloadStats, error) {
	stats := &FeedPayloadStats{
		CountByFeed: make(map[string]int),
		SizeByFeed:  make(map[string]int64),
	}

	rows, err := s.db.Query(`
		SELECT feed, COUNT(*), COALESCE(SUM(LENGTH(payload_compressed)), 0)
		FROM feed_payloads
		GROUP BY feed
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var feed string
		var count int
		var size int64
		if err := rows.Scan(&feed, &count, &size); err != nil {
			return nil, err
		}
		stats.CountByFeed[feed] = count
		stats.SizeByFeed[feed] = size
		stats.TotalCount += count
		stats.TotalSizeBytes += size
	}
	return stats, rows.Err()
}

// CleanupOldFeedPayloads deletes archived payloads older than the given number
// of days and returns how many were removed.
func (s *Store) CleanupOldFeedPayloads(retentionDays int) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM feed_payloads
		WHERE fetched_at < DATE('now', '-' || ? || ' days')
	`, retentionDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
