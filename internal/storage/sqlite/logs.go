package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mandalnilabja/chatstream/internal/storage/models"
)

const logColumns = `id, request_id, provider, COALESCE(model, ''), COALESCE(key_fingerprint, ''),
	message_count, status_code, COALESCE(error_message, ''), bytes_streamed, duration_ms, created_at`

// LogRequest stores a request log entry
func (s *Storage) LogRequest(log *models.RequestLog) error {
	if log == nil || log.Provider == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.ID == "" {
		log.ID = generateID("log")
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO request_logs (id, request_id, provider, model, key_fingerprint,
			message_count, status_code, error_message, bytes_streamed, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Provider, nullString(log.Model), nullString(log.KeyFingerprint),
		log.MessageCount, log.StatusCode, nullString(log.ErrorMessage), log.BytesStreamed,
		log.DurationMs, log.CreatedAt)

	return err
}

// GetRequestLog retrieves a single request log by ID
func (s *Storage) GetRequestLog(id string) (*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	row := s.db.QueryRow(`SELECT `+logColumns+` FROM request_logs WHERE id = ?`, id)

	log, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// GetRequestLogs retrieves request logs with filtering, newest first
func (s *Storage) GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT ` + logColumns + ` FROM request_logs WHERE 1=1`

	var args []any

	if filter.Provider != "" {
		query += " AND provider = ?"
		args = append(args, filter.Provider)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.RequestLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// DeleteRequestLogs removes logs created before the given date (YYYY-MM-DD)
func (s *Storage) DeleteRequestLogs(olderThan string) (int64, error) {
	if _, err := time.Parse(time.DateOnly, olderThan); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM request_logs WHERE DATE(created_at) < ?", olderThan)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(r rowScanner) (*models.RequestLog, error) {
	var log models.RequestLog
	err := r.Scan(&log.ID, &log.RequestID, &log.Provider, &log.Model, &log.KeyFingerprint,
		&log.MessageCount, &log.StatusCode, &log.ErrorMessage, &log.BytesStreamed,
		&log.DurationMs, &log.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &log, nil
}
