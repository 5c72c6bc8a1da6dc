package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/yegors/soda-go/pkg/logger"
)

// TranscriptStorage handles storage of transcript records
type TranscriptStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTranscriptStorage creates a new SQLite transcript storage
func NewTranscriptStorage(db *sql.DB, logger *logger.Logger) (*TranscriptStorage, error) {
	storage := &TranscriptStorage{
		db:     db,
		logger: logger.Named("sqlite-transcripts"),
	}

	if err := storage.initDB(); err != nil {
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *TranscriptStorage) initDB() error {
	// Create transcripts table
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			text TEXT NOT NULL,
			language TEXT,
			timestamp TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}

	// Create indexes for performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transcripts_source ON transcripts(source)`,
		`CREATE INDEX IF NOT EXISTS idx_transcripts_timestamp ON transcripts(timestamp)`,
	}

	for _, indexSQL := range indexes {
		_, err = s.db.Exec(indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create transcript index: %w", err)
		}
	}

	return nil
}

// StoreTranscript stores a transcript record. Timestamps are normalized to
// UTC so the stored RFC3339 strings order lexicographically regardless of
// the caller's time zone.
func (s *TranscriptStorage) StoreTranscript(record *TranscriptRecord) (int64, error) {
	// Insert record
	result, err := s.db.Exec(
		`INSERT INTO transcripts
		(source, text, language, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.Source,
		record.Text,
		nullable(record.Language),
		record.Timestamp.UTC().Format(time.RFC3339),
		record.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transcript: %w", err)
	}

	// Get ID
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetRecentTranscripts returns recent transcripts across all sources
func (s *TranscriptStorage) GetRecentTranscripts(limit int) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source, text, language, timestamp, created_at
		FROM transcripts
		ORDER BY timestamp DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transcripts: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptRows(rows)
}

// GetTranscriptsBySource returns transcripts for a specific audio source
func (s *TranscriptStorage) GetTranscriptsBySource(source string, limit int) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source, text, language, timestamp, created_at
		FROM transcripts
		WHERE source = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts by source: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptRows(rows)
}

// GetTranscriptsByTimeRange returns transcripts within a time range
func (s *TranscriptStorage) GetTranscriptsByTimeRange(startTime, endTime time.Time) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source, text, language, timestamp, created_at
		FROM transcripts
		WHERE timestamp BETWEEN ? AND ?
		ORDER BY timestamp DESC`,
		startTime.UTC().Format(time.RFC3339), endTime.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts by time range: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptRows(rows)
}

// scanTranscriptRows scans database rows into TranscriptRecord structs
func (s *TranscriptStorage) scanTranscriptRows(rows *sql.Rows) ([]*TranscriptRecord, error) {
	var records []*TranscriptRecord
	for rows.Next() {
		var record TranscriptRecord
		var timestamp, createdAt string
		var language sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.Source,
			&record.Text,
			&language,
			&timestamp,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}

		// Parse timestamps
		var err error
		record.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}

		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		// Handle nullable language field
		if language.Valid {
			record.Language = language.String
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
