package progress

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"parafrase/internal/logging"
	"parafrase/internal/types"
)

// SQLiteStore implements Store on a single-file SQLite database. Records are
// stored as JSON blobs keyed by job ID; WAL mode keeps per-unit saves cheap.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// OpenSQLite opens (creating if necessary) the progress database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create progress directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open progress database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log := logging.Named("store")
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS progress (
		job_id     TEXT PRIMARY KEY,
		record     TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize progress schema: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

// Load returns the record for jobID, or ErrNotFound.
func (s *SQLiteStore) Load(jobID string) (*types.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob string
	err := s.db.QueryRow(`SELECT record FROM progress WHERE job_id = ?`, jobID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress %s: %w", jobID, err)
	}

	var record types.ProgressRecord
	if err := json.Unmarshal([]byte(blob), &record); err != nil {
		s.log.Warn("unreadable progress record", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if record.Completed == nil {
		record.Completed = make(map[int]types.RewriteResult)
	}
	return &record, nil
}

// Save upserts the record. Called after every completed unit, so a crash
// loses at most the in-flight unit.
func (s *SQLiteStore) Save(record *types.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.UpdatedAt = time.Now().UTC()
	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode progress %s: %w", record.JobID, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO progress (job_id, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(job_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		record.JobID, string(blob), record.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save progress %s: %w", record.JobID, err)
	}
	return nil
}

// Delete removes the record for jobID.
func (s *SQLiteStore) Delete(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM progress WHERE job_id = ?`, jobID); err != nil {
		return fmt.Errorf("failed to delete progress %s: %w", jobID, err)
	}
	return nil
}

// List returns all stored job IDs, newest first.
func (s *SQLiteStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT job_id FROM progress ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
