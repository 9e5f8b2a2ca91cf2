// Package progress persists per-unit completion state for batch jobs so an
// interrupted run can resume. The pipeline is storage-agnostic: it talks to
// the small Store interface, backed by SQLite in production.
package progress

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"parafrase/internal/types"
)

// ErrNotFound indicates no progress record exists for the job.
var ErrNotFound = errors.New("progress record not found")

// ErrCorrupt indicates a stored record is inconsistent with the current
// document; the job must restart from scratch.
var ErrCorrupt = errors.New("corrupted progress record")

// Store is durable key-value persistence for progress records.
type Store interface {
	// Load returns the record for jobID, or ErrNotFound.
	Load(jobID string) (*types.ProgressRecord, error)
	// Save upserts the record under its JobID.
	Save(record *types.ProgressRecord) error
	// Delete removes the record; deleting a missing record is not an error.
	Delete(jobID string) error
	// List returns the job IDs of all stored records.
	List() ([]string, error)
	// Close releases underlying resources.
	Close() error
}

// JobID derives the deterministic job identifier for a document and its
// processing configuration. The same input resumes the same job; changing
// the mode or chunk budget starts a fresh one.
func JobID(documentText, mode string, maxChunkChars int) string {
	h := sha256.New()
	h.Write([]byte(documentText))
	fmt.Fprintf(h, "|%s|%d", mode, maxChunkChars)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
