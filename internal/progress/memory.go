package progress

import (
	"encoding/json"
	"sort"
	"sync"

	"parafrase/internal/types"
)

// MemoryStore is an in-process Store used by tests and single-shot runs
// where durability is not required. Records are deep-copied through JSON so
// callers never share mutable state with the store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Load(jobID string) (*types.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.records[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	var record types.ProgressRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, ErrCorrupt
	}
	if record.Completed == nil {
		record.Completed = make(map[int]types.RewriteResult)
	}
	return &record, nil
}

func (s *MemoryStore) Save(record *types.ProgressRecord) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.JobID] = blob
	return nil
}

func (s *MemoryStore) Delete(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, jobID)
	return nil
}

func (s *MemoryStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }
