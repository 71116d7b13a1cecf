// Package schedule persists report schedules in a JSON file. The store is a
// deliberate flat-file design: schedules are low-volume operator data that
// must survive restarts even when no database is configured.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a schedule identifier does not exist.
var ErrNotFound = errors.New("schedule: not found")

// Schedule is one recurring report request.
type Schedule struct {
	ID        string    `json:"id"`
	ReportKey string    `json:"report_key"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads and writes the schedule file. All operations serialize through
// a single mutex; the file is rewritten whole on every mutation.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by path. The file is created lazily on the
// first Add.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all schedules, newest first. A missing or unreadable file
// yields an empty list rather than an error.
func (s *Store) List() []Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add persists a new schedule and returns it with a generated identifier.
func (s *Store) Add(reportKey, frequency string) (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched := Schedule{
		ID:        uuid.NewString(),
		ReportKey: reportKey,
		Frequency: frequency,
		CreatedAt: time.Now().UTC(),
	}
	schedules := append([]Schedule{sched}, s.load()...)
	if err := s.save(schedules); err != nil {
		return Schedule{}, err
	}
	return sched, nil
}

// Delete removes the schedule with the given identifier.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules := s.load()
	kept := schedules[:0]
	for _, sched := range schedules {
		if sched.ID != id {
			kept = append(kept, sched)
		}
	}
	if len(kept) == len(schedules) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.save(kept)
}

// load tolerates a missing or corrupt file: schedules are reconstructible
// operator data, not a system of record.
func (s *Store) load() []Schedule {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var schedules []Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil
	}
	return schedules
}

func (s *Store) save(schedules []Schedule) error {
	data, err := json.MarshalIndent(schedules, "", "  ")
	if err != nil {
		return fmt.Errorf("schedule: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("schedule: create directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("schedule: write file: %w", err)
	}
	return nil
}
