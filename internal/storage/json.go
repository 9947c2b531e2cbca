// Package storage owns the authoritative in-memory snapshot collection
// and mirrors it to a single JSON document on disk.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/model"
)

// Observer is notified after every mutation with the post-mutation
// collection state.
type Observer func(snapshots []model.Snapshot)

// Store holds the snapshot collection in memory and persists the whole
// document to a JSON file after every mutation. Writes are serialized
// through a single writer goroutine so the file always reflects the most
// recent mutation, even under rapid back-to-back calls.
type Store struct {
	mu        sync.RWMutex
	snapshots []model.Snapshot
	observers []Observer
	closed    bool

	errMu   sync.Mutex
	lastErr string

	path   string
	writes chan []model.Snapshot
	done   chan struct{}
}

// NewStore opens the store backed by the JSON document at path. A
// missing file means an empty collection; any other load failure is
// non-fatal and lands in the last-error state instead.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &Store{
		path:   path,
		writes: make(chan []model.Snapshot, 16),
		done:   make(chan struct{}),
	}
	s.load()
	go s.writer()

	return s, nil
}

// Path returns the location of the backing JSON document.
func (s *Store) Path() string {
	return s.path
}

// Snapshots returns a copy of the collection in insertion order.
func (s *Store) Snapshots() []model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Sorted returns the collection in display order: date ascending.
func (s *Store) Sorted() []model.Snapshot {
	return model.SortByDate(s.Snapshots())
}

// Get looks up a snapshot by id.
func (s *Store) Get(id string) (model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.snapshots[i], true
	}
	return model.Snapshot{}, false
}

// Len returns the number of snapshots in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Add appends a snapshot and schedules persistence. Ids must be fresh:
// a snapshot whose id already exists is rejected with ErrDuplicateID.
func (s *Store) Add(snapshot model.Snapshot) error {
	return s.AddBatch([]model.Snapshot{snapshot})
}

// AddBatch appends all given snapshots in one persistence cycle. The
// whole batch is rejected if any id collides with the collection or
// with another snapshot in the batch.
func (s *Store) AddBatch(snapshots []model.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return common.ErrStoreClosed
	}
	seen := make(map[string]bool, len(snapshots))
	for _, snapshot := range snapshots {
		if seen[snapshot.ID] || s.indexOf(snapshot.ID) >= 0 {
			s.mu.Unlock()
			return fmt.Errorf("add snapshot %s: %w", snapshot.ID, common.ErrDuplicateID)
		}
		seen[snapshot.ID] = true
	}
	s.snapshots = append(s.snapshots, snapshots...)
	state := s.scheduleSaveLocked()
	s.mu.Unlock()

	s.notify(state)
	return nil
}

// Update replaces the snapshot with a matching id in place. An unknown
// id is a silent no-op: nothing changes, including the error state.
func (s *Store) Update(snapshot model.Snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	i := s.indexOf(snapshot.ID)
	if i < 0 {
		s.mu.Unlock()
		slog.Debug("update target not found", "id", snapshot.ID)
		return
	}
	s.snapshots[i] = snapshot
	state := s.scheduleSaveLocked()
	s.mu.Unlock()

	s.notify(state)
}

// Delete removes the snapshots with the given ids and reports how many
// were removed. Unknown ids are ignored.
func (s *Store) Delete(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	kept := s.snapshots[:0]
	removed := 0
	for _, snapshot := range s.snapshots {
		if drop[snapshot.ID] {
			removed++
			continue
		}
		kept = append(kept, snapshot)
	}
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.snapshots = kept
	state := s.scheduleSaveLocked()
	s.mu.Unlock()

	s.notify(state)
	return removed
}

// DeleteAt removes the snapshots at the given positions in the
// date-sorted display order. Positions resolve to ids internally, so
// callers never translate view indices themselves. Out-of-range
// positions are ignored.
func (s *Store) DeleteAt(positions ...int) int {
	sorted := s.Sorted()
	ids := make([]string, 0, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= len(sorted) {
			continue
		}
		ids = append(ids, sorted[pos].ID)
	}
	return s.Delete(ids...)
}

// Subscribe registers an observer called after every mutation with the
// post-mutation state.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// LastError returns the most recent load or save failure, if any. It is
// cleared by the next successful persistence operation or by ClearError.
func (s *Store) LastError() (string, bool) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr, s.lastErr != ""
}

// ClearError dismisses the current error message.
func (s *Store) ClearError() {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.lastErr = ""
}

// Close drains pending writes and stops the writer goroutine. The store
// rejects mutations afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.writes)
	s.mu.Unlock()

	<-s.done
	return nil
}

// scheduleSaveLocked snapshots the current state and hands it to the
// writer goroutine. Must be called with mu held so writes are enqueued
// in mutation order.
func (s *Store) scheduleSaveLocked() []model.Snapshot {
	state := s.copyLocked()
	s.writes <- state
	return state
}

func (s *Store) copyLocked() []model.Snapshot {
	state := make([]model.Snapshot, len(s.snapshots))
	copy(state, s.snapshots)
	return state
}

func (s *Store) indexOf(id string) int {
	for i, snapshot := range s.snapshots {
		if snapshot.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify(state []model.Snapshot) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(state)
	}
}

func (s *Store) writer() {
	defer close(s.done)
	for state := range s.writes {
		s.persist(state)
	}
}

func (s *Store) persist(state []model.Snapshot) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		s.setError(fmt.Sprintf("Failed to save data: %v", err))
		slog.Error("failed to encode snapshots", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.setError(fmt.Sprintf("Failed to save data: %v", err))
		slog.Error("failed to save snapshots", "path", s.path, "error", err)
		return
	}
	s.ClearError()
	slog.Debug("saved snapshots", "path", s.path, "count", len(state))
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A missing file on first load means an empty collection.
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		s.setError(fmt.Sprintf("Failed to load data: %v", err))
		slog.Error("failed to load snapshots", "path", s.path, "error", err)
		return
	}

	var loaded []model.Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.setError(fmt.Sprintf("Failed to load data: %v", err))
		slog.Error("failed to decode snapshots", "path", s.path, "error", err)
		return
	}

	s.snapshots = loaded
	s.ClearError()
	slog.Debug("loaded snapshots", "path", s.path, "count", len(loaded))
}

func (s *Store) setError(msg string) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.lastErr = msg
}
