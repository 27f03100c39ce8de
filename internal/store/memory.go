package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-charts/internal/weather"
)

var (
	// ErrNotFound is returned when no forecast is stored for a location or id.
	ErrNotFound = errors.New("no forecast data found")
)

// SnapshotHistory holds a time-ordered list of forecast snapshots for a location.
type SnapshotHistory struct {
	Snapshots []weather.Snapshot
}

// MemoryStore is a concurrency-safe in-memory forecast store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*SnapshotHistory
	// key: snapshot id, value: location key
	byID map[string]string

	// retention configuration
	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

var _ weather.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited; so is maxAge.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		byID:       make(map[string]string),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a snapshot for a location and enforces retention. The
// stored copy gets a fresh id and the location; a zero Timestamp is set to
// the current time.
func (s *MemoryStore) SaveSnapshot(loc weather.Location, snapshot weather.Snapshot) weather.Snapshot {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot.ID = uuid.NewString()
	snapshot.Location = loc
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = s.now()
	}
	snapshot.Timestamp = snapshot.Timestamp.UTC()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}
	history.Snapshots = append(history.Snapshots, snapshot)
	s.byID[snapshot.ID] = key

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		s.forget(history.Snapshots[:over])
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age, always keeping the newest snapshot.
	s.pruneHistory(history, s.now(), true)

	return snapshot
}

// GetLatest returns the most recent snapshot for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.Snapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetByID returns a snapshot by the id assigned when it was saved.
func (s *MemoryStore) GetByID(id string) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byID[id]
	if !ok {
		return weather.Snapshot{}, ErrNotFound
	}
	for _, snap := range s.data[key].Snapshots {
		if snap.ID == id {
			return snap, nil
		}
	}
	return weather.Snapshot{}, ErrNotFound
}

// GetRange returns all snapshots for a location between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.Snapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Snapshot
	for _, snap := range history.Snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// Prune drops every snapshot older than the configured max age relative to
// now and returns how many were removed. Locations left empty are removed.
func (s *MemoryStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, history := range s.data {
		removed += s.pruneHistory(history, now, false)
		if len(history.Snapshots) == 0 {
			delete(s.data, key)
		}
	}
	return removed
}

// pruneHistory drops snapshots older than maxAge. With keepLatest set the
// newest snapshot survives even if it is stale.
func (s *MemoryStore) pruneHistory(history *SnapshotHistory, now time.Time, keepLatest bool) int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := now.Add(-s.maxAge)
	i := 0
	for ; i < len(history.Snapshots); i++ {
		if !history.Snapshots[i].Timestamp.Before(cutoff) {
			break
		}
	}
	if keepLatest && i == len(history.Snapshots) {
		i--
	}
	if i <= 0 {
		return 0
	}
	s.forget(history.Snapshots[:i])
	history.Snapshots = history.Snapshots[i:]
	return i
}

func (s *MemoryStore) forget(snaps []weather.Snapshot) {
	for _, snap := range snaps {
		delete(s.byID, snap.ID)
	}
}
