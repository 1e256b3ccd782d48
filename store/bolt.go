package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/utils"
)

const (
	stateBucket = "state"
	snapshotKey = "snapshot"

	// SnapshotVersion guards against loading snapshots written by an
	// incompatible build. A mismatch fails the load.
	SnapshotVersion = 1
)

// ErrBadSnapshot is returned when the persisted snapshot cannot be used
var ErrBadSnapshot = fmt.Errorf("unusable state snapshot")

// Snapshot wraps the persisted state with an explicit version marker, so
// external-change comparison keys off the versioned snapshot rather than a
// content hash.
type Snapshot struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"savedAt"`
	State   event.State `json:"state"`
}

// Store is the persistence collaborator contract
type Store interface {
	Load() (event.State, error)
	Save(state event.State) error
	Close() error
}

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db    *bbolt.DB
	clock utils.Clock
}

// NewBoltStore opens (or creates) a BoltDB-backed snapshot store
func NewBoltStore(dbPath string, clock utils.Clock) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db, clock: clock}, nil
}

// Load reads the persisted snapshot. A missing snapshot yields an empty
// state and no error. A snapshot that cannot be decoded, or that carries
// the wrong version, returns an empty state and ErrBadSnapshot: the caller
// continues from empty rather than from partially-valid data.
func (s *BoltStore) Load() (event.State, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if bucket == nil {
			return nil
		}
		if raw := bucket.Get([]byte(snapshotKey)); raw != nil {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		return nil
	})
	if err != nil {
		return event.NewState(), fmt.Errorf("failed to read snapshot: %w", err)
	}
	if data == nil {
		return event.NewState(), nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return event.NewState(), fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.Version != SnapshotVersion {
		return event.NewState(), fmt.Errorf("%w: version %d, want %d", ErrBadSnapshot, snap.Version, SnapshotVersion)
	}
	normalize(&snap.State)
	return snap.State, nil
}

// Save writes the full state as one snapshot, replacing the previous one
func (s *BoltStore) Save(state event.State) error {
	snap := Snapshot{Version: SnapshotVersion, SavedAt: s.clock.Now(), State: state}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s does not exist", stateBucket)
		}
		return bucket.Put([]byte(snapshotKey), data)
	})
}

// Close closes the underlying database
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// normalize replaces nil containers from hand-edited snapshots
func normalize(st *event.State) {
	empty := event.NewState()
	if st.Stations == nil {
		st.Stations = empty.Stations
	}
	if st.Courses == nil {
		st.Courses = empty.Courses
	}
	if st.Participants == nil {
		st.Participants = empty.Participants
	}
	if st.Assignments == nil {
		st.Assignments = empty.Assignments
	}
	if st.ActivityLog == nil {
		st.ActivityLog = empty.ActivityLog
	}
}
