// Package storage persists the whole domain snapshot as one serialized blob,
// mirroring the single-key client storage the application started from.
package storage

import "github.com/ilyaedelshtein/kornit-chat/pkg/models"

// DefaultSnapshotKey is the key the snapshot blob is stored under.
const DefaultSnapshotKey = "ai-chat-root"

// Backend loads and saves the one snapshot blob. Load returns (nil, nil)
// when no snapshot exists yet; the store then starts from empty aggregates.
type Backend interface {
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
}

// Noop is a Backend that persists nothing. Used by tests and by callers that
// want a purely in-memory store.
type Noop struct{}

// Load always reports an absent snapshot.
func (Noop) Load() (*models.Snapshot, error) { return nil, nil }

// Save discards the snapshot.
func (Noop) Save(*models.Snapshot) error { return nil }
