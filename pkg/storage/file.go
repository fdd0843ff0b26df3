package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
)

// FileBackend stores the snapshot as a single JSON file. Writes go through a
// temp file and rename so a crash mid-write never corrupts the previous blob.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at the given path, creating parent
// directories as needed.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create snapshot directory")
	}
	return &FileBackend{path: path}, nil
}

// Load reads the snapshot file. A missing file means a fresh start; a corrupt
// file is treated the same way, after logging, so a bad blob can never brick
// the service.
func (b *FileBackend) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read snapshot file")
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn().Err(err).Str("path", b.path).Msg("discarding corrupt snapshot")
		return nil, nil
	}
	snap.Normalize()
	return &snap, nil
}

// Save writes the snapshot atomically.
func (b *FileBackend) Save(snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write snapshot temp file")
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return errors.Wrap(err, "failed to replace snapshot file")
	}
	return nil
}
