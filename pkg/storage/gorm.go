package storage

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
)

// SnapshotRecord is the single-row table backing the gorm backend. The whole
// domain state lives in one JSON payload keyed by snapshot key, preserving the
// blob contract of the original client storage.
type SnapshotRecord struct {
	Key           string         `gorm:"primaryKey;size:100"`
	SchemaVersion int            `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for SnapshotRecord
func (SnapshotRecord) TableName() string {
	return "snapshots"
}

// GormBackend persists the snapshot into a relational database through gorm.
type GormBackend struct {
	db  *gorm.DB
	key string
}

// NewGormBackend migrates the snapshots table and returns a backend bound to
// the given snapshot key.
func NewGormBackend(db *gorm.DB, key string) (*GormBackend, error) {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate snapshots table")
	}
	return &GormBackend{db: db, key: key}, nil
}

// Load reads the snapshot row, if any.
func (b *GormBackend) Load() (*models.Snapshot, error) {
	var rec SnapshotRecord
	err := b.db.Where("key = ?", b.key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load snapshot row")
	}

	var snap models.Snapshot
	if err := json.Unmarshal(rec.Payload, &snap); err != nil {
		log.Warn().Err(err).Str("key", b.key).Msg("discarding corrupt snapshot row")
		return nil, nil
	}
	snap.Normalize()
	return &snap, nil
}

// Save upserts the snapshot row.
func (b *GormBackend) Save(snap *models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}

	rec := SnapshotRecord{
		Key:           b.key,
		SchemaVersion: snap.SchemaVersion,
		Payload:       payload,
	}
	err = b.db.Save(&rec).Error
	return errors.Wrap(err, "failed to save snapshot row")
}
