// Package store is the persisted domain store: the normalized state container
// for the chats, messages and auth aggregates plus transient UI state. All
// operations apply atomically under one lock, so consumers never observe a
// partial mutation, and every durable mutation is flushed to the storage
// backend before the operation returns.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/storage"
)

// Sentinel errors for missing aggregates. The original behavior swallowed
// these; here callers get an explicit signal and may ignore it to reproduce
// the old no-op semantics.
var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
)

// Store owns the four aggregates. A single instance is created in main and
// passed by reference; there is no package-level singleton.
type Store struct {
	mu       sync.Mutex
	chats    models.ChatsState
	messages models.MessagesState
	auth     models.AuthState
	ui       models.UIState

	backend storage.Backend
	now     func() time.Time
	newID   func() string

	subMu  sync.RWMutex
	subs   map[uint64]func(Event)
	subSeq uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New builds a store rehydrated from the backend. An absent or corrupt
// snapshot yields empty aggregates.
func New(backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		backend = storage.Noop{}
	}
	s := &Store{
		chats:    models.NewChatsState(),
		messages: models.NewMessagesState(),
		auth:     models.AuthState{},
		ui:       models.NewUIState(),
		backend:  backend,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := backend.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to rehydrate store")
	}
	if snap != nil {
		snap.Normalize()
		s.chats = snap.Chats
		s.messages = snap.Messages
		s.auth = snap.Auth
	}
	return s, nil
}

// flushLocked persists the durable aggregates. Persistence failures are
// logged, not raised: a write error must not wedge the state machine.
func (s *Store) flushLocked() {
	snap := &models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		Chats:         s.chats,
		Messages:      s.messages,
		Auth:          s.auth,
	}
	if err := s.backend.Save(snap); err != nil {
		log.Error().Err(err).Msg("failed to flush snapshot")
	}
}

// Snapshot returns a deep copy of the durable aggregates.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		Chats:         s.chats.Clone(),
		Messages:      s.messages.Clone(),
		Auth:          s.auth.Clone(),
	}
}
