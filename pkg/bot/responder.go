// Package bot schedules the mock assistant's replies. Each send gets a
// deferred reply after a simulated thinking delay; a per-chat generation
// token makes the deferral cancellable, so deleting a chat drops its
// in-flight reply instead of orphan-inserting a message.
package bot

import (
	"math/rand"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/dataset"
	"github.com/ilyaedelshtein/kornit-chat/pkg/mockengine"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// ErrReplyPending is returned when a chat already has a reply in flight.
// One question at a time per chat.
var ErrReplyPending = errors.New("a reply is already pending for this chat")

// Reply delay bounds, matching the original simulated latency.
const (
	DefaultMinDelay = 700 * time.Millisecond
	DefaultMaxDelay = 1200 * time.Millisecond

	// pendingTTL is a safety net: tokens for replies that somehow never
	// complete expire instead of blocking the chat forever.
	pendingTTL = 30 * time.Second
)

// Responder owns the deferred mock replies.
type Responder struct {
	store *store.Store

	// pending maps chat id to the generation token of its in-flight reply.
	pending *gocache.Cache

	minDelay time.Duration
	maxDelay time.Duration

	mu    sync.Mutex
	rand  *rand.Rand
	seq   uint64
	sleep func(time.Duration)
	wg    sync.WaitGroup
}

// Option configures a Responder.
type Option func(*Responder)

// WithDelayBounds overrides the simulated thinking delay.
func WithDelayBounds(min, max time.Duration) Option {
	return func(r *Responder) {
		r.minDelay = min
		r.maxDelay = max
	}
}

// NewResponder creates a responder posting replies into the given store.
func NewResponder(s *store.Store, opts ...Option) *Responder {
	r := &Responder{
		store:    s,
		pending:  gocache.New(pendingTTL, time.Minute),
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pending reports whether the chat has a reply in flight.
func (r *Responder) Pending(chatID string) bool {
	_, found := r.pending.Get(chatID)
	return found
}

// Schedule defers a mock reply to the given question. It rejects a second
// send while the chat's previous reply is still pending.
func (r *Responder) Schedule(chatID, question string) error {
	r.mu.Lock()
	if _, found := r.pending.Get(chatID); found {
		r.mu.Unlock()
		return ErrReplyPending
	}
	r.seq++
	token := r.seq
	r.pending.Set(chatID, token, gocache.DefaultExpiration)
	delay := r.minDelay
	if r.maxDelay > r.minDelay {
		delay += time.Duration(r.rand.Int63n(int64(r.maxDelay - r.minDelay)))
	}
	r.mu.Unlock()

	r.store.SetTyping(true)

	r.wg.Add(1)
	go r.deliver(chatID, question, token, delay)
	return nil
}

func (r *Responder) deliver(chatID, question string, token uint64, delay time.Duration) {
	defer r.wg.Done()
	r.sleep(delay)

	// The chat may have been deleted while we were "thinking"; a revoked or
	// superseded token means this reply must be dropped.
	current, found := r.pending.Get(chatID)
	if !found || current.(uint64) != token {
		log.Debug().Str("chat_id", chatID).Msg("dropping reply for cancelled generation")
		r.store.SetTyping(false)
		return
	}
	r.pending.Delete(chatID)

	res := mockengine.Answer(question)
	_, err := r.store.PostBotMessage(chatID, mockengine.ReplyTextFor(question), res.SQL, dataset.KeyPrinting2024)
	if err != nil {
		// Chat vanished between the token check and the post; with explicit
		// errors this stays a logged drop rather than a silent orphan.
		log.Warn().Err(err).Str("chat_id", chatID).Msg("failed to post bot reply")
	}
	r.store.SetTyping(false)
}

// CancelForChat revokes the chat's pending generation, if any. Called before
// a chat is deleted.
func (r *Responder) CancelForChat(chatID string) {
	r.pending.Delete(chatID)
}

// Wait blocks until all in-flight replies are settled. Test helper and
// shutdown aid.
func (r *Responder) Wait() {
	r.wg.Wait()
}
