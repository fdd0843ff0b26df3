// Package nav reconciles three facts that can drift apart: the chat id in the
// URL, the store's current-chat pointer, and the empty-state flag. It is the
// only place allowed to resolve dangling chat references; the store itself
// stays a dumb container.
package nav

import (
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// State names the binder's position after a reconciliation pass.
type State string

const (
	// StateNoChats means no chats exist at all.
	StateNoChats State = "no_chats"
	// StateEmptyShown means the empty-state screen renders, chats may exist.
	StateEmptyShown State = "empty_shown"
	// StateChatActive means a chat thread renders.
	StateChatActive State = "chat_active"
	// StatePendingRedirect means the client must move to a new URL first.
	StatePendingRedirect State = "pending_redirect"
)

// Decision tells the client shell what to render and where the URL should be.
type Decision struct {
	State State `json:"state"`
	// ChatID is the chat to activate when State is chat_active.
	ChatID string `json:"chatId,omitempty"`
	// RedirectTo is the path to navigate to when State is pending_redirect.
	RedirectTo string `json:"redirectTo,omitempty"`
	// ShowEmptyState mirrors the flag the shell renders from.
	ShowEmptyState bool `json:"showEmptyState"`
}

// Binder reconciles URL, current chat and empty-state flag against the store.
type Binder struct {
	store *store.Store
}

// NewBinder creates a binder over the given store.
func NewBinder(s *store.Store) *Binder {
	return &Binder{store: s}
}

// ChatRootPath is the URL of the chat list with no selection.
const ChatRootPath = "/chat"

// ChatPath returns the URL for a specific chat.
func ChatPath(chatID string) string {
	return ChatRootPath + "/" + chatID
}

// Resolve reconciles the chat id taken from the URL (empty for the chat root)
// with the store and returns what the shell should do.
//
// Policy: deep links resume. A URL naming an existing chat activates it; the
// alternative policy of always landing on the empty state was rejected (see
// the pinned test). A fresh login overrides everything once: the shell lands
// on the chat root with the empty state regardless of existing chats.
func (b *Binder) Resolve(urlChatID string) Decision {
	// Consume the one-shot login redirect first; it wins over any URL.
	if b.store.ConsumeJustLoggedIn() {
		b.store.ResetChatView()
		return Decision{
			State:          StatePendingRedirect,
			RedirectTo:     ChatRootPath,
			ShowEmptyState: true,
		}
	}

	if b.store.ChatCount() == 0 {
		b.store.ResetChatView()
		d := Decision{State: StateNoChats, ShowEmptyState: true}
		if urlChatID != "" {
			d.State = StatePendingRedirect
			d.RedirectTo = ChatRootPath
		}
		return d
	}

	if urlChatID == "" {
		b.store.SetShowEmptyState(true)
		b.store.SetCurrentChat("")
		return Decision{State: StateEmptyShown, ShowEmptyState: true}
	}

	if _, ok := b.store.Chat(urlChatID); !ok {
		// Dangling reference: fall back to the chat root.
		b.store.ResetChatView()
		return Decision{
			State:          StatePendingRedirect,
			RedirectTo:     ChatRootPath,
			ShowEmptyState: true,
		}
	}

	b.store.SetCurrentChat(urlChatID)
	b.store.SetShowEmptyState(false)
	return Decision{State: StateChatActive, ChatID: urlChatID}
}

// Select activates a chat the user explicitly picked or created.
func (b *Binder) Select(chatID string) Decision {
	if _, ok := b.store.Chat(chatID); !ok {
		return b.Resolve("")
	}
	b.store.SetCurrentChat(chatID)
	b.store.SetShowEmptyState(false)
	return Decision{
		State:      StatePendingRedirect,
		ChatID:     chatID,
		RedirectTo: ChatPath(chatID),
	}
}

// AfterDelete reconciles navigation after a chat was removed. If the deleted
// chat was active and others remain, the most recent one takes over;
// otherwise the shell falls back to the empty state.
func (b *Binder) AfterDelete(deletedChatID, activeChatID string) Decision {
	if deletedChatID != activeChatID {
		return Decision{State: StateChatActive, ChatID: activeChatID}
	}
	if next := b.store.MostRecentChatID(); next != "" {
		return b.Select(next)
	}
	b.store.ResetChatView()
	return Decision{
		State:          StatePendingRedirect,
		RedirectTo:     ChatRootPath,
		ShowEmptyState: true,
	}
}
