package mind

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindforge/collective-mind/core"
)

// HistoryEntry is one received peer message as remembered by a mind.
type HistoryEntry struct {
	ID         string      `json:"id"`
	Channel    string      `json:"channel"`
	Sender     string      `json:"sender"`
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload,omitempty"`
	ReceivedAt time.Time   `json:"received_at"`
}

// ConversationHistory is an ordered, append-only log of received peer
// messages, bounded so a long-lived mind doesn't grow without limit. Written
// only by the listener activity.
type ConversationHistory struct {
	mu      sync.Mutex
	entries []HistoryEntry
	limit   int
}

func NewConversationHistory(limit int) *ConversationHistory {
	return &ConversationHistory{limit: limit}
}

// Append records a message. When the log is full the oldest entry is
// dropped.
func (h *ConversationHistory) Append(channel string, msg core.PeerMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, HistoryEntry{
		ID:         uuid.New().String(),
		Channel:    channel,
		Sender:     msg.Mind,
		Type:       msg.Type,
		Payload:    msg.Payload,
		ReceivedAt: time.Now(),
	})
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Len returns the number of remembered messages.
func (h *ConversationHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Last returns up to n most recent entries, oldest first.
func (h *ConversationHistory) Last(n int) []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]HistoryEntry, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}
