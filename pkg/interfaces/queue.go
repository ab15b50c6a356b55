package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrQueueEntryNotFound reports a lookup for a queue entry that does not exist.
var ErrQueueEntryNotFound = errors.New("queue: entry not found")

// QueueEntry is one durable, encoded offline action. The sync manager
// owns the encoding; stores treat Payload as opaque bytes and must
// preserve append order across Load calls.
type QueueEntry struct {
	// ID uniquely identifies the entry within the store.
	ID string `json:"id"`
	// Kind names the queued action variant used to decode Payload.
	Kind string `json:"kind"`
	// Payload carries the JSON-encoded action.
	Payload []byte `json:"payload"`
	// EnqueuedAt records when the action was intercepted.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// QueueStore persists the offline action queue and the offline flag so
// both survive process restarts when the host offers durable storage.
// Implementations must keep Append/Replace atomic with respect to each
// other; the sync manager serialises calls but stores may still be read
// concurrently.
type QueueStore interface {
	// Append adds an entry at the tail of the queue.
	Append(ctx context.Context, entry QueueEntry) error
	// Load returns every queued entry in original append order.
	Load(ctx context.Context) ([]QueueEntry, error)
	// Replace swaps the whole queue content in one step. Passing an
	// empty slice clears the queue.
	Replace(ctx context.Context, entries []QueueEntry) error
	// SetOffline persists the live offline flag.
	SetOffline(ctx context.Context, offline bool) error
	// Offline restores the persisted offline flag, defaulting to false
	// when it was never stored.
	Offline(ctx context.Context) (bool, error)
}
