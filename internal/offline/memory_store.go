package offline

import (
	"context"
	"sync"

	"github.com/qitae/go-approval/pkg/interfaces"
)

// MemoryQueueStore is a process-local QueueStore for hosts without
// durable storage and for tests.
type MemoryQueueStore struct {
	mu      sync.Mutex
	entries []interfaces.QueueEntry
	offline bool
}

// NewMemoryQueueStore creates an empty in-memory queue store.
func NewMemoryQueueStore() *MemoryQueueStore {
	return &MemoryQueueStore{}
}

var _ interfaces.QueueStore = (*MemoryQueueStore)(nil)

// Append adds an entry at the tail of the queue.
func (s *MemoryQueueStore) Append(_ context.Context, entry interfaces.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, cloneEntry(entry))
	return nil
}

// Load returns every queued entry in append order.
func (s *MemoryQueueStore) Load(context.Context) ([]interfaces.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interfaces.QueueEntry, len(s.entries))
	for i, entry := range s.entries {
		out[i] = cloneEntry(entry)
	}
	return out, nil
}

// Replace swaps the whole queue content in one step.
func (s *MemoryQueueStore) Replace(_ context.Context, entries []interfaces.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := make([]interfaces.QueueEntry, len(entries))
	for i, entry := range entries {
		replaced[i] = cloneEntry(entry)
	}
	s.entries = replaced
	return nil
}

// SetOffline stores the offline flag.
func (s *MemoryQueueStore) SetOffline(_ context.Context, offline bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
	return nil
}

// Offline returns the stored offline flag.
func (s *MemoryQueueStore) Offline(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline, nil
}

func cloneEntry(entry interfaces.QueueEntry) interfaces.QueueEntry {
	copied := entry
	if entry.Payload != nil {
		copied.Payload = make([]byte, len(entry.Payload))
		copy(copied.Payload, entry.Payload)
	}
	return copied
}
