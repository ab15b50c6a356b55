package offline

import (
	"context"
	"fmt"
	"sync"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/logging"
	"github.com/qitae/go-approval/pkg/interfaces"
)

const defaultDrainTimeout = 30 * time.Second

// SyncReport summarises one drain pass.
type SyncReport struct {
	// Synced counts actions replayed successfully.
	Synced int `json:"synced"`
	// Failed counts actions whose replay returned an error.
	Failed int `json:"failed"`
}

// ManagerOption configures a Manager instance.
type ManagerOption func(*Manager)

// Manager owns the offline flag and the pending action queue. All
// state transitions happen under one mutex: an enqueue can never
// interleave with the snapshot swap at the start of a drain, and two
// drains can never run at once.
type Manager struct {
	mu       sync.Mutex
	store    interfaces.QueueStore
	replayer *replayer
	logger   interfaces.Logger

	clock        func() time.Time
	idGenerator  func() string
	drainTimeout time.Duration
	retainFailed bool
}

// NewManager creates a sync manager replaying queued actions against api.
// The store decides durability; the manager trusts it to preserve
// append order.
func NewManager(store interfaces.QueueStore, api content.API, opts ...ManagerOption) *Manager {
	if store == nil {
		panic("offline: queue store cannot be nil")
	}
	if api == nil {
		panic("offline: content API cannot be nil")
	}
	m := &Manager{
		store:        store,
		logger:       logging.NoOp(),
		clock:        time.Now,
		idGenerator:  func() string { return uuid.NewString() },
		drainTimeout: defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.replayer = newReplayer(api, m.logger, m.drainTimeout)
	return m
}

// WithLogger injects the logger used for queue and drain events.
func WithLogger(logger interfaces.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRetainFailed re-appends failed actions to the queue after a
// drain instead of dropping them. Re-appended actions keep their
// original relative order at the tail.
func WithRetainFailed(retain bool) ManagerOption {
	return func(m *Manager) {
		m.retainFailed = retain
	}
}

// WithClock overrides the timestamp source for queue entries.
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithIDGenerator overrides queue entry ID generation.
func WithIDGenerator(gen func() string) ManagerOption {
	return func(m *Manager) {
		if gen != nil {
			m.idGenerator = gen
		}
	}
}

// WithDrainTimeout bounds each replayed action during a drain.
func WithDrainTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		if timeout > 0 {
			m.drainTimeout = timeout
		}
	}
}

// Enqueue validates the action, encodes it and appends it to the
// durable queue. Validation failures never reach the store.
func (m *Manager) Enqueue(ctx context.Context, action Action) error {
	if action == nil {
		return fmt.Errorf("%w: <nil>", ErrUnknownActionKind)
	}
	if err := command.ValidateMessage(action); err != nil {
		return fmt.Errorf("offline: enqueue %s: %w", action.Type(), err)
	}

	kind, payload, err := encodeAction(action)
	if err != nil {
		return err
	}
	entry := interfaces.QueueEntry{
		ID:         m.idGenerator(),
		Kind:       kind,
		Payload:    payload,
		EnqueuedAt: m.clock(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("offline: enqueue %s: %w", kind, err)
	}
	logging.WithFields(m.logger, map[string]any{
		"kind":     kind,
		"entry_id": entry.ID,
	}).Debug("queue.enqueued")
	return nil
}

// SetOffline flips the offline flag. The transition from offline to
// online triggers exactly one drain; setting the current value again
// is a no-op and drains nothing.
func (m *Manager) SetOffline(ctx context.Context, offline bool) (*SyncReport, error) {
	m.mu.Lock()

	current, err := m.store.Offline(ctx)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("offline: read flag: %w", err)
	}
	if current == offline {
		m.mu.Unlock()
		return nil, nil
	}
	if err := m.store.SetOffline(ctx, offline); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("offline: persist flag: %w", err)
	}
	m.logger.Info("connectivity.changed", "offline", offline)

	if offline {
		m.mu.Unlock()
		return nil, nil
	}

	report, err := m.drainLocked(ctx)
	m.mu.Unlock()
	return report, err
}

// Offline reports the persisted offline flag.
func (m *Manager) Offline(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Offline(ctx)
}

// Len reports the number of queued actions.
func (m *Manager) Len(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("offline: load queue: %w", err)
	}
	return len(entries), nil
}

// Pending decodes and returns the queued actions in append order
// without consuming them. Undecodable entries are skipped; they still
// count against Len and fail at drain time.
func (m *Manager) Pending(ctx context.Context) ([]Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("offline: load queue: %w", err)
	}
	actions := make([]Action, 0, len(entries))
	for _, entry := range entries {
		action, err := decodeAction(entry.Kind, entry.Payload)
		if err != nil {
			m.logger.Warn("queue.decode_failed", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
			continue
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// Drain snapshots the queue, clears it, then replays the snapshot in
// order. A replay failure does not stop the pass; every entry is
// attempted and the report tallies both outcomes. Actions enqueued
// after the snapshot was taken stay in the queue for the next drain.
func (m *Manager) Drain(ctx context.Context) (*SyncReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drainLocked(ctx)
}

func (m *Manager) drainLocked(ctx context.Context) (*SyncReport, error) {
	snapshot, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("offline: load queue: %w", err)
	}
	if len(snapshot) == 0 {
		return &SyncReport{}, nil
	}
	if err := m.store.Replace(ctx, nil); err != nil {
		return nil, fmt.Errorf("offline: clear queue: %w", err)
	}

	m.logger.Info("drain.start", "pending", len(snapshot))

	report := &SyncReport{}
	var retained []interfaces.QueueEntry
	for _, entry := range snapshot {
		if err := m.replayEntry(ctx, entry); err != nil {
			report.Failed++
			m.logger.Warn("drain.replay_failed", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
			if m.retainFailed {
				retained = append(retained, entry)
			}
			continue
		}
		report.Synced++
	}

	if len(retained) > 0 {
		// Failed entries go back behind anything enqueued mid-drain.
		for _, entry := range retained {
			if err := m.store.Append(ctx, entry); err != nil {
				return report, fmt.Errorf("offline: retain entry %s: %w", entry.ID, err)
			}
		}
	}

	m.logger.Info("drain.done", "synced", report.Synced, "failed", report.Failed)
	return report, nil
}

func (m *Manager) replayEntry(ctx context.Context, entry interfaces.QueueEntry) error {
	action, err := decodeAction(entry.Kind, entry.Payload)
	if err != nil {
		return err
	}
	return m.replayer.replay(ctx, action)
}
