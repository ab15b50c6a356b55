package content

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/logging"
	"github.com/qitae/go-approval/pkg/interfaces"
)

// MemoryStore is an in-memory content.API implementation used for demos
// and tests. It can simulate backend latency and transient failures the
// way a flaky network would.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]*domain.ContentItem
	order   []uuid.UUID
	audit   map[uuid.UUID][]domain.AuditEntry
	sectors []string

	now         func() time.Time
	id          func() uuid.UUID
	actor       func(ctx context.Context) string
	latency     time.Duration
	failureRate float64
	rng         *rand.Rand
	logger      interfaces.Logger
}

// MemoryOption configures the memory store.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator func() uuid.UUID) MemoryOption {
	return func(s *MemoryStore) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithActorResolver overrides how the acting user is derived from the
// request context. Defaults to a constant "system" actor.
func WithActorResolver(resolver func(ctx context.Context) string) MemoryOption {
	return func(s *MemoryStore) {
		if resolver != nil {
			s.actor = resolver
		}
	}
}

// WithLatency adds a fixed delay before every operation.
func WithLatency(latency time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if latency > 0 {
			s.latency = latency
		}
	}
}

// WithFailureRate makes operations fail with ErrBackendUnavailable at the
// supplied probability. The rand source keeps failures reproducible.
func WithFailureRate(rate float64, rng *rand.Rand) MemoryOption {
	return func(s *MemoryStore) {
		if rate > 0 {
			s.failureRate = rate
		}
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeedData replaces the default fixtures.
func WithSeedData(items []*domain.ContentItem) MemoryOption {
	return func(s *MemoryStore) {
		s.items = make(map[uuid.UUID]*domain.ContentItem, len(items))
		s.order = make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			copied := item.Clone()
			s.items[copied.ID] = copied
			s.order = append(s.order, copied.ID)
		}
	}
}

// WithLogger attaches a logger for operation tracing.
func WithLogger(logger interfaces.Logger) MemoryOption {
	return func(s *MemoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMemoryStore creates a store seeded with the demo fixtures.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		items:   make(map[uuid.UUID]*domain.ContentItem),
		audit:   make(map[uuid.UUID][]domain.AuditEntry),
		sectors: defaultSectors(),
		now:     time.Now,
		id:      uuid.New,
		actor:   func(context.Context) string { return "system" },
		logger:  logging.NoOp(),
	}
	seeded := seedItems()
	store.order = make([]uuid.UUID, 0, len(seeded))
	for _, item := range seeded {
		store.items[item.ID] = item
		store.order = append(store.order, item.ID)
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ content.API = (*MemoryStore)(nil)

// Sectors returns the known sector tags.
func (s *MemoryStore) Sectors() []string {
	out := make([]string, len(s.sectors))
	copy(out, s.sectors)
	return out
}

// List returns matching items sorted by most recent update.
func (s *MemoryStore) List(ctx context.Context, filters content.ListFilters) (*content.ListResult, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.ContentItem, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if filters.Status != "" && item.Status != filters.Status {
			continue
		}
		if filters.Sector != "" && item.Sector != filters.Sector {
			continue
		}
		items = append(items, item.Clone())
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	return &content.ListResult{Items: items, Total: len(items)}, nil
}

// Get returns the item by identifier.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: id.String()}
	}
	return item.Clone(), nil
}

// Create stores a new draft.
func (s *MemoryStore) Create(ctx context.Context, payload content.CreatePayload) (*domain.ContentItem, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	if payload.Title == "" {
		return nil, content.ErrTitleRequired
	}
	if payload.Sector == "" {
		return nil, content.ErrSectorRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	actor := s.actor(ctx)
	item := &domain.ContentItem{
		ID:        s.id(),
		Title:     payload.Title,
		Body:      payload.Body,
		Sector:    payload.Sector,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: &actor,
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	s.record(item.ID, "created", nil, statusPtr(domain.StatusDraft), actor, now)

	s.logger.Debug("content.create", "content_id", item.ID.String(), "sector", item.Sector)
	return item.Clone(), nil
}

// Update mutates a draft in place.
func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, payload content.UpdatePayload) (*domain.ContentItem, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: id.String()}
	}
	if item.Status != domain.StatusDraft {
		return nil, content.ErrNotDraftEditable
	}

	if payload.Title != nil {
		item.Title = *payload.Title
	}
	if payload.Body != nil {
		item.Body = *payload.Body
	}
	if payload.Sector != nil {
		item.Sector = *payload.Sector
	}

	now := s.now()
	actor := s.actor(ctx)
	item.UpdatedAt = now
	item.UpdatedBy = &actor
	s.record(id, "updated", statusPtr(domain.StatusDraft), statusPtr(domain.StatusDraft), actor, now)

	return item.Clone(), nil
}

// SubmitForReview moves a draft into review.
func (s *MemoryStore) SubmitForReview(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: id.String()}
	}
	if item.Status != domain.StatusDraft {
		return nil, content.ErrNotDraftSubmittable
	}

	now := s.now()
	actor := s.actor(ctx)
	item.Status = domain.StatusInReview
	item.UpdatedAt = now
	item.UpdatedBy = &actor
	s.record(id, "submitted_for_review", statusPtr(domain.StatusDraft), statusPtr(domain.StatusInReview), actor, now)

	return item.Clone(), nil
}

// ApprovePublish publishes in-review content.
func (s *MemoryStore) ApprovePublish(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: "content", Key: id.String()}
	}
	if item.Status != domain.StatusInReview {
		return nil, content.ErrNotInReview
	}

	now := s.now()
	actor := s.actor(ctx)
	item.Status = domain.StatusPublished
	item.UpdatedAt = now
	item.UpdatedBy = &actor
	s.record(id, "approved_published", statusPtr(domain.StatusInReview), statusPtr(domain.StatusPublished), actor, now)

	return item.Clone(), nil
}

// AuditTrail returns the recorded workflow history. Seeded items that
// predate recording get a synthesised create/update history.
func (s *MemoryStore) AuditTrail(ctx context.Context, contentID uuid.UUID) ([]domain.AuditEntry, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if entries, ok := s.audit[contentID]; ok {
		out := make([]domain.AuditEntry, len(entries))
		copy(out, entries)
		return out, nil
	}
	item, ok := s.items[contentID]
	if !ok {
		return []domain.AuditEntry{}, nil
	}
	return s.synthesizeTrail(item), nil
}

func (s *MemoryStore) record(contentID uuid.UUID, action string, from, to *domain.Status, actor string, at time.Time) {
	s.audit[contentID] = append(s.audit[contentID], domain.AuditEntry{
		ID:          s.id(),
		ContentID:   contentID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		PerformedBy: actor,
		PerformedAt: at,
	})
}

func (s *MemoryStore) synthesizeTrail(item *domain.ContentItem) []domain.AuditEntry {
	performedBy := "system"
	if item.CreatedBy != nil {
		performedBy = *item.CreatedBy
	}
	entries := []domain.AuditEntry{
		{
			ID:          s.id(),
			ContentID:   item.ID,
			Action:      "created",
			ToStatus:    statusPtr(domain.StatusDraft),
			PerformedBy: performedBy,
			PerformedAt: item.CreatedAt,
		},
	}
	if !item.UpdatedAt.Equal(item.CreatedAt) && item.UpdatedBy != nil {
		entries = append(entries, domain.AuditEntry{
			ID:          s.id(),
			ContentID:   item.ID,
			Action:      "updated",
			FromStatus:  statusPtr(domain.StatusDraft),
			ToStatus:    statusPtr(item.Status),
			PerformedBy: *item.UpdatedBy,
			PerformedAt: item.UpdatedAt,
		})
	}
	return entries
}

func (s *MemoryStore) simulate(ctx context.Context) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.failureRate > 0 {
		roll := rand.Float64()
		if s.rng != nil {
			roll = s.rng.Float64()
		}
		if roll < s.failureRate {
			return content.ErrBackendUnavailable
		}
	}
	return nil
}

func statusPtr(status domain.Status) *domain.Status {
	return &status
}
