package content

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/logging"
	"github.com/qitae/go-approval/pkg/interfaces"
)

// BunStore is a content.API backed by a bun database. It enforces the
// same status guards as the memory store at the persistence boundary and
// records an audit entry for every successful mutation.
type BunStore struct {
	records repository.Repository[*Record]
	audits  repository.Repository[*AuditRecord]
	now     func() time.Time
	id      func() uuid.UUID
	actor   func(ctx context.Context) string
	logger  interfaces.Logger
}

// BunOption configures the bun store.
type BunOption func(*BunStore)

// WithBunClock overrides the clock used to stamp records.
func WithBunClock(clock func() time.Time) BunOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithBunActorResolver overrides how the acting user is derived from context.
func WithBunActorResolver(resolver func(ctx context.Context) string) BunOption {
	return func(s *BunStore) {
		if resolver != nil {
			s.actor = resolver
		}
	}
}

// WithBunLogger attaches a logger for operation tracing.
func WithBunLogger(logger interfaces.Logger) BunOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewBunStore creates a store without read caching.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache creates a store whose reads go through the
// supplied cache service when both cache arguments are present.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...BunOption) *BunStore {
	store := &BunStore{
		records: wrapWithCache(NewRecordRepository(db), cacheService, keySerializer),
		audits:  wrapWithCache(NewAuditRepository(db), cacheService, keySerializer),
		now:     time.Now,
		id:      uuid.New,
		actor:   func(context.Context) string { return "system" },
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ content.API = (*BunStore)(nil)

// List returns matching items sorted by most recent update.
func (s *BunStore) List(ctx context.Context, filters content.ListFilters) (*content.ListResult, error) {
	records, total, err := s.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filters.Status != "" {
				q = q.Where("?TableAlias.status = ?", string(filters.Status))
			}
			if filters.Sector != "" {
				q = q.Where("?TableAlias.sector = ?", filters.Sector)
			}
			return q.Order("updated_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}

	items := make([]*domain.ContentItem, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	return &content.ListResult{Items: items, Total: total}, nil
}

// Get returns the item by identifier.
func (s *BunStore) Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Create stores a new draft.
func (s *BunStore) Create(ctx context.Context, payload content.CreatePayload) (*domain.ContentItem, error) {
	if payload.Title == "" {
		return nil, content.ErrTitleRequired
	}
	if payload.Sector == "" {
		return nil, content.ErrSectorRequired
	}

	now := s.now()
	actor := s.actor(ctx)
	record := &Record{
		ID:        s.id(),
		Title:     payload.Title,
		Body:      payload.Body,
		Sector:    payload.Sector,
		Status:    string(domain.StatusDraft),
		CreatedBy: &actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.records.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}
	if err := s.record(ctx, created.ID, "created", nil, statusPtr(domain.StatusDraft), actor, now); err != nil {
		return nil, err
	}

	s.logger.Debug("content.create", "content_id", created.ID.String(), "sector", created.Sector)
	return created.toDomain(), nil
}

// Update mutates a draft in place.
func (s *BunStore) Update(ctx context.Context, id uuid.UUID, payload content.UpdatePayload) (*domain.ContentItem, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.Status(record.Status) != domain.StatusDraft {
		return nil, content.ErrNotDraftEditable
	}

	if payload.Title != nil {
		record.Title = *payload.Title
	}
	if payload.Body != nil {
		record.Body = *payload.Body
	}
	if payload.Sector != nil {
		record.Sector = *payload.Sector
	}

	now := s.now()
	actor := s.actor(ctx)
	record.UpdatedAt = now
	record.UpdatedBy = &actor

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}
	if err := s.record(ctx, id, "updated", statusPtr(domain.StatusDraft), statusPtr(domain.StatusDraft), actor, now); err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

// SubmitForReview moves a draft into review.
func (s *BunStore) SubmitForReview(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	return s.transition(ctx, id, domain.StatusDraft, domain.StatusInReview, "submitted_for_review", content.ErrNotDraftSubmittable)
}

// ApprovePublish publishes in-review content.
func (s *BunStore) ApprovePublish(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	return s.transition(ctx, id, domain.StatusInReview, domain.StatusPublished, "approved_published", content.ErrNotInReview)
}

// AuditTrail returns the recorded workflow history for an item.
func (s *BunStore) AuditTrail(ctx context.Context, contentID uuid.UUID) ([]domain.AuditEntry, error) {
	records, _, err := s.audits.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.content_id = ?", contentID).
				Order("performed_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("audit repository error: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.toDomain())
	}
	return entries, nil
}

func (s *BunStore) transition(ctx context.Context, id uuid.UUID, from, to domain.Status, action string, guardErr error) (*domain.ContentItem, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.Status(record.Status) != from {
		return nil, guardErr
	}

	now := s.now()
	actor := s.actor(ctx)
	record.Status = string(to)
	record.UpdatedAt = now
	record.UpdatedBy = &actor

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content repository error: %w", err)
	}
	if err := s.record(ctx, id, action, statusPtr(from), statusPtr(to), actor, now); err != nil {
		return nil, err
	}

	s.logger.Debug("content.transition", "content_id", id.String(), "action", action, "to", string(to))
	return updated.toDomain(), nil
}

func (s *BunStore) getRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := s.records.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "content", id.String())
	}
	return record, nil
}

func (s *BunStore) record(ctx context.Context, contentID uuid.UUID, action string, from, to *domain.Status, actor string, at time.Time) error {
	_, err := s.audits.Create(ctx, &AuditRecord{
		ID:          s.id(),
		ContentID:   contentID,
		Action:      action,
		FromStatus:  stringFromStatus(from),
		ToStatus:    stringFromStatus(to),
		PerformedBy: actor,
		PerformedAt: at,
	})
	if err != nil {
		return fmt.Errorf("audit repository error: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &content.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
