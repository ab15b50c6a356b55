package offline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/logging"
	"github.com/qitae/go-approval/internal/workflow"
	"github.com/qitae/go-approval/pkg/interfaces"
)

// WrapperOption configures a Wrapper instance.
type WrapperOption func(*Wrapper)

// Wrapper decorates a content API with a live connectivity check.
// While online every call passes through verbatim. While offline reads
// fail with ErrOffline and mutations are intercepted: the action is
// appended to the manager's queue and the call fails with an error
// wrapping ErrQueued, so callers can tell "will replay automatically"
// from "retry later".
//
// The wrapped API stays authoritative. With a session attached the
// wrapper rejects queued mutations the role can never perform, but
// status guards need the current item state and only run at replay.
type Wrapper struct {
	api     content.API
	manager *Manager
	logger  interfaces.Logger
	session *domain.UserSession
}

// NewWrapper decorates api with offline interception through manager.
func NewWrapper(api content.API, manager *Manager, opts ...WrapperOption) *Wrapper {
	if api == nil {
		panic("offline: content API cannot be nil")
	}
	if manager == nil {
		panic("offline: manager cannot be nil")
	}
	w := &Wrapper{
		api:     api,
		manager: manager,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithWrapperLogger injects the logger used for interception events.
func WithWrapperLogger(logger interfaces.Logger) WrapperOption {
	return func(w *Wrapper) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSession attaches the acting session so queued mutations get the
// static role check before they reach the queue.
func WithSession(session *domain.UserSession) WrapperOption {
	return func(w *Wrapper) {
		w.session = session
	}
}

// List passes through while online and fails with ErrOffline otherwise.
func (w *Wrapper) List(ctx context.Context, filters content.ListFilters) (*content.ListResult, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if offline {
		return nil, fmt.Errorf("list: %w", ErrOffline)
	}
	return w.api.List(ctx, filters)
}

// Get passes through while online and fails with ErrOffline otherwise.
func (w *Wrapper) Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if offline {
		return nil, fmt.Errorf("get %s: %w", id, ErrOffline)
	}
	return w.api.Get(ctx, id)
}

// AuditTrail passes through while online and fails with ErrOffline otherwise.
func (w *Wrapper) AuditTrail(ctx context.Context, contentID uuid.UUID) ([]domain.AuditEntry, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if offline {
		return nil, fmt.Errorf("audit trail %s: %w", contentID, ErrOffline)
	}
	return w.api.AuditTrail(ctx, contentID)
}

// Create stores the item while online; offline it queues a CreateAction.
func (w *Wrapper) Create(ctx context.Context, payload content.CreatePayload) (*domain.ContentItem, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return w.api.Create(ctx, payload)
	}
	return nil, w.intercept(ctx, domain.ActionCreate, CreateAction{Payload: payload})
}

// Update mutates the draft while online; offline it queues an UpdateAction.
func (w *Wrapper) Update(ctx context.Context, id uuid.UUID, payload content.UpdatePayload) (*domain.ContentItem, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return w.api.Update(ctx, id, payload)
	}
	return nil, w.intercept(ctx, domain.ActionEdit, UpdateAction{ID: id, Payload: payload})
}

// SubmitForReview transitions while online; offline it queues a SubmitAction.
func (w *Wrapper) SubmitForReview(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return w.api.SubmitForReview(ctx, id)
	}
	return nil, w.intercept(ctx, domain.ActionSubmitForReview, SubmitAction{ID: id})
}

// ApprovePublish transitions while online; offline it queues an ApproveAction.
func (w *Wrapper) ApprovePublish(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	offline, err := w.manager.Offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return w.api.ApprovePublish(ctx, id)
	}
	return nil, w.intercept(ctx, domain.ActionApprovePublish, ApproveAction{ID: id})
}

// intercept queues the action and reports it as queued. The role check
// uses only session data because the item's status is unknowable here.
func (w *Wrapper) intercept(ctx context.Context, action domain.Action, queued Action) error {
	if w.session != nil && !workflow.RoleCanPerform(w.session.Role, action) {
		w.logger.Warn("intercept.denied", "kind", queued.Type(), "role", w.session.Role)
		return fmt.Errorf("%s: %w", queued.Type(), ErrNotPermitted)
	}
	if err := w.manager.Enqueue(ctx, queued); err != nil {
		return err
	}
	w.logger.Info("intercept.queued", "kind", queued.Type())
	return fmt.Errorf("%s: %w", queued.Type(), ErrQueued)
}

var _ content.API = (*Wrapper)(nil)
