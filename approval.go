// Package approval assembles a role-gated content approval workflow:
// a pure decision engine, sector-scoped visibility, pluggable content
// backends and an offline-aware wrapper that queues mutations for
// replay when connectivity returns.
package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/qitae/go-approval/content"
	internalcontent "github.com/qitae/go-approval/internal/content"
	internaldomain "github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/logging"
	"github.com/qitae/go-approval/internal/logging/gologger"
	"github.com/qitae/go-approval/internal/offline"
	"github.com/qitae/go-approval/internal/sectors"
	"github.com/qitae/go-approval/internal/workflow"
	"github.com/qitae/go-approval/pkg/interfaces"
)

// ContentAPI exports the content facade contract for consumers of the
// approval package.
type ContentAPI = content.API

// ListFilters exports the content list filters.
type ListFilters = content.ListFilters

// ListResult exports the content list page shape.
type ListResult = content.ListResult

// CreatePayload exports the content creation payload.
type CreatePayload = content.CreatePayload

// UpdatePayload exports the draft update payload.
type UpdatePayload = content.UpdatePayload

// SyncReport exports the drain outcome tally.
type SyncReport = offline.SyncReport

// QueuedAction exports the queued action sum type for queue inspection.
type QueuedAction = offline.Action

// WorkflowEngine exports the decision engine for hosts that render
// action availability themselves.
type WorkflowEngine = workflow.Engine

// Offline-path sentinels, re-exported so hosts can classify failures
// without importing internal packages.
var (
	ErrOffline      = offline.ErrOffline
	ErrQueued       = offline.ErrQueued
	ErrNotPermitted = offline.ErrNotPermitted
	ErrNotFound     = content.ErrNotFound
	ErrAccessDenied = sectors.ErrAccessDenied
)

// ErrDatabaseRequired indicates the bun storage provider was selected
// without supplying a database handle.
var ErrDatabaseRequired = errors.New("approval: bun storage requires a database, use WithDB")

// Option overrides a constructor dependency.
type Option func(*settings)

type settings struct {
	db            *bun.DB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	backend       content.API
	queueStore    interfaces.QueueStore
	provider      interfaces.LoggerProvider
	session       *internaldomain.UserSession
}

// WithDB supplies the database handle required by the bun storage provider.
func WithDB(db *bun.DB) Option {
	return func(s *settings) {
		s.db = db
	}
}

// WithCache enables read caching on the bun backend.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(s *settings) {
		s.cacheService = service
		s.keySerializer = serializer
	}
}

// WithBackend replaces the configured content backend entirely.
func WithBackend(api content.API) Option {
	return func(s *settings) {
		s.backend = api
	}
}

// WithQueueStore replaces the configured offline queue store.
func WithQueueStore(store interfaces.QueueStore) Option {
	return func(s *settings) {
		s.queueStore = store
	}
}

// WithLoggerProvider replaces the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *settings) {
		s.provider = provider
	}
}

// WithSession attaches the acting session. It scopes queued mutations
// to the session's role and enables Visible* helpers on the module.
func WithSession(session *internaldomain.UserSession) Option {
	return func(s *settings) {
		s.session = session
	}
}

// Module is the top level approval runtime facade.
type Module struct {
	cfg     Config
	engine  *workflow.Engine
	backend content.API
	wrapper *offline.Wrapper
	manager *offline.Manager
	session *internaldomain.UserSession
	logger  interfaces.Logger
}

// New constructs the approval module from configuration plus optional
// dependency overrides. The zero-dependency path (memory backend,
// memory queue store, no-op logging) needs no options.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	provider := s.provider
	if provider == nil && normalize(cfg.Logging.Provider) == "gologger" {
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("approval: logging provider: %w", err)
		}
		provider = p
	}

	engine, err := workflow.FromConfig(cfg.Workflow)
	if err != nil {
		return nil, err
	}

	backend := s.backend
	if backend == nil {
		switch normalize(cfg.Storage.Provider) {
		case "bun":
			if s.db == nil {
				return nil, ErrDatabaseRequired
			}
			bunOpts := []internalcontent.BunOption{
				internalcontent.WithBunLogger(logging.ContentLogger(provider)),
			}
			if s.cacheService != nil {
				backend = internalcontent.NewBunStoreWithCache(s.db, s.cacheService, s.keySerializer, bunOpts...)
			} else {
				backend = internalcontent.NewBunStore(s.db, bunOpts...)
			}
		default:
			backend = internalcontent.NewMemoryStore(
				internalcontent.WithLogger(logging.ContentLogger(provider)),
			)
		}
	}

	store := s.queueStore
	if store == nil {
		switch normalize(cfg.Offline.Store) {
		case "badger":
			badgerStore, err := offline.NewBadgerQueueStore(cfg.Offline.Path)
			if err != nil {
				return nil, fmt.Errorf("approval: open queue store: %w", err)
			}
			store = badgerStore
		default:
			store = offline.NewMemoryQueueStore()
		}
	}

	managerOpts := []offline.ManagerOption{
		offline.WithLogger(logging.SyncLogger(provider)),
		offline.WithRetainFailed(cfg.Offline.RetainFailed),
	}
	if cfg.Offline.DrainTimeout > 0 {
		managerOpts = append(managerOpts, offline.WithDrainTimeout(cfg.Offline.DrainTimeout))
	}
	manager := offline.NewManager(store, backend, managerOpts...)

	wrapperOpts := []offline.WrapperOption{
		offline.WithWrapperLogger(logging.OfflineLogger(provider)),
	}
	if s.session != nil {
		wrapperOpts = append(wrapperOpts, offline.WithSession(s.session))
	}
	wrapper := offline.NewWrapper(backend, manager, wrapperOpts...)

	return &Module{
		cfg:     cfg,
		engine:  engine,
		backend: backend,
		wrapper: wrapper,
		manager: manager,
		session: s.session,
		logger:  logging.ModuleLogger(provider, ""),
	}, nil
}

// Content returns the offline-aware content API. This is the surface
// hosts should call: online requests pass through to the backend,
// offline mutations queue for replay.
func (m *Module) Content() content.API {
	return m.wrapper
}

// Backend returns the underlying content backend, bypassing the
// offline wrapper. Replays use it directly.
func (m *Module) Backend() content.API {
	return m.backend
}

// Workflow returns the decision engine in effect.
func (m *Module) Workflow() *workflow.Engine {
	return m.engine
}

// SetOffline flips connectivity. Returning online triggers exactly one
// drain and reports its outcome; all other transitions return nil.
func (m *Module) SetOffline(ctx context.Context, offline bool) (*SyncReport, error) {
	return m.manager.SetOffline(ctx, offline)
}

// Offline reports the current connectivity flag.
func (m *Module) Offline(ctx context.Context) (bool, error) {
	return m.manager.Offline(ctx)
}

// Sync drains the queue immediately regardless of connectivity.
func (m *Module) Sync(ctx context.Context) (*SyncReport, error) {
	return m.manager.Drain(ctx)
}

// QueueLen reports the number of pending queued actions.
func (m *Module) QueueLen(ctx context.Context) (int, error) {
	return m.manager.Len(ctx)
}

// PendingActions returns the queued actions in replay order without
// consuming them.
func (m *Module) PendingActions(ctx context.Context) ([]QueuedAction, error) {
	return m.manager.Pending(ctx)
}

// Session returns the attached session, nil when none was supplied.
func (m *Module) Session() *internaldomain.UserSession {
	return m.session
}

// AllowedActions reports which item actions the attached session may
// take on content in the given status, in fixed display order.
func (m *Module) AllowedActions(status internaldomain.Status) []internaldomain.Action {
	if m.session == nil {
		return nil
	}
	return m.engine.AllowedActions(m.session.Role, status)
}

// BlockedReason explains why the attached session cannot take an
// action on content in the given status. Empty when the action is allowed.
func (m *Module) BlockedReason(action internaldomain.Action, status internaldomain.Status) string {
	if m.session == nil {
		return ""
	}
	return m.engine.BlockedReason(m.session.Role, action, status)
}

// VisibleItems filters items down to the sectors the attached session
// can see. Without a session every item passes.
func (m *Module) VisibleItems(items []*internaldomain.ContentItem) []*internaldomain.ContentItem {
	if m.session == nil {
		return items
	}
	return sectors.FilterContentItems(items, *m.session)
}

// DemoSessions returns the fixture sessions used by the example binary.
func DemoSessions() []internaldomain.UserSession {
	return internalcontent.DemoSessions()
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
