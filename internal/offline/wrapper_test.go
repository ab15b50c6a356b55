package offline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/offline"
)

func newOfflineWrapper(t *testing.T, api content.API, opts ...offline.WrapperOption) (*offline.Wrapper, *offline.Manager) {
	t.Helper()
	manager := offline.NewManager(offline.NewMemoryQueueStore(), api)
	if _, err := manager.SetOffline(context.Background(), true); err != nil {
		t.Fatalf("SetOffline returned error: %v", err)
	}
	return offline.NewWrapper(api, manager, opts...), manager
}

func TestWrapper_OnlinePassesThrough(t *testing.T) {
	api := newRecordingAPI()
	manager := offline.NewManager(offline.NewMemoryQueueStore(), api)
	wrapper := offline.NewWrapper(api, manager)
	ctx := context.Background()

	created, err := wrapper.Create(ctx, content.CreatePayload{Title: "direct", Sector: "Finance"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil || created.Title != "direct" {
		t.Fatalf("expected backend result, got %+v", created)
	}
	if got := api.recorded(); len(got) != 1 || got[0] != "create:direct" {
		t.Fatalf("expected direct backend call, got %v", got)
	}

	length, err := manager.Len(ctx)
	if err != nil {
		t.Fatalf("Len returned error: %v", err)
	}
	if length != 0 {
		t.Fatalf("online calls must not queue, got %d", length)
	}
}

func TestWrapper_OfflineReadsFail(t *testing.T) {
	api := newRecordingAPI()
	wrapper, _ := newOfflineWrapper(t, api)
	ctx := context.Background()

	if _, err := wrapper.List(ctx, content.ListFilters{}); !errors.Is(err, offline.ErrOffline) {
		t.Fatalf("expected ErrOffline from List, got %v", err)
	}
	if _, err := wrapper.Get(ctx, uuid.New()); !errors.Is(err, offline.ErrOffline) {
		t.Fatalf("expected ErrOffline from Get, got %v", err)
	}
	if _, err := wrapper.AuditTrail(ctx, uuid.New()); !errors.Is(err, offline.ErrOffline) {
		t.Fatalf("expected ErrOffline from AuditTrail, got %v", err)
	}
	if got := api.recorded(); len(got) != 0 {
		t.Fatalf("backend must not be reached offline, got %v", got)
	}
}

func TestWrapper_OfflineMutationsQueue(t *testing.T) {
	api := newRecordingAPI()
	wrapper, manager := newOfflineWrapper(t, api)
	ctx := context.Background()

	item, err := wrapper.Create(ctx, content.CreatePayload{Title: "queued", Sector: "Finance"})
	if !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued, got %v", err)
	}
	if item != nil {
		t.Fatal("queued mutation must not fabricate a result")
	}
	if errors.Is(err, offline.ErrOffline) {
		t.Fatal("queued must be distinct from the offline read error")
	}

	title := "renamed"
	if _, err := wrapper.Update(ctx, uuid.New(), content.UpdatePayload{Title: &title}); !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued from Update, got %v", err)
	}
	if _, err := wrapper.SubmitForReview(ctx, uuid.New()); !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued from SubmitForReview, got %v", err)
	}
	if _, err := wrapper.ApprovePublish(ctx, uuid.New()); !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued from ApprovePublish, got %v", err)
	}

	if got := api.recorded(); len(got) != 0 {
		t.Fatalf("backend must not be invoked while offline, got %v", got)
	}
	length, err := manager.Len(ctx)
	if err != nil {
		t.Fatalf("Len returned error: %v", err)
	}
	if length != 4 {
		t.Fatalf("expected 4 queued actions, got %d", length)
	}
}

func TestWrapper_QueuedActionsReplayOnReconnect(t *testing.T) {
	api := newRecordingAPI()
	wrapper, manager := newOfflineWrapper(t, api)
	ctx := context.Background()

	if _, err := wrapper.Create(ctx, content.CreatePayload{Title: "later", Sector: "Finance"}); !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued, got %v", err)
	}

	report, err := manager.SetOffline(ctx, false)
	if err != nil {
		t.Fatalf("SetOffline returned error: %v", err)
	}
	if report.Synced != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 1 synced", report)
	}
	if got := api.recorded(); len(got) != 1 || got[0] != "create:later" {
		t.Fatalf("expected replayed create, got %v", got)
	}
}

func TestWrapper_SessionRoleGatesOfflineMutations(t *testing.T) {
	api := newRecordingAPI()
	session := &domain.UserSession{ID: "reviewer-1", Name: "Priya Nair", Role: domain.RoleReviewer}
	wrapper, manager := newOfflineWrapper(t, api, offline.WithSession(session))
	ctx := context.Background()

	// Reviewers can never create, so nothing should be queued.
	_, err := wrapper.Create(ctx, content.CreatePayload{Title: "nope", Sector: "Finance"})
	if !errors.Is(err, offline.ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
	length, lenErr := manager.Len(ctx)
	if lenErr != nil {
		t.Fatalf("Len returned error: %v", lenErr)
	}
	if length != 0 {
		t.Fatalf("denied action must not queue, got %d", length)
	}

	// Approve is within the reviewer's static rights; the status guard
	// is the backend's call at replay time.
	if _, err := wrapper.ApprovePublish(ctx, uuid.New()); !errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected ErrQueued, got %v", err)
	}
}

func TestWrapper_InvalidPayloadNotQueued(t *testing.T) {
	api := newRecordingAPI()
	wrapper, manager := newOfflineWrapper(t, api)
	ctx := context.Background()

	_, err := wrapper.Create(ctx, content.CreatePayload{})
	if err == nil || errors.Is(err, offline.ErrQueued) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	length, lenErr := manager.Len(ctx)
	if lenErr != nil {
		t.Fatalf("Len returned error: %v", lenErr)
	}
	if length != 0 {
		t.Fatalf("invalid payloads must not queue, got %d", length)
	}
}
