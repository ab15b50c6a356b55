package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
	internalcontent "github.com/qitae/go-approval/internal/content"
	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/pkg/testsupport"
)

func newBunStoreForTest(t *testing.T) *internalcontent.BunStore {
	t.Helper()

	db, err := testsupport.NewBunMemoryDB()
	if err != nil {
		t.Fatalf("new bun db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	models := []any{
		(*internalcontent.Record)(nil),
		(*internalcontent.AuditRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}

	return internalcontent.NewBunStore(db,
		internalcontent.WithBunClock(func() time.Time {
			return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
		internalcontent.WithBunActorResolver(func(context.Context) string { return "editor-1" }),
	)
}

func TestBunStore_CreateAndGet(t *testing.T) {
	store := newBunStoreForTest(t)
	ctx := context.Background()

	created, err := store.Create(ctx, content.CreatePayload{
		Title:  "Persistent Draft",
		Body:   "stored in sqlite",
		Sector: "Finance",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %s", created.Status)
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched.Title != "Persistent Draft" || fetched.Sector != "Finance" {
		t.Fatalf("unexpected record %+v", fetched)
	}
	if fetched.CreatedBy == nil || *fetched.CreatedBy != "editor-1" {
		t.Fatal("expected creator from actor resolver")
	}
}

func TestBunStore_GetUnknownIsNotFound(t *testing.T) {
	store := newBunStoreForTest(t)

	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBunStore_FullLifecycleWithAudit(t *testing.T) {
	store := newBunStoreForTest(t)
	ctx := context.Background()

	created, err := store.Create(ctx, content.CreatePayload{Title: "Lifecycle", Sector: "Technology"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	body := "expanded body"
	if _, err := store.Update(ctx, created.ID, content.UpdatePayload{Body: &body}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	submitted, err := store.SubmitForReview(ctx, created.ID)
	if err != nil {
		t.Fatalf("SubmitForReview returned error: %v", err)
	}
	if submitted.Status != domain.StatusInReview {
		t.Fatalf("expected in_review, got %s", submitted.Status)
	}

	published, err := store.ApprovePublish(ctx, created.ID)
	if err != nil {
		t.Fatalf("ApprovePublish returned error: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("expected published, got %s", published.Status)
	}

	trail, err := store.AuditTrail(ctx, created.ID)
	if err != nil {
		t.Fatalf("AuditTrail returned error: %v", err)
	}
	wantActions := []string{"created", "updated", "submitted_for_review", "approved_published"}
	if len(trail) != len(wantActions) {
		t.Fatalf("expected %d audit entries, got %d", len(wantActions), len(trail))
	}
	for i, action := range wantActions {
		if trail[i].Action != action {
			t.Fatalf("audit entry %d = %q, want %q", i, trail[i].Action, action)
		}
	}
	last := trail[len(trail)-1]
	if last.FromStatus == nil || *last.FromStatus != domain.StatusInReview {
		t.Fatal("expected approve audit entry to record in_review origin")
	}
	if last.ToStatus == nil || *last.ToStatus != domain.StatusPublished {
		t.Fatal("expected approve audit entry to record published target")
	}
}

func TestBunStore_StatusGuards(t *testing.T) {
	store := newBunStoreForTest(t)
	ctx := context.Background()

	created, err := store.Create(ctx, content.CreatePayload{Title: "Guarded", Sector: "Education"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := store.ApprovePublish(ctx, created.ID); !errors.Is(err, content.ErrNotInReview) {
		t.Fatalf("expected ErrNotInReview for draft, got %v", err)
	}

	if _, err := store.SubmitForReview(ctx, created.ID); err != nil {
		t.Fatalf("SubmitForReview returned error: %v", err)
	}
	title := "renamed"
	if _, err := store.Update(ctx, created.ID, content.UpdatePayload{Title: &title}); !errors.Is(err, content.ErrNotDraftEditable) {
		t.Fatalf("expected ErrNotDraftEditable for in_review, got %v", err)
	}
	if _, err := store.SubmitForReview(ctx, created.ID); !errors.Is(err, content.ErrNotDraftSubmittable) {
		t.Fatalf("expected ErrNotDraftSubmittable for in_review, got %v", err)
	}
}

func TestBunStore_ListFiltersAndOrder(t *testing.T) {

	db, err := testsupport.NewBunMemoryDB()
	if err != nil {
		t.Fatalf("new bun db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	models := []any{
		(*internalcontent.Record)(nil),
		(*internalcontent.AuditRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store := internalcontent.NewBunStore(db,
		internalcontent.WithBunClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		}),
	)

	first, err := store.Create(ctx, content.CreatePayload{Title: "Older", Sector: "Finance"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := store.Create(ctx, content.CreatePayload{Title: "Newer", Sector: "Finance"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := store.Create(ctx, content.CreatePayload{Title: "Other", Sector: "Healthcare"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := store.SubmitForReview(ctx, first.ID); err != nil {
		t.Fatalf("SubmitForReview returned error: %v", err)
	}

	finance, err := store.List(ctx, content.ListFilters{Sector: "Finance"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if finance.Total != 2 {
		t.Fatalf("expected 2 finance items, got %d", finance.Total)
	}
	// The submitted item was touched last, so it sorts first.
	if finance.Items[0].ID != first.ID {
		t.Fatalf("expected most recently updated item first, got %q", finance.Items[0].Title)
	}

	inReview, err := store.List(ctx, content.ListFilters{Status: domain.StatusInReview})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if inReview.Total != 1 || inReview.Items[0].ID != first.ID {
		t.Fatalf("expected only the submitted item, got %+v", inReview.Items)
	}
}
