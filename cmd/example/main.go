package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	approval "github.com/qitae/go-approval"
	"github.com/qitae/go-approval/domain"
)

func main() {
	ctx := context.Background()

	cfg := approval.DefaultConfig()
	if strings.EqualFold(os.Getenv("APPROVAL_DEBUG"), "true") {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
	}

	sessions := approval.DemoSessions()
	editor := findSession(sessions, domain.RoleEditor)
	admin := findSession(sessions, domain.RoleAdmin)

	module, err := approval.New(cfg, approval.WithSession(&editor))
	if err != nil {
		log.Fatalf("initialise approval: %v", err)
	}

	api := module.Content()

	page, err := api.List(ctx, approval.ListFilters{})
	if err != nil {
		log.Fatalf("list content: %v", err)
	}
	visible := module.VisibleItems(page.Items)
	fmt.Printf("%s (%s) sees %d of %d items\n", editor.Name, editor.Role, len(visible), page.Total)
	for _, item := range visible {
		actions := module.AllowedActions(item.Status)
		fmt.Printf("  - %-38s [%s] actions: %v\n", item.Title, item.Status, actions)
	}

	reason := module.BlockedReason(domain.ActionApprovePublish, domain.StatusInReview)
	fmt.Printf("\n%s approving in-review content: %q\n", editor.Role, reason)

	// Go offline, queue a create and an edit, then reconnect.
	if _, err := module.SetOffline(ctx, true); err != nil {
		log.Fatalf("set offline: %v", err)
	}

	_, err = api.Create(ctx, approval.CreatePayload{
		Title:  "Field Report: Offline Drafting",
		Body:   "Written without connectivity.",
		Sector: editor.AssignedSectors[0],
	})
	reportQueued("create", err)

	draft := firstWithStatus(visible, domain.StatusDraft)
	if draft != nil {
		title := draft.Title + " (revised)"
		_, err = api.Update(ctx, draft.ID, approval.UpdatePayload{Title: &title})
		reportQueued("update", err)
	}

	if _, err := api.List(ctx, approval.ListFilters{}); errors.Is(err, approval.ErrOffline) {
		fmt.Println("reads blocked while offline")
	}

	pending, err := module.PendingActions(ctx)
	if err != nil {
		log.Fatalf("inspect queue: %v", err)
	}
	fmt.Printf("queued actions: %d\n", len(pending))

	report, err := module.SetOffline(ctx, false)
	if err != nil {
		log.Fatalf("set online: %v", err)
	}
	fmt.Printf("sync report: %d synced, %d failed\n", report.Synced, report.Failed)

	// The admin module shares nothing with the editor one; rebuild to
	// show the full action surface.
	adminModule, err := approval.New(cfg, approval.WithSession(&admin))
	if err != nil {
		log.Fatalf("initialise admin module: %v", err)
	}
	fmt.Printf("\n%s actions on in-review content: %v\n", admin.Role, adminModule.AllowedActions(domain.StatusInReview))
}

func findSession(sessions []domain.UserSession, role domain.Role) domain.UserSession {
	for _, session := range sessions {
		if session.Role == role {
			return session
		}
	}
	log.Fatalf("no demo session with role %s", role)
	return domain.UserSession{}
}

func firstWithStatus(items []*domain.ContentItem, status domain.Status) *domain.ContentItem {
	for _, item := range items {
		if item.Status == status {
			return item
		}
	}
	return nil
}

func reportQueued(op string, err error) {
	switch {
	case errors.Is(err, approval.ErrQueued):
		fmt.Printf("%s queued for sync\n", op)
	case err != nil:
		log.Fatalf("%s: %v", op, err)
	default:
		fmt.Printf("%s applied directly\n", op)
	}
}
