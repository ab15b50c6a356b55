package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/internal/domain"
)

func defaultSectors() []string {
	return []string{"Healthcare", "Finance", "Technology", "Education", "Government"}
}

func seedItems() []*domain.ContentItem {
	return []*domain.ContentItem{
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			Title:     "Healthcare Policy Update",
			Body:      "Summary of recent healthcare policy changes and implications for providers.",
			Sector:    "Healthcare",
			Status:    domain.StatusPublished,
			CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 20, 14, 30, 0, 0, time.UTC),
			CreatedBy: actorPtr("editor-1"),
			UpdatedBy: actorPtr("reviewer-1"),
		},
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			Title:     "Q4 Financial Review",
			Body:      "Quarterly financial review and key metrics for the finance sector.",
			Sector:    "Finance",
			Status:    domain.StatusInReview,
			CreatedAt: time.Date(2025, 1, 18, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 22, 11, 0, 0, 0, time.UTC),
			CreatedBy: actorPtr("editor-2"),
			UpdatedBy: actorPtr("editor-2"),
		},
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000003"),
			Title:     "Tech Standards Draft",
			Body:      "Draft document for new technology standards and compliance requirements.",
			Sector:    "Technology",
			Status:    domain.StatusDraft,
			CreatedAt: time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 22, 16, 0, 0, 0, time.UTC),
			CreatedBy: actorPtr("editor-1"),
			UpdatedBy: actorPtr("editor-1"),
		},
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000004"),
			Title:     "Education Curriculum Notes",
			Body:      "Preliminary notes on curriculum updates for the education sector.",
			Sector:    "Education",
			Status:    domain.StatusDraft,
			CreatedAt: time.Date(2025, 1, 21, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 21, 12, 0, 0, 0, time.UTC),
			CreatedBy: actorPtr("editor-2"),
		},
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000005"),
			Title:     "Government Compliance Guide",
			Body:      "Guide to government compliance requirements and reporting.",
			Sector:    "Government",
			Status:    domain.StatusPublished,
			CreatedAt: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
			CreatedBy: actorPtr("editor-1"),
			UpdatedBy: actorPtr("reviewer-1"),
		},
	}
}

// DemoSessions returns the fixture sessions used by the example binary.
func DemoSessions() []domain.UserSession {
	return []domain.UserSession{
		{ID: "editor-1", Name: "Elena Alvarez", Role: domain.RoleEditor, AssignedSectors: []string{"Healthcare", "Technology"}},
		{ID: "editor-2", Name: "Marcus Webb", Role: domain.RoleEditor, AssignedSectors: []string{"Finance", "Education"}},
		{ID: "reviewer-1", Name: "Priya Nair", Role: domain.RoleReviewer, AssignedSectors: []string{"Healthcare", "Finance", "Technology"}},
		{ID: "admin-1", Name: "Dana Wright", Role: domain.RoleAdmin},
	}
}

func actorPtr(actor string) *string {
	return &actor
}
