package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/qitae/go-approval/internal/domain"
)

// API is the content service facade. Every backend (in-memory, bun, the
// offline-aware wrapper) satisfies this contract. Backends enforce the
// workflow status guards themselves: the client-side engine is a UX
// convenience, the facade is the authority of record.
type API interface {
	// List returns items matching the filters, newest update first.
	List(ctx context.Context, filters ListFilters) (*ListResult, error)
	// Get returns the item by identifier.
	Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error)
	// Create stores a new item. Status is forced to draft.
	Create(ctx context.Context, payload CreatePayload) (*domain.ContentItem, error)
	// Update mutates title, body or sector. Rejected unless the item is a draft.
	Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (*domain.ContentItem, error)
	// SubmitForReview moves a draft to in_review.
	SubmitForReview(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error)
	// ApprovePublish moves in-review content to published.
	ApprovePublish(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error)
	// AuditTrail returns the recorded workflow history for an item.
	AuditTrail(ctx context.Context, contentID uuid.UUID) ([]domain.AuditEntry, error)
}

// ListFilters narrows List results. Zero values mean "no filter".
type ListFilters struct {
	Status domain.Status `json:"status,omitempty"`
	Sector string        `json:"sector,omitempty"`
}

// ListResult bundles a page of items with the total match count.
type ListResult struct {
	Items []*domain.ContentItem `json:"items"`
	Total int                   `json:"total"`
}

// CreatePayload captures the fields required to create content.
type CreatePayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Sector string `json:"sector"`
}

// UpdatePayload captures the mutable fields of a draft. Nil fields are
// left untouched.
type UpdatePayload struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Sector *string `json:"sector,omitempty"`
}
