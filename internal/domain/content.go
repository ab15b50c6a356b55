package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentItem is the canonical record moving through the approval
// lifecycle. Items are owned by the backing store; services operate on
// copies and never mutate a shared instance.
type ContentItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Sector    string    `json:"sector"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `json:"created_by,omitempty"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
}

// Clone returns a deep copy so callers can hand items across goroutines
// without sharing pointers.
func (c *ContentItem) Clone() *ContentItem {
	if c == nil {
		return nil
	}
	copied := *c
	if c.CreatedBy != nil {
		v := *c.CreatedBy
		copied.CreatedBy = &v
	}
	if c.UpdatedBy != nil {
		v := *c.UpdatedBy
		copied.UpdatedBy = &v
	}
	return &copied
}

// CloneItems deep-copies a slice of content items preserving order.
func CloneItems(items []*ContentItem) []*ContentItem {
	if items == nil {
		return nil
	}
	out := make([]*ContentItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// AuditEntry records one workflow-relevant mutation of a content item.
type AuditEntry struct {
	ID          uuid.UUID `json:"id"`
	ContentID   uuid.UUID `json:"content_id"`
	Action      string    `json:"action"`
	FromStatus  *Status   `json:"from_status,omitempty"`
	ToStatus    *Status   `json:"to_status,omitempty"`
	PerformedBy string    `json:"performed_by"`
	PerformedAt time.Time `json:"performed_at"`
	Note        *string   `json:"note,omitempty"`
}

// UserSession carries the identity and visibility scope of one client
// session. Sessions are value objects supplied by the host application.
type UserSession struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Role            Role     `json:"role"`
	AssignedSectors []string `json:"assigned_sectors"`
}
