package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/qitae/go-approval/internal/domain"
)

// Record is the persisted form of a content item.
type Record struct {
	bun.BaseModel `bun:"table:content_items,alias:ci"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Body      string    `bun:"body,notnull" json:"body"`
	Sector    string    `bun:"sector,notnull" json:"sector"`
	Status    string    `bun:"status,notnull,default:'draft'" json:"status"`
	CreatedBy *string   `bun:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `bun:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// AuditRecord is the persisted form of an audit entry.
type AuditRecord struct {
	bun.BaseModel `bun:"table:audit_entries,alias:ae"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ContentID   uuid.UUID `bun:"content_id,notnull,type:uuid" json:"content_id"`
	Action      string    `bun:"action,notnull" json:"action"`
	FromStatus  *string   `bun:"from_status" json:"from_status,omitempty"`
	ToStatus    *string   `bun:"to_status" json:"to_status,omitempty"`
	PerformedBy string    `bun:"performed_by,notnull" json:"performed_by"`
	PerformedAt time.Time `bun:"performed_at,nullzero,default:current_timestamp" json:"performed_at"`
	Note        *string   `bun:"note" json:"note,omitempty"`
}

func (r *Record) toDomain() *domain.ContentItem {
	if r == nil {
		return nil
	}
	return &domain.ContentItem{
		ID:        r.ID,
		Title:     r.Title,
		Body:      r.Body,
		Sector:    r.Sector,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		CreatedBy: clonePtr(r.CreatedBy),
		UpdatedBy: clonePtr(r.UpdatedBy),
	}
}

func (a *AuditRecord) toDomain() domain.AuditEntry {
	return domain.AuditEntry{
		ID:          a.ID,
		ContentID:   a.ContentID,
		Action:      a.Action,
		FromStatus:  statusFromString(a.FromStatus),
		ToStatus:    statusFromString(a.ToStatus),
		PerformedBy: a.PerformedBy,
		PerformedAt: a.PerformedAt,
		Note:        clonePtr(a.Note),
	}
}

func clonePtr(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func statusFromString(value *string) *domain.Status {
	if value == nil {
		return nil
	}
	status := domain.Status(*value)
	return &status
}

func stringFromStatus(status *domain.Status) *string {
	if status == nil {
		return nil
	}
	value := string(*status)
	return &value
}
