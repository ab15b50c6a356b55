package content

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Record) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

func NewAuditRepository(db *bun.DB) repository.Repository[*AuditRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*AuditRecord]{
		NewRecord: func() *AuditRecord { return &AuditRecord{} },
		GetID: func(a *AuditRecord) uuid.UUID {
			return a.ID
		},
		SetID: func(a *AuditRecord, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(a *AuditRecord) string {
			if a == nil {
				return ""
			}
			return a.ID.String()
		},
	})
}
