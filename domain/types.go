package domain

import internaldomain "github.com/qitae/go-approval/internal/domain"

// Role identifies what a session may do across the approval workflow.
type Role = internaldomain.Role

const (
	// RoleAdmin may perform every workflow action, including reverting
	// in-review content back to draft.
	RoleAdmin = internaldomain.RoleAdmin
	// RoleEditor may create, edit and submit drafts.
	RoleEditor = internaldomain.RoleEditor
	// RoleReviewer may approve and publish in-review content.
	RoleReviewer = internaldomain.RoleReviewer
)

// Status represents lifecycle states for content items.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusInReview marks content waiting for a reviewer decision.
	StatusInReview = internaldomain.StatusInReview
	// StatusPublished identifies content available to consumers.
	StatusPublished = internaldomain.StatusPublished
)

// Action enumerates the workflow operations a session can request.
type Action = internaldomain.Action

const (
	ActionCreate          = internaldomain.ActionCreate
	ActionEdit            = internaldomain.ActionEdit
	ActionSubmitForReview = internaldomain.ActionSubmitForReview
	ActionApprovePublish  = internaldomain.ActionApprovePublish
	ActionRevertToDraft   = internaldomain.ActionRevertToDraft
)

// ContentItem is the canonical record moving through the approval lifecycle.
type ContentItem = internaldomain.ContentItem

// AuditEntry records one workflow-relevant mutation of a content item.
type AuditEntry = internaldomain.AuditEntry

// UserSession carries the identity and visibility scope of a client session.
type UserSession = internaldomain.UserSession
