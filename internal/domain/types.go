package domain

import "strings"

// Role identifies what a session is allowed to do across the approval
// workflow. Roles are assigned at session creation and never change.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReviewer Role = "reviewer"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReviewer:
		return true
	default:
		return false
	}
}

// NormalizeRole coerces arbitrary role strings into a known representation.
func NormalizeRole(input string) Role {
	return Role(strings.ToLower(strings.TrimSpace(input)))
}

// Status represents lifecycle states for content items.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusInReview marks content waiting for a reviewer decision.
	StatusInReview Status = "in_review"
	// StatusPublished identifies content available to consumers. Published
	// is terminal: no transition leads out of it.
	StatusPublished Status = "published"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusPublished:
		return true
	default:
		return false
	}
}

// NormalizeStatus coerces arbitrary status strings into a known representation.
func NormalizeStatus(input string) Status {
	return Status(strings.ToLower(strings.TrimSpace(input)))
}

// Action enumerates the workflow operations a session can request.
type Action string

const (
	ActionCreate          Action = "create"
	ActionEdit            Action = "edit"
	ActionSubmitForReview Action = "submit_for_review"
	ActionApprovePublish  Action = "approve_publish"
	ActionRevertToDraft   Action = "revert_to_draft"
)

// Valid reports whether the action is one of the known workflow actions.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionEdit, ActionSubmitForReview, ActionApprovePublish, ActionRevertToDraft:
		return true
	default:
		return false
	}
}

// NormalizeAction coerces arbitrary action strings into a known representation.
func NormalizeAction(input string) Action {
	return Action(strings.ToLower(strings.TrimSpace(input)))
}
