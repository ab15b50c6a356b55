package workflow

import "github.com/qitae/go-approval/internal/domain"

// Role to ever-permitted actions. admin is the only role that can revert
// in-review content back to draft.
var roleActions = map[domain.Role][]domain.Action{
	domain.RoleAdmin: {
		domain.ActionCreate,
		domain.ActionEdit,
		domain.ActionSubmitForReview,
		domain.ActionApprovePublish,
		domain.ActionRevertToDraft,
	},
	domain.RoleEditor: {
		domain.ActionCreate,
		domain.ActionEdit,
		domain.ActionSubmitForReview,
	},
	domain.RoleReviewer: {
		domain.ActionApprovePublish,
	},
}

// Item-scoped actions in presentation order. create is deliberately
// excluded: it has no prior status and is never offered on an item.
var itemActions = []domain.Action{
	domain.ActionEdit,
	domain.ActionSubmitForReview,
	domain.ActionApprovePublish,
	domain.ActionRevertToDraft,
}

var defaultTransitions = map[domain.Status][]domain.Status{
	domain.StatusDraft:     {domain.StatusInReview},
	domain.StatusInReview:  {domain.StatusPublished, domain.StatusDraft},
	domain.StatusPublished: {},
}

const (
	reasonPermissionDenied = "You don't have permission to perform this action."
	reasonSubmitNotDraft   = "Only drafts can be submitted for review."
	reasonApproveNotReview = "Only content in review can be approved and published."
	reasonEditNotDraft     = "Only drafts can be edited."
	reasonInvalidForStatus = "Invalid transition for current status."
)

// Engine evaluates workflow decisions against a transition table. The
// zero-configuration engine, exposed through the package-level
// functions, uses the fixed draft/in_review/published graph; custom
// tables can be compiled from configuration via CompileDefinition.
//
// Every method is a total function: decisions are reported as booleans
// and strings, never as errors.
type Engine struct {
	transitions map[domain.Status][]domain.Status
}

var defaultEngine = &Engine{transitions: defaultTransitions}

// Default returns the engine backed by the fixed approval transition graph.
func Default() *Engine {
	return defaultEngine
}

// RoleCanPerform reports whether the role is ever permitted to perform
// the action, regardless of content status. This is the static half of
// CanPerformAction and the only check possible when the current status
// is unknown (e.g. while offline).
func RoleCanPerform(role domain.Role, action domain.Action) bool {
	for _, allowed := range roleActions[role] {
		if allowed == action {
			return true
		}
	}
	return false
}

// CanPerformAction reports whether the role may perform the action on
// content currently in the supplied status. Unknown roles, actions and
// statuses deny.
func (e *Engine) CanPerformAction(role domain.Role, action domain.Action, status domain.Status) bool {
	if !RoleCanPerform(role, action) {
		return false
	}

	switch action {
	case domain.ActionCreate:
		// Creation has no prior status.
		return true
	case domain.ActionEdit, domain.ActionSubmitForReview:
		return status == domain.StatusDraft
	case domain.ActionApprovePublish:
		return status == domain.StatusInReview
	case domain.ActionRevertToDraft:
		return status == domain.StatusInReview && role == domain.RoleAdmin
	default:
		return false
	}
}

// IsValidTransition reports whether the status graph contains an edge
// from one status to another, independent of who requested the change.
// Self-loops are never valid.
func (e *Engine) IsValidTransition(from, to domain.Status) bool {
	for _, next := range e.transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedActions returns the item-scoped actions the role may perform on
// content in the supplied status, preserving the fixed action order.
func (e *Engine) AllowedActions(role domain.Role, status domain.Status) []domain.Action {
	allowed := make([]domain.Action, 0, len(itemActions))
	for _, action := range itemActions {
		if e.CanPerformAction(role, action, status) {
			allowed = append(allowed, action)
		}
	}
	return allowed
}

// BlockedReason explains why the action is not available. An empty
// string means the action is allowed. Permission denials and status
// blocks produce distinct wording so callers can surface the right hint.
func (e *Engine) BlockedReason(role domain.Role, action domain.Action, status domain.Status) string {
	if !RoleCanPerform(role, action) {
		return reasonPermissionDenied
	}
	if e.CanPerformAction(role, action, status) {
		return ""
	}

	switch {
	case action == domain.ActionSubmitForReview && status != domain.StatusDraft:
		return reasonSubmitNotDraft
	case action == domain.ActionApprovePublish && status != domain.StatusInReview:
		return reasonApproveNotReview
	case action == domain.ActionEdit && status != domain.StatusDraft:
		return reasonEditNotDraft
	default:
		return reasonInvalidForStatus
	}
}

// CanPerformAction evaluates the default transition graph. See Engine.CanPerformAction.
func CanPerformAction(role domain.Role, action domain.Action, status domain.Status) bool {
	return defaultEngine.CanPerformAction(role, action, status)
}

// IsValidTransition evaluates the default transition graph. See Engine.IsValidTransition.
func IsValidTransition(from, to domain.Status) bool {
	return defaultEngine.IsValidTransition(from, to)
}

// AllowedActions evaluates the default transition graph. See Engine.AllowedActions.
func AllowedActions(role domain.Role, status domain.Status) []domain.Action {
	return defaultEngine.AllowedActions(role, status)
}

// BlockedReason evaluates the default transition graph. See Engine.BlockedReason.
func BlockedReason(role domain.Role, action domain.Action, status domain.Status) string {
	return defaultEngine.BlockedReason(role, action, status)
}
