package offline

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/qitae/go-approval/content"
)

const (
	createActionType  = "approval.offline.create"
	updateActionType  = "approval.offline.update"
	submitActionType  = "approval.offline.submit_for_review"
	approveActionType = "approval.offline.approve_publish"
)

// Action is one deferred mutating call. The set of variants is closed:
// adding a mutating operation to the content API means adding a variant
// here and teaching the replayer about it, which the queuedAction marker
// and the decode/replay switches enforce.
//
// Every variant is a go-command message so replays flow through the
// shared command handler with validation and logging.
type Action interface {
	// Type implements command.Message.
	Type() string
	queuedAction()
}

// CreateAction defers a content creation.
type CreateAction struct {
	Payload content.CreatePayload `json:"payload"`
}

// Type implements command.Message.
func (CreateAction) Type() string { return createActionType }

func (CreateAction) queuedAction() {}

// Validate ensures the payload carries the required fields before replay.
func (a CreateAction) Validate() error {
	errs := validation.Errors{}
	if a.Payload.Title == "" {
		errs["title"] = validation.NewError("approval.offline.create.title_required", "title is required")
	}
	if a.Payload.Sector == "" {
		errs["sector"] = validation.NewError("approval.offline.create.sector_required", "sector is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAction defers a draft update.
type UpdateAction struct {
	ID      uuid.UUID             `json:"id"`
	Payload content.UpdatePayload `json:"payload"`
}

// Type implements command.Message.
func (UpdateAction) Type() string { return updateActionType }

func (UpdateAction) queuedAction() {}

// Validate ensures the message identifies its target item.
func (a UpdateAction) Validate() error {
	errs := validation.Errors{}
	if a.ID == uuid.Nil {
		errs["id"] = validation.NewError("approval.offline.update.id_required", "content id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitAction defers a submit-for-review transition.
type SubmitAction struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (SubmitAction) Type() string { return submitActionType }

func (SubmitAction) queuedAction() {}

// Validate ensures the message identifies its target item.
func (a SubmitAction) Validate() error {
	errs := validation.Errors{}
	if a.ID == uuid.Nil {
		errs["id"] = validation.NewError("approval.offline.submit.id_required", "content id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveAction defers an approve-and-publish transition.
type ApproveAction struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (ApproveAction) Type() string { return approveActionType }

func (ApproveAction) queuedAction() {}

// Validate ensures the message identifies its target item.
func (a ApproveAction) Validate() error {
	errs := validation.Errors{}
	if a.ID == uuid.Nil {
		errs["id"] = validation.NewError("approval.offline.approve.id_required", "content id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func encodeAction(action Action) (string, []byte, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return "", nil, fmt.Errorf("offline: encode %s: %w", action.Type(), err)
	}
	return action.Type(), payload, nil
}

func decodeAction(kind string, payload []byte) (Action, error) {
	switch kind {
	case createActionType:
		var action CreateAction
		if err := json.Unmarshal(payload, &action); err != nil {
			return nil, fmt.Errorf("offline: decode %s: %w", kind, err)
		}
		return action, nil
	case updateActionType:
		var action UpdateAction
		if err := json.Unmarshal(payload, &action); err != nil {
			return nil, fmt.Errorf("offline: decode %s: %w", kind, err)
		}
		return action, nil
	case submitActionType:
		var action SubmitAction
		if err := json.Unmarshal(payload, &action); err != nil {
			return nil, fmt.Errorf("offline: decode %s: %w", kind, err)
		}
		return action, nil
	case approveActionType:
		var action ApproveAction
		if err := json.Unmarshal(payload, &action); err != nil {
			return nil, fmt.Errorf("offline: decode %s: %w", kind, err)
		}
		return action, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionKind, kind)
	}
}
