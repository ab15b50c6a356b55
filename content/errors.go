package content

import (
	"errors"
	"fmt"
)

var (
	// ErrTitleRequired rejects create payloads without a title.
	ErrTitleRequired = errors.New("content: title is required")
	// ErrSectorRequired rejects create payloads without a sector.
	ErrSectorRequired = errors.New("content: sector is required")
	// ErrContentIDRequired rejects item operations without an identifier.
	ErrContentIDRequired = errors.New("content: content id required")

	// ErrNotFound reports a lookup for content that does not exist.
	ErrNotFound = errors.New("content: not found")
	// ErrNotDraftEditable rejects updates to content that left draft.
	ErrNotDraftEditable = errors.New("content: only drafts can be edited")
	// ErrNotDraftSubmittable rejects review submissions of non-drafts.
	ErrNotDraftSubmittable = errors.New("content: only drafts can be submitted for review")
	// ErrNotInReview rejects publishing content that is not in review.
	ErrNotInReview = errors.New("content: only content in review can be published")

	// ErrBackendUnavailable reports a simulated or real transport
	// failure. Callers may retry.
	ErrBackendUnavailable = errors.New("content: backend unavailable, please try again")
)

// NotFoundError identifies the missing resource on lookup failures.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
