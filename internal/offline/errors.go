package offline

import "errors"

var (
	// ErrOffline reports a read attempted while offline. Nothing was
	// queued; the caller should retry once connectivity returns.
	ErrOffline = errors.New("offline: content unavailable while offline")
	// ErrQueued reports a mutating call intercepted while offline. The
	// action was appended to the queue and will replay on the next
	// drain; the wording is distinct from ErrOffline so callers can
	// tell "will retry automatically" from "try again later".
	ErrQueued = errors.New("offline: action queued for sync")
	// ErrUnknownActionKind reports a stored queue entry whose kind no
	// variant matches. Counted as a failed replay, never a panic.
	ErrUnknownActionKind = errors.New("offline: unknown queued action kind")
	// ErrNotPermitted reports a mutation rejected before enqueue
	// because the session's role can never perform it. Only the static
	// role check runs offline; status guards wait for replay.
	ErrNotPermitted = errors.New("offline: role cannot perform this action")
)
