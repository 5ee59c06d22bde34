package service

import "errors"

// Sentinel errors for the failure kinds callers branch on. Wrap with
// fmt.Errorf("%w: ...") when adding context.
var (
	// ErrNotFound indicates the referenced prova, participante or
	// profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOutcome indicates a resolution outcome that does not
	// correspond to any valid choice for the prova.
	ErrInvalidOutcome = errors.New("invalid outcome")

	// ErrAlreadyClosed indicates resolve was called on a prova that is
	// already closed (reopen first) or a wager on a closed prova.
	ErrAlreadyClosed = errors.New("prova already closed")

	// ErrNotClosed indicates reopen was called on an open prova.
	ErrNotClosed = errors.New("prova is not closed")

	// ErrVotingClosed indicates the prova no longer accepts wagers.
	ErrVotingClosed = errors.New("voting closed")

	// ErrChoiceLimitExceeded indicates the per-user selection cap on a
	// multi-choice prova was reached.
	ErrChoiceLimitExceeded = errors.New("choice limit exceeded")

	// ErrConflict indicates a concurrent write detected by the store.
	ErrConflict = errors.New("conflict")
)
