package session

import "errors"

// Failure taxonomy surfaced to the transport layer. An empty review batch is
// never an error; it is a valid "caught up" result.
var (
	// ErrNotFound: the referenced learner or word does not exist. Not
	// retriable; surfaced to the caller immediately.
	ErrNotFound = errors.New("not found")

	// ErrInvalidWordReference: an outcome was submitted for a word outside
	// the vocabulary pool. A caller bug, not retriable.
	ErrInvalidWordReference = errors.New("word is not part of the vocabulary pool")

	// ErrStorageUnavailable: a transient infrastructure failure. Safe to
	// retry with backoff; outcome submissions should carry the same attempt
	// ID on retry so the outcome is applied once.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrValidation: malformed request input. Not retriable.
	ErrValidation = errors.New("invalid argument")
)
