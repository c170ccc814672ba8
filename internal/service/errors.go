package service

import (
	"errors"
	"fmt"
)

// Service-level error taxonomy. Handlers map these onto HTTP status codes
// with errors.Is; everything else is treated as an internal failure.
var (
	// ErrInvalidInput marks a request the caller can fix: missing or
	// over-length fields, unknown category references, bad filenames.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied marks an operation the actor is not permitted to
	// perform on an existing entity.
	ErrAccessDenied = errors.New("access denied")

	// ErrConflict marks an operation that collides with current state,
	// such as a duplicate category name.
	ErrConflict = errors.New("conflict")

	// ErrCategoryInUse is the deletion-blocked variant of ErrConflict for
	// categories still referenced by documents.
	ErrCategoryInUse = fmt.Errorf("%w: category is referenced by documents", ErrConflict)

	// ErrStorage marks a blob store failure, including a catalog row whose
	// content has gone missing.
	ErrStorage = errors.New("storage failure")
)
