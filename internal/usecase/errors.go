package usecase

import "errors"

// Reconcile failures are classified by wrapping one of these; the HTTP layer
// maps them to 400, 404 and 503 and the CLI reports them as exit code 1.
var (
	// ErrInvalidInput covers blank competition codes or seasons and worker
	// counts outside [0, 64].
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means a source has no data for the competition season.
	ErrNotFound = errors.New("resource not found")
	// ErrDependencyUnavailable means a source failed, is not configured, or
	// sits behind an open circuit breaker.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
