package model

import "errors"

var (
	// ErrTimeout means the text-understanding call exceeded its deadline
	ErrTimeout = errors.New("timeout")

	// ErrQuotaExceeded means rate-limit retries were exhausted
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrMalformedResponse means the reply could not be parsed even after repair
	ErrMalformedResponse = errors.New("malformed response")

	// ErrSchemaInvalid marks a structural check failure. It is recorded,
	// never fatal to a run.
	ErrSchemaInvalid = errors.New("schema invalid")

	// ErrNoActiveSession means a map spec was requested before any extraction
	ErrNoActiveSession = errors.New("no active session")

	// ErrDuplicateRequest means an analysis is already in flight
	ErrDuplicateRequest = errors.New("analysis already in progress")

	// ErrServiceUnavailable means the circuit breaker is refusing calls
	ErrServiceUnavailable = errors.New("text-understanding service unavailable")
)
