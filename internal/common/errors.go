package common

import "errors"

// Stable error categories surfaced to API callers. Handlers map these to
// HTTP status codes; services wrap them with context via fmt.Errorf and %w.
var (
	// Request validation
	ErrInvalidInput = errors.New("invalid input")

	// Credential store
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")

	// Token service
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")

	// Import pipeline
	ErrMalformedLine = errors.New("malformed line")
	ErrMalformedRow  = errors.New("malformed row")

	// Quote gateway
	ErrNoData      = errors.New("no quote data")
	ErrUnavailable = errors.New("quote provider unavailable")
)
