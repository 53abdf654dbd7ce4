package omdb

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrAPIKeyMissing indicates the client was built without an API key
	ErrAPIKeyMissing = errors.New("omdb API key is required")
	// ErrInvalidRequest indicates malformed caller input
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownType indicates a payload whose type tag matches no known variant
	ErrUnknownType = errors.New("unknown media type")
)

// UpstreamError represents a failure reported by OMDb itself, such as
// "Movie not found!" or "Invalid API key!". Query carries the title, id,
// or search term the failing request was made with.
type UpstreamError struct {
	Message string
	Query   string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("omdb error for %q: %s", e.Query, e.Message)
}

// IsNotFound checks if the upstream message indicates a missing record
// rather than a request or account problem.
func (e *UpstreamError) IsNotFound() bool {
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "incorrect imdb id")
}

// IsInvalidAPIKey checks if the upstream message indicates a rejected key.
func (e *UpstreamError) IsInvalidAPIKey() bool {
	return strings.Contains(strings.ToLower(e.Message), "api key")
}

// ParseError indicates a required numeric field could not be coerced. A
// garbled year, season, or episode number fails the whole record rather
// than degrading to zero.
type ParseError struct {
	Field string
	Value string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q", e.Field, e.Value)
}
