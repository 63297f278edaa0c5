package cli

import "errors"

// Common CLI errors
var (
	// ErrValidationFailed is returned by check after the problem details have
	// been written; Main exits 1 without printing it again.
	ErrValidationFailed = errors.New("request validation failed")
	ErrInvalidQueryJSON = errors.New("--query-json must be a JSON object")
)
