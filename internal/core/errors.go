package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeAlreadyJoined    = "already_joined"
	ErrCodeNotInRoom        = "not_in_room"
	ErrCodeDuplicateComment = "duplicate_comment"
)

// ErrHubStopped is returned by hub queries after the run loop has exited.
var ErrHubStopped = errors.New("hub stopped")

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
