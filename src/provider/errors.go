package provider

import (
	"errors"
	"fmt"
)

var (
	ErrBuildUnavailable = errors.New("build status unavailable")
	ErrSessionNotFound  = errors.New("build session not found")
	ErrNoSessions       = errors.New("no build sessions recorded")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts provider errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoSessions) {
		return &UserError{
			Message: "No build has been observed yet",
			Hint:    "Start a watched build (dune build -w) or point the server at a running build watcher.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrSessionNotFound) {
		return &UserError{
			Message: "Build session not found",
			Hint:    "The session may have been evicted. Re-run dune_build_status to get a fresh session id.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrBuildUnavailable) {
		return &UserError{
			Message: "Build status unavailable",
			Hint:    "Check that the build watcher is running and its broker/store settings match the server's.",
			Err:     err,
		}
	}

	return err
}
