package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates the weather API could not be reached
	// or returned an unusable response.
	ErrUpstream = errors.New("upstream service error")

	// ErrInvalidLocation indicates coordinates or a state code
	// do not map to usable weather data.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrEventNotFound indicates the event id is unknown.
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)

	// ErrParticipantNotFound indicates the participant is unknown
	// or the event has no participants at all.
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
)

// Error is a domain failure with a user-facing message.
// Kind is one of the sentinel errors above and is matched by errors.Is.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewError creates a domain error of the given kind.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a domain error of the given kind that keeps cause in the chain.
func WrapError(kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// ValidationError reports invalid caller input.
func ValidationError(format string, args ...any) *Error {
	return NewError(ErrInvalidInput, format, args...)
}

// UpstreamError reports a failure talking to the weather API.
func UpstreamError(cause error, format string, args ...any) *Error {
	return WrapError(ErrUpstream, cause, format, args...)
}

// InvalidLocationError reports a location that resolves to nothing usable.
func InvalidLocationError(cause error, format string, args ...any) *Error {
	return WrapError(ErrInvalidLocation, cause, format, args...)
}

// Message returns the user-facing text for err.
// Domain errors yield their message; anything else yields err.Error().
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
