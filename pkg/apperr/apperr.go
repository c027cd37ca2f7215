package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error so callers can decide how to react
// (retry, surface to the user, treat as already-done) without string matching.
type Kind string

const (
	KindDenied           Kind = "DENIED"            // authorization failure, never retried
	KindUnknownAction    Kind = "UNKNOWN_ACTION"    // misconfigured gamification action
	KindEmptyContent     Kind = "EMPTY_CONTENT"     // blank input after trimming
	KindValidationFailed Kind = "VALIDATION_FAILED" // caller-correctable input error
	KindConflict         Kind = "CONFLICT"          // concurrent state race; toggles treat as already-in-state
	KindTransient        Kind = "TRANSIENT"         // persistence unavailable/timed out; idempotent calls may retry
	KindNotFound         Kind = "NOT_FOUND"
)

// Error is the typed error all services return. Handlers map it to an HTTP
// response at the boundary; nothing in the core treats one as fatal.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrDenied = New(KindDenied, "access denied")
)

func Denied(msg string) *Error           { return New(KindDenied, msg) }
func UnknownAction(msg string) *Error    { return New(KindUnknownAction, msg) }
func EmptyContent(msg string) *Error     { return New(KindEmptyContent, msg) }
func ValidationFailed(msg string) *Error { return New(KindValidationFailed, msg) }
func Conflict(msg string) *Error         { return New(KindConflict, msg) }
func Transient(msg string) *Error        { return New(KindTransient, msg) }
func NotFound(msg string) *Error         { return New(KindNotFound, msg) }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// HTTPStatus maps an error kind to the status code the API responds with.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindDenied:
		return http.StatusForbidden
	case KindEmptyContent, KindValidationFailed:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnknownAction:
		return http.StatusUnprocessableEntity
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
