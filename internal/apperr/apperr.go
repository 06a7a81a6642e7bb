// Package apperr carries the typed failures the service layer reports.
// Controllers translate kinds into HTTP statuses; services never log.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// KindValidation: malformed or missing input, caught before any mutation.
	KindValidation Kind = iota
	// KindNotFound: the referenced entity does not exist or is soft-deleted.
	KindNotFound
	// KindForbidden: the caller lacks authorization, or the entity's state
	// disallows the action (concluded activity, deactivated account).
	KindForbidden
	// KindConflict: the action would violate a uniqueness or idempotence
	// invariant (double subscribe, double check-in).
	KindConflict
	// KindBadRequest: well-formed input that fails a business rule.
	KindBadRequest
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error { return &Error{Kind: KindValidation, Message: message} }
func NotFound(message string) *Error   { return &Error{Kind: KindNotFound, Message: message} }
func Forbidden(message string) *Error  { return &Error{Kind: KindForbidden, Message: message} }
func Conflict(message string) *Error   { return &Error{Kind: KindConflict, Message: message} }
func BadRequest(message string) *Error { return &Error{Kind: KindBadRequest, Message: message} }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error to the status a controller should answer with.
// Unknown errors are treated as internal failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
