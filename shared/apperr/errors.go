// Package apperr holds the error taxonomy shared by the account service layers.
// Handlers translate a Kind into an HTTP status; anything that is not an *Error
// is treated as an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidAccountType
	KindNotFound
	KindBadRequest
	KindConflict
	KindServiceUnavailable
)

const invalidAccountTypeMessage = "Invalid account type. Should be one of: SAVINGS|CHECKING|FIXED_TERM"

// Error is a classified, user-visible failure. Message is returned verbatim to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func InvalidAccountType() *Error {
	return &Error{Kind: KindInvalidAccountType, Message: invalidAccountTypeMessage}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// ServiceUnavailable is the uniform fallback for an unstable downstream service.
func ServiceUnavailable(service string) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: service + " service unavailable. Retry again later"}
}

// KindOf reports the Kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
