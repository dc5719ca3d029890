// Package csrf implements stateless anti-forgery token handling.
package csrf

import (
	"errors"
	"fmt"
)

// ErrorCode is the single error code carried by every rejection. It
// distinguishes anti-forgery failures from all other errors at the
// integration boundary.
const ErrorCode = "EBADCSRFTOKEN"

// Reason discriminates the rejection sub-cause, separately from the
// display message.
type Reason string

// Rejection reasons.
const (
	ReasonMissingFields    Reason = "missing_fields"
	ReasonInvalidSignature Reason = "invalid_signature"
	ReasonExpired          Reason = "expired"
)

// Error is a typed validation rejection.
//
// Code is always ErrorCode; Reason and Message identify the sub-cause.
// The message text is part of the observable contract and is matched by
// integrations independently of the reason.
//
// @design DS-0102
type Error struct {
	Code    string // always ErrorCode
	Reason  Reason // machine-readable sub-cause
	Message string // human-readable, contractual text
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is supports errors.Is comparison against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason
}

// Validation rejections. Validate returns exactly one of these.
var (
	// ErrMissingFields rejects a request whose token or time field is
	// absent or empty.
	ErrMissingFields = &Error{Code: ErrorCode, Reason: ReasonMissingFields, Message: "Missing CSRF token or timestamp"}

	// ErrInvalidToken rejects a token that does not match the value
	// recomputed for the submitting client.
	ErrInvalidToken = &Error{Code: ErrorCode, Reason: ReasonInvalidSignature, Message: "Invalid CSRF token"}

	// ErrExpiredToken rejects a token older than the TTL, stamped in the
	// future, or carrying an unreadable timestamp.
	ErrExpiredToken = &Error{Code: ErrorCode, Reason: ReasonExpired, Message: "Expired CSRF token"}
)

// IsRejection reports whether err is a validation rejection.
func IsRejection(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// ReasonOf extracts the rejection reason from err, or "" when err is
// not a rejection.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
