// Package csrf implements stateless anti-forgery token handling.
package csrf

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Validate decides whether a request may proceed. It returns nil for an
// accepted request and a *Error rejection otherwise.
//
// The decision runs in a fixed order:
//
//  1. Safe methods (GET, HEAD, OPTIONS, case-insensitively) are accepted
//     without further checks.
//  2. A missing or empty token or time field rejects with
//     ErrMissingFields.
//  3. The expected token is recomputed from a freshly derived identity
//     and the presented time value, as a string, exactly as submitted.
//     A constant-time mismatch rejects with ErrInvalidToken.
//  4. A time value that does not parse to a finite number, a token
//     stamped in the future, or an age beyond the TTL rejects with
//     ErrExpiredToken.
//
// The signature check deliberately precedes the freshness check: a
// forged token always reports as invalid, never as expired. Validation
// has no side effects and writes no state on either path.
func (g *Guard) Validate(req Request) error {
	if isSafeMethod(req.Method) {
		return nil
	}

	token := req.Form.Get(g.tokenField)
	timeStr := req.Form.Get(g.timeField)
	if token == "" || timeStr == "" {
		return ErrMissingFields
	}

	// The identity is never trusted from the token; it is derived again
	// from the submitting request.
	expected := g.issue(g.Identity(req), timeStr)
	if !ConstantTimeEquals(token, expected) {
		return ErrInvalidToken
	}

	issued, err := strconv.ParseFloat(timeStr, 64)
	if err != nil || math.IsNaN(issued) || math.IsInf(issued, 0) {
		// Fail closed: an unreadable timestamp is treated as an expired
		// token rather than as a distinct error.
		return ErrExpiredToken
	}

	age := float64(g.now().UnixMilli()) - issued
	if age < 0 || age > float64(g.ttl.Milliseconds()) {
		return ErrExpiredToken
	}

	return nil
}

// isSafeMethod reports whether the method is exempt from validation.
// GET, HEAD and OPTIONS are non-mutating by convention.
func isSafeMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
