// Package csrf implements stateless anti-forgery token handling.
package csrf

import "net/url"

// Request is the narrow request shape the guard consumes.
//
// Host frameworks adapt their own request types into this shape at the
// integration boundary; the guard never sees a framework request. Header
// case handling is the adapter's job: UserAgent must already hold the
// value of the User-Agent header, however the host spells it.
type Request struct {
	// Method is the HTTP method, in whatever case the host reports it.
	Method string

	// SourceAddr is the client network address, or empty when unknown.
	SourceAddr string

	// UserAgent is the User-Agent header value, or empty when absent.
	UserAgent string

	// Form holds the submitted body fields. A nil map reads as empty.
	Form url.Values
}
