package csrfhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/formseal-go/pkg/csrf"
)

// maxFormMemory caps the in-memory portion of a parsed multipart body.
const maxFormMemory = 10 << 20

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Observer is called once per checked request with the validation
// outcome (nil on acceptance) and the time the check took.
type Observer func(err error, elapsed time.Duration)

// Option configures the Protect middleware.
type Option func(*protector)

// WithTrustProxy enables client address resolution from forwarding
// headers. Leave disabled unless a trusted proxy terminates the
// connection.
func WithTrustProxy(trust bool) Option {
	return func(p *protector) { p.trustProxy = trust }
}

// WithErrorHandler replaces the default JSON 403 response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *protector) {
		if h != nil {
			p.onError = h
		}
	}
}

// WithObserver registers a callback invoked after every validation.
func WithObserver(fn Observer) Option {
	return func(p *protector) { p.observe = fn }
}

type protector struct {
	guard      *csrf.Guard
	trustProxy bool
	onError    ErrorHandler
	observe    Observer
}

// Protect returns middleware that validates every request against the
// guard. Safe methods pass through untouched; unsafe methods must
// carry a fresh token bound to the caller's identity. Handlers behind
// the middleware can render token fields with TemplateField or read
// the raw token with IssuedToken.
func Protect(g *csrf.Guard, opts ...Option) func(http.Handler) http.Handler {
	p := &protector{guard: g, onError: defaultErrorHandler}
	for _, opt := range opts {
		opt(p)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			req := FromRequest(r, p.trustProxy)

			err := p.guard.Validate(req)
			if p.observe != nil {
				p.observe(err, time.Since(start))
			}
			if err != nil {
				p.onError(w, r, err)
				return
			}

			ctx := withIssuer(r.Context(), issuer{guard: p.guard, req: req})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromRequest builds the guard's view of an incoming request. The form
// body is parsed on demand; urlencoded and multipart encodings are
// both handled, and query parameters are deliberately excluded.
func FromRequest(r *http.Request, trustProxy bool) csrf.Request {
	// ParseMultipartForm falls through to ParseForm for urlencoded
	// bodies, so PostForm ends up populated either way. An unreadable
	// body leaves the form empty and the request is judged on that.
	_ = r.ParseMultipartForm(maxFormMemory)

	return csrf.Request{
		Method:     r.Method,
		SourceAddr: ClientAddr(r, trustProxy),
		UserAgent:  r.UserAgent(),
		Form:       r.PostForm,
	}
}

// ClientAddr resolves the client address for identity binding. With
// trustProxy set, X-Forwarded-For (first hop) and X-Real-IP take
// precedence; otherwise the peer address of the connection is used
// with its port stripped.
func ClientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if i := strings.Index(xff, ","); i >= 0 {
				xff = xff[:i]
			}
			return strings.TrimSpace(xff)
		}
		if rip := r.Header.Get("X-Real-IP"); rip != "" {
			return rip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code, message := csrf.ErrorCode, "Invalid CSRF token"
	var rej *csrf.Error
	if errors.As(err, &rej) {
		code, message = rej.Code, rej.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

type issuerKey struct{}

type issuer struct {
	guard *csrf.Guard
	req   csrf.Request
}

func withIssuer(ctx context.Context, iss issuer) context.Context {
	return context.WithValue(ctx, issuerKey{}, iss)
}

func issuerFrom(ctx context.Context) (issuer, bool) {
	iss, ok := ctx.Value(issuerKey{}).(issuer)
	return iss, ok
}
