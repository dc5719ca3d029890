// Package csrfhttp adapts the csrf guard to net/http.
//
// The package provides:
//
//   - Protect: middleware that validates unsafe requests against a
//     guard and primes the request context for token rendering
//   - FromRequest: extraction of the method, client address, user
//     agent, and posted form fields from an *http.Request
//   - ClientAddr: proxy-aware client address resolution
//   - TemplateField and IssuedToken: render-side helpers that read the
//     issuer planted by Protect from the request context
//
// Token and timestamp fields are read from the request body only.
// Values supplied in the query string are never considered.
//
// Forwarding headers (X-Forwarded-For, X-Real-IP) are ignored unless
// the middleware is built with WithTrustProxy(true); a spoofed header
// would otherwise let a client pick its own identity.
//
// @design DS-0201
package csrfhttp
