// Package csrf implements stateless anti-forgery token issuance and
// validation for HTML form submissions.
//
// A Guard binds a token to the submitting client and to its issue time
// using a keyed hash; nothing is ever stored server-side. This package
// contains:
//
//   - Guard: immutable configuration bundle with the exposed operations
//   - Identity: client fingerprint derivation (source address + user agent)
//   - Issue/Render: token computation and hidden-field markup emission
//   - Validate: the per-request accept/reject decision
//   - ConstantTimeEquals: timing-safe string comparison primitive
//
// Token Format:
//
//   - Value: 64 characters of lowercase hex (HMAC-SHA-256 output)
//   - Time: issue time as integer Unix epoch milliseconds
//
// Security:
//
//   - HMAC-SHA-256 keyed by a secret of at least 32 bytes
//   - Token comparison never branches on the first differing byte
//   - A token is self-verifying; the server holds no copy
//
// The package performs no I/O and is safe for unsynchronized concurrent
// use: every operation is a pure computation over its inputs and the
// immutable Guard.
//
// @design DS-0101
// @adr AD-0101
package csrf
