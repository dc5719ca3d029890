// Package csrf implements stateless anti-forgery token handling.
package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Token is an issued anti-forgery token pair. The client carries it in
// the form markup and returns it verbatim on the next submission; the
// server keeps no copy.
type Token struct {
	// Value is the 64-character lowercase hex token.
	Value string `json:"token"`

	// Time is the issue time in Unix epoch milliseconds.
	Time int64 `json:"time"`
}

// TimeString returns the issue time as the decimal string that was
// signed into the token.
func (t Token) TimeString() string {
	return strconv.FormatInt(t.Time, 10)
}

// Identity derives the client fingerprint for a request: the source
// address concatenated with the user agent, in that order, with no
// separator. Absent parts contribute empty strings.
//
// Two requests with the same address and user agent always map to the
// same identity regardless of any other request content. The binding is
// intentionally weak (both attributes are spoofable); it narrows who can
// use a token, it does not authenticate anyone.
func (g *Guard) Identity(req Request) string {
	return req.SourceAddr + req.UserAgent
}

// issue computes the token for an identity and a time string: the
// lowercase hex HMAC-SHA-256 of identity || timeStr, keyed by the
// secret. Deterministic; no randomness, no nonce.
func (g *Guard) issue(identity, timeStr string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(identity))
	mac.Write([]byte(timeStr))
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue computes a fresh token for the requesting client, stamped with
// the current time.
func (g *Guard) Issue(req Request) Token {
	now := g.now().UnixMilli()
	return Token{
		Value: g.issue(g.Identity(req), strconv.FormatInt(now, 10)),
		Time:  now,
	}
}

// Render issues a fresh token for the requesting client and returns the
// two hidden input elements carrying it, newline-joined.
//
// No HTML escaping is applied: field names are validated at construction
// and the values are constrained to [0-9a-f]+ and [0-9]+ by
// construction. Anyone substituting different value sources must escape.
func (g *Guard) Render(req Request) string {
	tok := g.Issue(req)

	var b strings.Builder
	b.Grow(128)
	b.WriteString(`<input type="hidden" name="`)
	b.WriteString(g.tokenField)
	b.WriteString(`" value="`)
	b.WriteString(tok.Value)
	b.WriteString("\">\n")
	b.WriteString(`<input type="hidden" name="`)
	b.WriteString(g.timeField)
	b.WriteString(`" value="`)
	b.WriteString(tok.TimeString())
	b.WriteString(`">`)
	return b.String()
}
