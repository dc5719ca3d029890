// Package csrf implements stateless anti-forgery token handling.
package csrf

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Guard constraints and defaults.
const (
	// MinSecretLength is the minimum secret length in bytes.
	MinSecretLength = 32

	// DefaultTokenField is the default form field name for the token value.
	DefaultTokenField = "_csrf_token"

	// DefaultTimeField is the default form field name for the issue time.
	DefaultTimeField = "_csrf_time"

	// DefaultTTL is the default maximum token age.
	DefaultTTL = time.Hour
)

// fieldNamePattern constrains form field names so the rendered markup
// needs no escaping.
const fieldNamePattern = `^[A-Za-z0-9_-]+$`

var fieldNameRe = regexp.MustCompile(fieldNamePattern)

// Config configures a Guard.
//
// Secret is required and must be at least MinSecretLength bytes.
// Zero values for the remaining fields select the package defaults.
type Config struct {
	// Secret keys the token HMAC. Never logged, never transmitted.
	Secret string

	// TokenField is the form field name carrying the token value.
	TokenField string

	// TimeField is the form field name carrying the issue time.
	TimeField string

	// TTL is the maximum accepted token age. Must not be negative.
	TTL time.Duration

	// Clock overrides the time source. Intended for tests and tooling
	// that needs to issue or judge tokens at a chosen instant.
	Clock func() time.Time
}

// Guard issues and validates anti-forgery tokens.
//
// A Guard is immutable after construction and safe for concurrent use
// without synchronization.
//
// @design DS-0101
type Guard struct {
	secret     []byte
	tokenField string
	timeField  string
	ttl        time.Duration
	now        func() time.Time
}

// New validates cfg once, synchronously, and returns an immutable Guard.
//
// Construction is the only place configuration errors can surface;
// integrations must not serve requests when New fails.
func New(cfg Config) (*Guard, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("csrf: secret too short (%d bytes, minimum %d)", len(cfg.Secret), MinSecretLength)
	}

	tokenField := cfg.TokenField
	if tokenField == "" {
		tokenField = DefaultTokenField
	}
	timeField := cfg.TimeField
	if timeField == "" {
		timeField = DefaultTimeField
	}

	if !fieldNameRe.MatchString(tokenField) {
		return nil, fmt.Errorf("csrf: invalid token field name %q: must match %s", tokenField, fieldNamePattern)
	}
	if !fieldNameRe.MatchString(timeField) {
		return nil, fmt.Errorf("csrf: invalid time field name %q: must match %s", timeField, fieldNamePattern)
	}
	if tokenField == timeField {
		return nil, errors.New("csrf: token and time field names must differ")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < 0 {
		return nil, fmt.Errorf("csrf: ttl must be positive, got %v", cfg.TTL)
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Guard{
		secret:     []byte(cfg.Secret),
		tokenField: tokenField,
		timeField:  timeField,
		ttl:        ttl,
		now:        now,
	}, nil
}

// TokenField returns the configured token field name.
func (g *Guard) TokenField() string { return g.tokenField }

// TimeField returns the configured time field name.
func (g *Guard) TimeField() string { return g.timeField }

// TTL returns the configured maximum token age.
func (g *Guard) TTL() time.Duration { return g.ttl }
