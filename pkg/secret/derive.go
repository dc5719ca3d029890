package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Derivation errors.
var (
	ErrPassphraseTooWeak = errors.New("secret: passphrase too weak (minimum 8 characters)")
	ErrBadSalt           = errors.New("secret: salt must be 16 bytes")
)

const (
	// MinPassphraseLength is the minimum passphrase length.
	MinPassphraseLength = 8

	// SaltLength is the fixed salt length used in key derivation.
	SaltLength = 16

	// Argon2 parameters for key derivation from passphrase.
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// NewSalt generates a fresh derivation salt. Callers must persist the
// salt alongside whatever the derived key protects; the same
// passphrase with a different salt yields an unrelated key.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("secret: new salt: %w", err)
	}
	return salt, nil
}

// KeyFromPassphrase derives a 32-byte key from a passphrase using
// Argon2id. Derivation is deterministic in (passphrase, salt).
func KeyFromPassphrase(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrPassphraseTooWeak
	}
	if len(salt) != SaltLength {
		return nil, ErrBadSalt
	}

	return argon2.IDKey(
		passphrase,
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	), nil
}

// FromPassphrase derives a signing secret from a passphrase and salt,
// encoded the same way Generate encodes fresh secrets. Deployments
// that cannot distribute random material can reproduce the secret on
// every host from the shared passphrase and salt.
func FromPassphrase(passphrase, salt []byte) (string, error) {
	key, err := KeyFromPassphrase(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer Zero(key)

	return base64.RawURLEncoding.EncodeToString(key), nil
}
