package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// DefaultLength is the default entropy of a generated secret in bytes.
const DefaultLength = 48

// MinLength is the minimum entropy accepted for a generated secret.
// The encoded form of MinLength bytes comfortably clears the guard's
// minimum secret size.
const MinLength = 32

// ErrLengthTooShort is returned for generation requests below MinLength.
var ErrLengthTooShort = errors.New("secret: length too short (minimum 32 bytes)")

// Generate generates a cryptographically secure random secret.
//
// The returned secret is Base64 RawURL encoded for safe use in
// environment variables and config files.
func Generate() (string, error) {
	return GenerateWithLength(DefaultLength)
}

// GenerateWithLength generates a secret with the specified entropy in
// bytes.
func GenerateWithLength(length int) (string, error) {
	if length < MinLength {
		return "", ErrLengthTooShort
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// Zero overwrites key material in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
