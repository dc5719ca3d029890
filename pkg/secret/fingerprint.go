package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Fingerprint computes the SHA-256 fingerprint of a secret.
//
// The returned fingerprint is hex encoded and safe to log or compare
// across deployments; it does not reveal the secret.
func Fingerprint(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}

// VerifyFingerprint verifies a secret against an expected fingerprint.
//
// Uses constant-time comparison to prevent timing attacks.
func VerifyFingerprint(secret, expected string) bool {
	actual := Fingerprint(secret)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expected)) == 1
}
