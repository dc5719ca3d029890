// Package secret provides signing-secret generation and derivation
// utilities.
package secret

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	s, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Should be non-empty
	if s == "" {
		t.Error("Generate() returned empty secret")
	}

	// Should be base64 RawURL encoded
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Errorf("Generate() returned invalid base64: %v", err)
	}

	// Should be DefaultLength bytes when decoded
	if len(decoded) != DefaultLength {
		t.Errorf("Generate() decoded length = %d, want %d", len(decoded), DefaultLength)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	secrets := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if secrets[s] {
			t.Errorf("Generate() produced duplicate secret: %s", s)
		}
		secrets[s] = true
	}
}

func TestGenerateWithLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"below minimum", 16, true},
		{"at minimum", 32, false},
		{"default", 48, false},
		{"large", 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GenerateWithLength(tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrLengthTooShort) {
					t.Fatalf("GenerateWithLength(%d) error = %v, want ErrLengthTooShort", tt.length, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateWithLength(%d) error = %v", tt.length, err)
			}

			decoded, err := base64.RawURLEncoding.DecodeString(s)
			if err != nil {
				t.Errorf("GenerateWithLength(%d) returned invalid base64: %v", tt.length, err)
			}
			if len(decoded) != tt.length {
				t.Errorf("GenerateWithLength(%d) decoded length = %d", tt.length, len(decoded))
			}
		})
	}
}

func TestNewSalt(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if len(salt) != SaltLength {
		t.Errorf("NewSalt() length = %d, want %d", len(salt), SaltLength)
	}
}

func TestKeyFromPassphrase(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, SaltLength)

	key, err := KeyFromPassphrase([]byte("correct horse battery"), salt)
	if err != nil {
		t.Fatalf("KeyFromPassphrase() error = %v", err)
	}
	if len(key) != 32 {
		t.Errorf("KeyFromPassphrase() key length = %d, want 32", len(key))
	}

	// Same inputs should produce the same key
	again, err := KeyFromPassphrase([]byte("correct horse battery"), salt)
	if err != nil {
		t.Fatalf("KeyFromPassphrase() error = %v", err)
	}
	if !bytes.Equal(key, again) {
		t.Error("KeyFromPassphrase() is not deterministic")
	}
}

func TestKeyFromPassphrase_Sensitivity(t *testing.T) {
	saltA := bytes.Repeat([]byte{0x5a}, SaltLength)
	saltB := bytes.Repeat([]byte{0xa5}, SaltLength)

	base, err := KeyFromPassphrase([]byte("correct horse battery"), saltA)
	if err != nil {
		t.Fatalf("KeyFromPassphrase() error = %v", err)
	}

	otherPass, err := KeyFromPassphrase([]byte("incorrect horse battery"), saltA)
	if err != nil {
		t.Fatalf("KeyFromPassphrase() error = %v", err)
	}
	if bytes.Equal(base, otherPass) {
		t.Error("KeyFromPassphrase() ignored the passphrase")
	}

	otherSalt, err := KeyFromPassphrase([]byte("correct horse battery"), saltB)
	if err != nil {
		t.Fatalf("KeyFromPassphrase() error = %v", err)
	}
	if bytes.Equal(base, otherSalt) {
		t.Error("KeyFromPassphrase() ignored the salt")
	}
}

func TestKeyFromPassphrase_Validation(t *testing.T) {
	goodSalt := bytes.Repeat([]byte{0x5a}, SaltLength)

	tests := []struct {
		name       string
		passphrase []byte
		salt       []byte
		wantErr    error
	}{
		{"weak passphrase", []byte("short"), goodSalt, ErrPassphraseTooWeak},
		{"empty passphrase", nil, goodSalt, ErrPassphraseTooWeak},
		{"short salt", []byte("correct horse battery"), []byte{1, 2, 3}, ErrBadSalt},
		{"nil salt", []byte("correct horse battery"), nil, ErrBadSalt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := KeyFromPassphrase(tt.passphrase, tt.salt); !errors.Is(err, tt.wantErr) {
				t.Errorf("KeyFromPassphrase() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromPassphrase(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, SaltLength)

	s, err := FromPassphrase([]byte("correct horse battery"), salt)
	if err != nil {
		t.Fatalf("FromPassphrase() error = %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Errorf("FromPassphrase() returned invalid base64: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("FromPassphrase() decoded length = %d, want 32", len(decoded))
	}

	// Encoded form must satisfy a 32-byte minimum secret size
	if len(s) < 32 {
		t.Errorf("FromPassphrase() secret length = %d, want >= 32", len(s))
	}

	again, err := FromPassphrase([]byte("correct horse battery"), salt)
	if err != nil {
		t.Fatalf("FromPassphrase() error = %v", err)
	}
	if s != again {
		t.Error("FromPassphrase() is not deterministic")
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("my-signing-secret")

	// Should be 64 characters (SHA-256 hex encoded)
	if len(fp) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64", len(fp))
	}

	// Should be lowercase hex
	if strings.ToLower(fp) != fp {
		t.Error("Fingerprint() should return lowercase hex")
	}

	// Same input should produce same output
	if fp != Fingerprint("my-signing-secret") {
		t.Error("Fingerprint() is not deterministic")
	}

	// Different inputs should differ
	if fp == Fingerprint("other-signing-secret") {
		t.Error("Fingerprint() produced same value for different secrets")
	}
}

func TestVerifyFingerprint(t *testing.T) {
	s := "my-signing-secret"
	fp := Fingerprint(s)

	// Should verify correctly
	if !VerifyFingerprint(s, fp) {
		t.Error("VerifyFingerprint() returned false for correct secret")
	}

	// Should fail for wrong secret
	if VerifyFingerprint("wrong-secret", fp) {
		t.Error("VerifyFingerprint() returned true for wrong secret")
	}

	// Should fail for wrong fingerprint
	if VerifyFingerprint(s, "wrong-fingerprint") {
		t.Error("VerifyFingerprint() returned true for wrong fingerprint")
	}
}

func TestZero(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	Zero(key)

	for i, b := range key {
		if b != 0 {
			t.Errorf("Zero() left byte %d = %d", i, b)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Generate()
	}
}

func BenchmarkFingerprint(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Fingerprint("benchmark-signing-secret")
	}
}
