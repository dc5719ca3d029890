// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yndnr/formseal-go/internal/infra/secretfile"
	"github.com/yndnr/formseal-go/pkg/csrf"
)

// EnvSealPassphrase names the environment variable holding the passphrase
// for guard.sealed_secret_file.
const EnvSealPassphrase = "FORMSEAL_SEAL_PASSPHRASE"

// ResolveSecret loads the guard secret from the configured source.
//
// Leading and trailing whitespace is stripped, so a trailing newline in a
// secret file does not change the token keys.
func ResolveSecret(guard *GuardSection) (string, error) {
	switch {
	case guard.Secret != "":
		return strings.TrimSpace(guard.Secret), nil

	case guard.SecretFile != "":
		data, err := os.ReadFile(guard.SecretFile)
		if err != nil {
			return "", fmt.Errorf("read guard.secret_file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil

	case guard.SealedSecretFile != "":
		passphrase := os.Getenv(EnvSealPassphrase)
		if passphrase == "" {
			return "", errors.New(EnvSealPassphrase + " is required for guard.sealed_secret_file")
		}
		plaintext, err := secretfile.Open(guard.SealedSecretFile, []byte(passphrase))
		if err != nil {
			return "", fmt.Errorf("open guard.sealed_secret_file: %w", err)
		}
		return strings.TrimSpace(string(plaintext)), nil

	default:
		return "", errors.New("guard secret is not configured")
	}
}

// ToGuardConfig converts the guard section to a csrf.Config, resolving the
// secret from its configured source.
func ToGuardConfig(guard *GuardSection, clock func() time.Time) (csrf.Config, error) {
	secret, err := ResolveSecret(guard)
	if err != nil {
		return csrf.Config{}, err
	}

	return csrf.Config{
		Secret:     secret,
		TokenField: guard.TokenField,
		TimeField:  guard.TimeField,
		TTL:        guard.TTL,
		Clock:      clock,
	}, nil
}
