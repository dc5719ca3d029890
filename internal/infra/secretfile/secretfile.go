package secretfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/yndnr/formseal-go/pkg/secret"
)

// Magic bytes identify sealed secret files.
var magicBytes = []byte("FSSEALED")

const fileVersion = 1

var (
	ErrInvalidMagic       = errors.New("secretfile: invalid magic bytes")
	ErrUnsupportedVersion = errors.New("secretfile: unsupported file version")
	ErrUnknownCipher      = errors.New("secretfile: unknown cipher")
	ErrTruncated          = errors.New("secretfile: file truncated")
	ErrDecryptFailed      = errors.New("secretfile: decryption failed - wrong passphrase or corrupted data")
)

// headerLen is magic + version byte + cipher ID byte + salt.
func headerLen() int {
	return len(magicBytes) + 2 + secret.SaltLength
}

// Seal encrypts plaintext under a key derived from the passphrase and
// writes the sealed file at path with mode 0600. An existing file at path
// is replaced atomically.
func Seal(path string, plaintext, passphrase []byte) error {
	data, err := encode(plaintext, passphrase)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// Open reads a sealed file and decrypts it with the passphrase-derived key.
func Open(path string, passphrase []byte) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("secretfile: read %s: %w", path, err)
	}
	return decode(data, passphrase)
}

func encode(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := secret.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("secretfile: salt: %w", err)
	}

	key, err := secret.KeyFromPassphrase(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer secret.Zero(key)

	aead, cipherID, err := newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secretfile: cipher: %w", err)
	}

	header := make([]byte, 0, headerLen())
	header = append(header, magicBytes...)
	header = append(header, fileVersion, cipherID)
	header = append(header, salt...)

	// The header doubles as additional data, so a patched cipher ID or
	// salt fails authentication.
	blob, err := sealBlob(aead, plaintext, header)
	if err != nil {
		return nil, fmt.Errorf("secretfile: encrypt: %w", err)
	}

	return append(header, blob...), nil
}

func decode(data, passphrase []byte) ([]byte, error) {
	if len(data) < headerLen() {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:len(magicBytes)], magicBytes) {
		return nil, ErrInvalidMagic
	}

	version := data[len(magicBytes)]
	if version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	cipherID := data[len(magicBytes)+1]
	salt := data[len(magicBytes)+2 : headerLen()]

	key, err := secret.KeyFromPassphrase(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer secret.Zero(key)

	aead, err := cipherByID(cipherID, key)
	if err != nil {
		return nil, err
	}

	plaintext, err := openBlob(aead, data[headerLen():], data[:headerLen()])
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func writeAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("secretfile: create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("secretfile: write: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("secretfile: sync: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("secretfile: close: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("secretfile: rename: %w", err)
	}
	return nil
}
