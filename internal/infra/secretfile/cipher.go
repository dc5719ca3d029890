package secretfile

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher identifiers stored in the file header.
const (
	cipherAESGCM   byte = 0x01
	cipherChaCha20 byte = 0x02
)

// newCipher creates an AEAD for the key and returns the header ID of the
// chosen algorithm. amd64 and arm64 have AES instructions, so AES-GCM is
// used there; other architectures get ChaCha20-Poly1305.
func newCipher(key []byte) (cipher.AEAD, byte, error) {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		aead, err := newAESGCM(key)
		return aead, cipherAESGCM, err
	default:
		aead, err := newChaCha20(key)
		return aead, cipherChaCha20, err
	}
}

// cipherByID creates the AEAD named by a file header cipher ID.
func cipherByID(id byte, key []byte) (cipher.AEAD, error) {
	switch id {
	case cipherAESGCM:
		return newAESGCM(key)
	case cipherChaCha20:
		return newChaCha20(key)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownCipher, id)
	}
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func newChaCha20(key []byte) (cipher.AEAD, error) {
	return chacha20poly1305.New(key)
}

// sealBlob encrypts plaintext and prepends the random nonce to the result.
func sealBlob(aead cipher.AEAD, plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// openBlob decrypts a nonce-prefixed blob produced by sealBlob.
func openBlob(aead cipher.AEAD, blob, additionalData []byte) ([]byte, error) {
	if len(blob) < aead.NonceSize() {
		return nil, errors.New("secretfile: blob too short")
	}
	nonce := blob[:aead.NonceSize()]
	return aead.Open(nil, nonce, blob[aead.NonceSize():], additionalData)
}
