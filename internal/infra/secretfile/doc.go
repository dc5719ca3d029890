// Package secretfile stores guard secrets encrypted at rest.
//
// A sealed file carries a small binary header followed by an AEAD blob:
//
//	magic "FSSEALED" | version | cipher ID | salt(16) | nonce || ciphertext
//
// The encryption key is derived from an operator passphrase with Argon2id
// (pkg/secret). The cipher is chosen by hardware: AES-GCM where AES
// instructions are available, ChaCha20-Poly1305 otherwise. The header is
// authenticated as AEAD additional data.
//
// @design DS-0503
package secretfile
