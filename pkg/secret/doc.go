// Package secret provides signing-secret generation and derivation
// utilities.
//
// Secret Format:
//
//   - Generated secrets: Base64 RawURL encoded random bytes,
//     64 characters at the default entropy
//   - Derived secrets: Base64 RawURL encoded Argon2id output,
//     43 characters
//   - Fingerprints: 64 characters of hex-encoded SHA-256
//
// Security:
//
//   - Uses crypto/rand for CSPRNG
//   - Argon2id for passphrase derivation (t=3, m=64MiB, p=4)
//   - Fingerprints allow comparing deployed secrets without
//     revealing them
//
// @design DS-0301
package secret
