package domain

import (
	"github.com/allisson/whistleblower/internal/errors"
)

// Cryptographic failures. None of them wrap a client-facing sentinel, so the
// HTTP layer answers 500 with a generic body and the cause stays in the logs.
var (
	// ErrInvalidKey indicates a key that is not exactly 32 bytes.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrCorruptCiphertext indicates a stored value that cannot be parsed as an
	// encrypted field (bad JSON, missing member, bad hex, wrong IV or tag length).
	ErrCorruptCiphertext = errors.New("corrupt ciphertext")

	// ErrDecryptionFailed indicates an authentication tag mismatch: wrong key or
	// tampered data.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMasterKeyUnavailable indicates the master key is missing or malformed.
	ErrMasterKeyUnavailable = errors.New("master key unavailable")

	// ErrKeyNotFound indicates an organization without a stored key.
	ErrKeyNotFound = errors.New("organization key not found")
)
