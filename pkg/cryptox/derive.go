package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeySize is the length of keys produced by DeriveKey (256 bits).
const DerivedKeySize = 32

// kidLength is how many fingerprint characters make up a key id.
const kidLength = 12

// ErrEmptySecret is returned when there is no secret to derive from.
var ErrEmptySecret = errors.New("cryptox: empty secret")

// DeriveKey stretches an operator supplied secret into a fixed size key with
// HKDF-SHA256. The info string binds the key to one purpose so the same
// secret never produces the same key for two different uses.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, DerivedKeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}
	return key, nil
}

// KeyID returns a short public identifier for a derived key. It is stable for
// the same key and safe to put in a token header.
func KeyID(key []byte) string {
	return FingerprintToken(string(key))[:kidLength]
}
