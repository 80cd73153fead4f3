package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeySize is the smallest HMAC key we will sign with (256 bits).
const MinKeySize = 32

// ErrNoKey is returned when a signer or key set has no usable key material.
var ErrNoKey = errors.New("jwtx: key not found")

// HS256Signer implements the Signer interface using HMAC-SHA256.
type HS256Signer struct {
	kid string
	key []byte
	alg string
}

func newHS256Signer(kid string, key []byte) (*HS256Signer, error) {
	if len(key) == 0 {
		return nil, ErrNoKey
	}

	s := &HS256Signer{
		kid: kid,
		key: append([]byte(nil), key...),
		alg: jwt.SigningMethodHS256.Alg(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return s.alg }
func (s *HS256Signer) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims LinkClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Validate does a quick sanity check to make sure we actually have a key.
func (s *HS256Signer) Validate() error {
	if s.kid == "" {
		return errors.New("jwtx: missing kid")
	}
	if len(s.key) < MinKeySize {
		return errors.New("jwtx: HS256 key shorter than 256 bits")
	}
	return nil
}
