package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates link tokens signed with HMAC-SHA256.
type HS256Verifier struct {
	keys *KeySet
	opts VerifyOptions
}

// NewVerifierHS256 creates a verifier over a KeySet of HMAC keys.
func NewVerifierHS256(keys *KeySet, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{keys: keys, opts: opts}
}

// Verify validates the JWT string and returns its parsed claims.
func (v *HS256Verifier) Verify(tokenStr string) (LinkClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.opts.now),
		jwt.WithLeeway(v.opts.Leeway),
	)

	claims := &LinkClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		// Need the kid to know which key to use
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
		}

		key, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrUnknownKID, kid, err)
		}
		return key, nil
	})
	if err != nil {
		return LinkClaims{}, mapParseError(err)
	}
	if !token.Valid {
		return LinkClaims{}, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return LinkClaims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return LinkClaims{}, err
	}
	if err := claims.ValidateExpiryAt(v.opts.now(), v.opts.Leeway); err != nil {
		return LinkClaims{}, err
	}
	if err := claims.ValidateResource(); err != nil {
		return LinkClaims{}, err
	}
	if err := claims.ValidateID(); err != nil {
		return LinkClaims{}, err
	}

	return *claims, nil
}

// mapParseError folds the parser's error zoo into our sentinels while keeping
// the original error in the chain.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return err
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrAlgMismatch, err)
	default:
		return fmt.Errorf("jwtx: parse or verify: %w", err)
	}
}
