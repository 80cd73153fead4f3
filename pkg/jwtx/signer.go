package jwtx

// Signer is our interface for anything that can sign link tokens.
type Signer interface {
	Alg() string
	KID() string
	Sign(LinkClaims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from a raw HMAC key. The key should
// already be derived from the configured secret (see cryptox.DeriveKey).
func NewSignerHS256(kid string, key []byte) (Signer, error) {
	return newHS256Signer(kid, key)
}
