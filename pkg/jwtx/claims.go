package jwtx

import (
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultLinkTTL is how long a download link stays redeemable.
	DefaultLinkTTL = time.Hour

	// AudienceDownload is the audience every download link carries. It keeps
	// link tokens from being accepted anywhere else the same secret is used.
	AudienceDownload = "download"
)

// LinkClaims are the claims embedded in a signed download link.
type LinkClaims struct {
	jwt.RegisteredClaims

	// ResourceID is the catalog id the link grants access to.
	ResourceID string `json:"rid"`
}

// NewLinkClaims builds claims for a link to resourceID that expires ttl after now.
func NewLinkClaims(resourceID, issuer string, ttl time.Duration, now time.Time) LinkClaims {
	return LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{AudienceDownload},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		ResourceID: resourceID,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *LinkClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *LinkClaims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiryAt checks exp and nbf against an explicit point in time.
func (c *LinkClaims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	// A link is dead at its exp instant, not one second later.
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateResource rejects links that don't name a resource.
func (c *LinkClaims) ValidateResource() error {
	if c.ResourceID == "" {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateID requires a ULID jti. Revocation is keyed on it.
func (c *LinkClaims) ValidateID() error {
	if _, err := idx.Parse(c.ID); err != nil {
		return fmt.Errorf("%w: jti: %w", ErrInvalidClaim, err)
	}
	return nil
}
