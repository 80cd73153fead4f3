package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultRevocationCacheSize is used when NewRevocationService gets size <= 0.
const DefaultRevocationCacheSize = 10_000

// RevocationService records operator revoked links and answers whether a
// token id was revoked. Lookups are served from memory; the store is only
// read once the cache has had to drop a revocation that is still live.
type RevocationService struct {
	Store    store.Store
	Verifier jwtx.Verifier

	cache    *expirable.LRU[string, time.Time] // jti -> token expiry
	overflow atomic.Bool
	now      func() time.Time
}

// NewRevocationService creates the service. ttl should be the link TTL so a
// cached revocation never outlives the token it blocks by much.
func NewRevocationService(st store.Store, verifier jwtx.Verifier, size int, ttl time.Duration) *RevocationService {
	if size <= 0 {
		size = DefaultRevocationCacheSize
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultLinkTTL
	}

	s := &RevocationService{
		Store:    st,
		Verifier: verifier,
		now:      time.Now,
	}
	s.cache = expirable.NewLRU(size, s.onEvict, ttl)
	return s
}

// onEvict runs under the cache lock; it must not touch the cache.
func (s *RevocationService) onEvict(_ string, expiresAt time.Time) {
	if s.now().Before(expiresAt) {
		s.overflow.Store(true)
	}
}

// Warm loads every live revocation from the store into the cache.
func (s *RevocationService) Warm(ctx context.Context) (int, error) {
	live, err := s.Store.Revocations().ListLiveRevocations(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("list live revocations: %w", err)
	}
	for _, r := range live {
		s.cache.Add(r.JTI, r.ExpiresAt)
	}
	return len(live), nil
}

// IsRevoked implements RevocationChecker.
func (s *RevocationService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if _, ok := s.cache.Get(jti); ok {
		revocationLookupsTotal.WithLabelValues("cache").Inc()
		return true, nil
	}
	if !s.overflow.Load() {
		revocationLookupsTotal.WithLabelValues("skip").Inc()
		return false, nil
	}

	revocationLookupsTotal.WithLabelValues("store").Inc()
	r, err := s.Store.Revocations().GetRevocation(ctx, jti)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get revocation: %w", err)
	}
	s.cache.Add(r.JTI, r.ExpiresAt)
	return true, nil
}

// Revoke blocks a currently valid link until it expires.
func (s *RevocationService) Revoke(ctx context.Context, token, reason string) (domain.RevokedLink, error) {
	l := slogx.FromContext(ctx)

	if token == "" {
		return domain.RevokedLink{}, ErrMissingToken
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		l.Info("revoke rejected",
			slog.String("token_fp", cryptox.FingerprintToken(token)),
			slog.Any("error", err),
		)
		return domain.RevokedLink{}, ErrInvalidToken
	}

	now := s.now().UTC()
	rec := domain.RevokedLink{
		JTI:        claims.ID,
		ResourceID: claims.ResourceID,
		ExpiresAt:  now.Add(jwtx.DefaultLinkTTL),
		RevokedAt:  now,
		Reason:     reason,
	}
	if claims.ExpiresAt != nil {
		rec.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	if err := s.Store.Revocations().CreateRevocation(ctx, rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.RevokedLink{}, ErrAlreadyRevoked
		}
		return domain.RevokedLink{}, fmt.Errorf("create revocation: %w", err)
	}
	s.cache.Add(rec.JTI, rec.ExpiresAt)

	linkRevocationsTotal.Inc()
	l.Info("download link revoked",
		slog.String("jti", rec.JTI),
		slog.String("resource_id", rec.ResourceID),
		slog.Time("expires_at", rec.ExpiresAt),
	)
	return rec, nil
}
