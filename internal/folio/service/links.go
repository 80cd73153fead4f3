package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	// DownloadPath is where signed links are redeemed.
	DownloadPath = "/api/download"

	// DefaultIssuer is the iss claim used when none is configured.
	DefaultIssuer = "folio"

	// linkKeyInfo binds derived keys to download links.
	linkKeyInfo = "folio/download-link"
)

// RevocationChecker reports whether a token id was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LinkConfig holds everything a LinkService needs. Secrets are passed in by
// the caller; the service never reads the environment.
type LinkConfig struct {
	// Secret signs new links. Required.
	Secret []byte

	// PreviousSecrets still verify links but never sign new ones.
	PreviousSecrets [][]byte

	TTL           time.Duration
	Issuer        string
	PublicBaseURL string

	Catalog *catalog.Holder

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// LinkService issues and redeems signed download links.
type LinkService struct {
	signer      jwtx.Signer
	verifier    jwtx.Verifier
	keys        *jwtx.KeySet
	ttl         time.Duration
	issuer      string
	baseURL     string
	catalog     *catalog.Holder
	revocations RevocationChecker
	now         func() time.Time
}

// NewLinkService derives the signing and verification keys and returns a
// ready service. It fails with ErrConfiguration when there is no secret.
func NewLinkService(cfg LinkConfig) (*LinkService, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: no download link secret", ErrConfiguration)
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("%w: no catalog", ErrConfiguration)
	}

	s := &LinkService{
		ttl:     cfg.TTL,
		issuer:  cfg.Issuer,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		catalog: cfg.Catalog,
		now:     cfg.Now,
	}
	if s.ttl <= 0 {
		s.ttl = jwtx.DefaultLinkTTL
	}
	if s.issuer == "" {
		s.issuer = DefaultIssuer
	}
	if s.now == nil {
		s.now = time.Now
	}

	keys := jwtx.NewKeySet()

	key, err := cryptox.DeriveKey(cfg.Secret, linkKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	kid := cryptox.KeyID(key)
	if s.signer, err = jwtx.NewSignerHS256(kid, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := keys.Add(kid, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	for _, prev := range cfg.PreviousSecrets {
		if len(prev) == 0 {
			continue
		}
		pk, err := cryptox.DeriveKey(prev, linkKeyInfo)
		if err != nil {
			return nil, fmt.Errorf("%w: previous secret: %w", ErrConfiguration, err)
		}
		pkid := cryptox.KeyID(pk)
		if pkid == kid {
			continue
		}
		if err := keys.Add(pkid, pk); err != nil {
			return nil, fmt.Errorf("%w: previous secret: %w", ErrConfiguration, err)
		}
	}

	s.keys = keys
	s.verifier = jwtx.NewVerifierHS256(keys, jwtx.VerifyOptions{
		Issuer:   s.issuer,
		Audience: []string{jwtx.AudienceDownload},
		Now:      s.now,
	})
	return s, nil
}

// WithRevocations returns a copy of the service that also rejects links c
// reports as revoked.
func (s *LinkService) WithRevocations(c RevocationChecker) *LinkService {
	cp := *s
	cp.revocations = c
	return &cp
}

// KID returns the key id new links are signed with.
func (s *LinkService) KID() string { return s.signer.KID() }

// KIDs returns every key id that verifies, current one included.
func (s *LinkService) KIDs() []string { return s.keys.KIDs() }

// TTL is how long a freshly issued link stays valid.
func (s *LinkService) TTL() time.Duration { return s.ttl }

// Ready reports whether links can be both verified and signed.
func (s *LinkService) Ready() error {
	if s.keys == nil || !s.keys.IsReady() {
		return fmt.Errorf("%w: no verification keys", ErrConfiguration)
	}
	return s.signer.Validate()
}

// Verify checks a token's signature and claims without looking at
// revocations.
func (s *LinkService) Verify(token string) (jwtx.LinkClaims, error) {
	return s.verifier.Verify(token)
}

// IssueToken signs a link to resourceID. It does not check the catalog.
func (s *LinkService) IssueToken(resourceID string) (string, error) {
	token, _, err := s.issue(resourceID)
	return token, err
}

func (s *LinkService) issue(resourceID string) (string, time.Time, error) {
	claims := jwtx.NewLinkClaims(resourceID, s.issuer, s.ttl, s.now().UTC())
	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign link: %w", err)
	}
	linksIssuedTotal.Inc()
	return token, claims.ExpiresAt.Time, nil
}

// Redeem validates token and returns the real location of the download it
// grants. It never changes any state.
func (s *LinkService) Redeem(ctx context.Context, token string) (string, error) {
	if token == "" {
		linkRedemptionsTotal.WithLabelValues(outcomeMissing).Inc()
		return "", ErrMissingToken
	}

	ctx = slogx.With(ctx, slog.String("token_fp", cryptox.FingerprintToken(token)))
	l := slogx.FromContext(ctx)

	claims, err := s.verifier.Verify(token)
	if err != nil {
		l.Info("download link rejected", slog.Any("error", err))
		linkRedemptionsTotal.WithLabelValues(outcomeInvalid).Inc()
		return "", ErrInvalidToken
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Can't prove the link is still good, so it isn't.
			l.Error("revocation check failed", slog.String("jti", claims.ID), slog.Any("error", err))
			linkRedemptionsTotal.WithLabelValues(outcomeInvalid).Inc()
			return "", ErrInvalidToken
		}
		if revoked {
			l.Info("revoked download link presented", slog.String("jti", claims.ID))
			linkRedemptionsTotal.WithLabelValues(outcomeInvalid).Inc()
			return "", ErrInvalidToken
		}
	}

	d, ok := s.catalog.Load().Download(claims.ResourceID)
	if !ok {
		l.Info("download link for missing resource", slog.String("resource_id", claims.ResourceID))
		linkRedemptionsTotal.WithLabelValues(outcomeNotFound).Inc()
		return "", ErrResourceNotFound
	}

	linkRedemptionsTotal.WithLabelValues(outcomeRedirect).Inc()
	l.Debug("download link redeemed",
		slog.String("resource_id", claims.ResourceID),
		slog.String("jti", claims.ID),
	)
	return d.Location, nil
}

// RequestDownload issues a link for id and bundles it with the download's
// metadata. Unknown ids, and resources without a download, get ErrNotFound
// and no token is signed.
func (s *LinkService) RequestDownload(ctx context.Context, id string) (domain.DownloadTicket, error) {
	r, d, ok := s.catalog.Load().Entry(id)
	if !ok {
		downloadRequestsTotal.WithLabelValues(outcomeNotFound).Inc()
		return domain.DownloadTicket{}, ErrNotFound
	}

	token, exp, err := s.issue(id)
	if err != nil {
		return domain.DownloadTicket{}, err
	}
	downloadRequestsTotal.WithLabelValues(outcomeIssued).Inc()

	slogx.FromContext(ctx).Info("download link issued",
		slog.String("resource_id", id),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
		slog.Time("expires_at", exp),
	)

	return domain.DownloadTicket{
		URL:       s.DownloadURL(token),
		Name:      r.Name,
		FileName:  d.FileName,
		FileSize:  d.FileSize,
		Version:   d.Version,
		Checksum:  d.Checksum,
		ExpiresAt: exp,
	}, nil
}

// DownloadURL builds the redemption URL for token. It is relative when no
// public base URL is configured.
func (s *LinkService) DownloadURL(token string) string {
	return s.baseURL + DownloadPath + "?token=" + url.QueryEscape(token)
}
