package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// AdminPrincipal is the principal name admin requests run as.
const AdminPrincipal = "admin"

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// GenerateAdminTOTP creates a new TOTP key for ADMIN_TOTP_SECRET.
func GenerateAdminTOTP(issuer, account string) (*otp.Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP key: %w", err)
	}
	return key, nil
}

// AdminGuard checks the operator's bearer token and, when configured, a
// TOTP code.
type AdminGuard struct {
	Token      string
	TOTPSecret string

	now func() time.Time
}

func NewAdminGuard(token, totpSecret string) *AdminGuard {
	return &AdminGuard{Token: token, TOTPSecret: totpSecret, now: time.Now}
}

// Enabled reports whether admin access is configured at all.
func (g *AdminGuard) Enabled() bool { return g.Token != "" }

// Authenticate implements httpx.Authenticator.
func (g *AdminGuard) Authenticate(ctx context.Context, credential, otp string) (string, error) {
	l := slogx.FromContext(ctx)

	if !g.Enabled() || credential == "" || !cryptox.Equal(credential, g.Token) {
		l.Warn("admin authentication failed", slog.String("reason", "token"))
		return "", ErrAdminUnauthorized
	}

	if g.TOTPSecret != "" {
		if otp == "" {
			l.Warn("admin authentication failed", slog.String("reason", "otp_missing"))
			return "", ErrAdminUnauthorized
		}
		ok, err := totp.ValidateCustom(otp, g.TOTPSecret, g.now().UTC(), totpOpts)
		if err != nil || !ok {
			l.Warn("admin authentication failed", slog.String("reason", "otp"))
			return "", ErrAdminUnauthorized
		}
	}

	return AdminPrincipal, nil
}
