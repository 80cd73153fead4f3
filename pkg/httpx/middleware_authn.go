package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// HeaderOTP carries a one-time code alongside the bearer credential.
const HeaderOTP = "X-OTP"

// Authenticator checks a bearer credential and an optional one-time code and
// returns the name of the caller they belong to.
type Authenticator interface {
	Authenticate(ctx context.Context, credential, otp string) (string, error)
}

// AuthnMiddleware rejects requests whose bearer credential a does not accept.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			principal, err := a.Authenticate(ctx, raw, strings.TrimSpace(r.Header.Get(HeaderOTP)))
			if err != nil {
				log.Warn("admin authentication failed", "err", err)
				writeBearerError(w, "credential rejected")
				return
			}

			ctx = contextWithPrincipal(ctx, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return raw, raw != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
