package httpx

import "context"

type ctxKey string

const (
	// CtxKeyPrincipal holds the name of the authenticated admin caller.
	CtxKeyPrincipal ctxKey = "principal"
)

// PrincipalFromCtx returns the authenticated principal, or "" when the
// request went through no authenticator.
func PrincipalFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyPrincipal).(string); ok {
		return v
	}
	return ""
}

func contextWithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, CtxKeyPrincipal, principal)
}
