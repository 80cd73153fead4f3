package folio_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitAdminEndpoint verifies the strict limit (5 req/min) on admin
// routes, failed guesses included.
func TestRateLimitAdminEndpoint(t *testing.T) {
	baseURL, cleanup := setupFolioContainerWithDefaultRateLimits(t)
	defer cleanup()

	admin := foliosdk.NewClient(baseURL).NewAdminSession("wrong-token")
	ctx := t.Context()

	for i := range 5 {
		_, err := admin.ListResources(ctx)
		assertStatus(t, err, http.StatusUnauthorized, "guess before the limit")
		require.False(t, isRateLimited(err), "request %d should not be rate limited", i+1)
	}

	_, err := admin.ListResources(ctx)
	assertStatus(t, err, http.StatusTooManyRequests, "sixth guess")
	require.True(t, isRateLimited(err))
}

func isRateLimited(err error) bool {
	var apiErr *foliosdk.APIError
	return errors.As(err, &apiErr) && apiErr.Code == foliosdk.ErrorCodeRateLimited
}
