package folio_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/stretchr/testify/require"
)

func TestAdminCatalogMaintenance(t *testing.T) {
	baseURL, cleanup := setupFolioContainer(t)
	defer cleanup()

	client := foliosdk.NewClient(baseURL)
	admin := client.NewAdminSession(adminToken)
	ctx := t.Context()

	res, err := admin.PutResource(ctx, "42", foliosdk.PutResourceRequest{
		Name:     "Widget",
		FileName: "widget.tar.gz",
		FileSize: "2MB",
		Version:  "1.0.0",
		Location: "https://downloads.example.com/widget.tar.gz",
	})
	require.NoError(t, err)
	require.Equal(t, "42", res.ID)
	require.Equal(t, "https://downloads.example.com/widget.tar.gz", res.Location)

	list, err := admin.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ticket, err := client.RequestDownloadLink(ctx, "42")
	require.NoError(t, err)

	location, err := client.ResolveDownload(ctx, ticket.URL)
	require.NoError(t, err)
	require.Equal(t, "https://downloads.example.com/widget.tar.gz", location)

	require.NoError(t, admin.DeleteResource(ctx, "42"))

	// The link is still validly signed but has nothing to point at.
	_, err = client.ResolveDownload(ctx, ticket.URL)
	assertStatus(t, err, http.StatusNotFound, "deleted resource")

	err = admin.DeleteResource(ctx, "42")
	assertStatus(t, err, http.StatusNotFound, "second delete")
}

func TestAdminRejectsWrongToken(t *testing.T) {
	baseURL, cleanup := setupFolioContainer(t)
	defer cleanup()

	admin := foliosdk.NewClient(baseURL).NewAdminSession("wrong-token")

	_, err := admin.ListResources(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, "wrong admin token")
}

func TestRevokeLink(t *testing.T) {
	baseURL, cleanup := setupFolioContainer(t)
	defer cleanup()

	client := foliosdk.NewClient(baseURL)
	admin := client.NewAdminSession(adminToken)
	ctx := t.Context()

	ticket, err := client.RequestDownloadLink(ctx, naniteID)
	require.NoError(t, err)

	_, err = client.ResolveDownload(ctx, ticket.URL)
	require.NoError(t, err)

	revoked, err := admin.RevokeLink(ctx, ticket.URL, "leaked")
	require.NoError(t, err)
	require.Equal(t, naniteID, revoked.ResourceID)
	require.NotEmpty(t, revoked.JTI)

	_, err = client.ResolveDownload(ctx, ticket.URL)
	assertStatus(t, err, http.StatusUnauthorized, "revoked link")

	_, err = admin.RevokeLink(ctx, ticket.URL, "again")
	assertStatus(t, err, http.StatusConflict, "second revoke")

	// Other links for the same resource keep working.
	fresh, err := client.RequestDownloadLink(ctx, naniteID)
	require.NoError(t, err)
	_, err = client.ResolveDownload(ctx, fresh.URL)
	require.NoError(t, err)
}
