package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testAdminToken = "test-admin-token"
	naniteURL      = "https://downloads.example.com/nanite/Nanite.zip"
)

type testEnv struct {
	router *Router
	links  *service.LinkService
}

var clientIP atomic.Int32

// nextIP gives each request its own address so the limiters only trip
// where a test wants them to.
func nextIP() string {
	n := clientIP.Add(1)
	return fmt.Sprintf("198.51.%d.%d", (n>>8)&0xff, n&0xff)
}

func newTestEnv(t *testing.T, adminToken string) *testEnv {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	holder := catalog.NewHolder(nil)
	catalogs := service.NewCatalogService(st, holder)

	f, err := catalog.Default()
	require.NoError(t, err)
	resources, downloads := f.Records()
	require.NoError(t, catalogs.Seed(ctx, resources, downloads))

	links, err := service.NewLinkService(service.LinkConfig{
		Secret:        []byte("router-test-secret"),
		PublicBaseURL: "https://folio.example.com",
		Catalog:       holder,
	})
	require.NoError(t, err)
	revocations := service.NewRevocationService(st, links, 0, links.TTL())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter("test", st, logger)
	r.LinkService = links.WithRevocations(revocations)
	r.CatalogService = catalogs
	r.RevocationService = revocations
	r.AdminGuard = service.NewAdminGuard(adminToken, "")
	r.ApplyRoutes()

	return &testEnv{router: r, links: links}
}

func (e *testEnv) do(t *testing.T, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	return e.doFrom(t, nextIP()+":40000", method, target, body, header)
}

func (e *testEnv) doFrom(t *testing.T, remoteAddr, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, rd)
	req.RemoteAddr = remoteAddr
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) admin(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, target, body, http.Header{
		"Authorization": {"Bearer " + testAdminToken},
	})
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// requestTicket asks for a link to id and returns the token inside it.
func (e *testEnv) requestTicket(t *testing.T, id string) (foliosdk.DownloadTicket, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/download-links", foliosdk.DownloadLinkRequest{ID: id}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ticket := decodeBody[foliosdk.DownloadTicket](t, rec)
	u, err := url.Parse(ticket.URL)
	require.NoError(t, err)
	return ticket, u.Query().Get("token")
}

func TestDownloadLinks(t *testing.T) {
	env := newTestEnv(t, "")

	ticket, token := env.requestTicket(t, "1")
	require.Equal(t, "Nanite", ticket.Name)
	require.Equal(t, "Nanite.zip", ticket.FileName)
	require.Equal(t, "11.3MB", ticket.FileSize)
	require.NotEmpty(t, token)
	require.True(t, strings.HasPrefix(ticket.URL, "https://folio.example.com/api/download?token="))
	require.WithinDuration(t, time.Now().Add(time.Hour), ticket.ExpiresAt, time.Minute)

	t.Run("unknown id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/download-links", foliosdk.DownloadLinkRequest{ID: "999"}, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		body := decodeBody[foliosdk.ErrorResponse](t, rec)
		require.Equal(t, foliosdk.ErrorCodeNotFound, body.Error)
		require.Equal(t, "Cheat not found", body.ErrorDescription)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/download-links", strings.NewReader(`{"id":`))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/download-links", strings.NewReader(`{"id":"1","extra":true}`))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/download-links", nil, nil)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestDownload_Redirect(t *testing.T) {
	env := newTestEnv(t, "")
	_, token := env.requestTicket(t, "1")

	rec := env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(token), nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, naniteURL, rec.Header().Get("Location"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	// Same link works again until it expires.
	rec = env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(token), nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestDownload_Errors(t *testing.T) {
	env := newTestEnv(t, "")

	orphan, err := env.links.IssueToken("999")
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		code   int
		body   string
	}{
		{"no token", "/api/download", http.StatusUnauthorized, "Unauthorized"},
		{"empty token", "/api/download?token=", http.StatusUnauthorized, "Unauthorized"},
		{"garbage token", "/api/download?token=abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"unknown resource", "/api/download?token=" + url.QueryEscape(orphan), http.StatusNotFound, "Download not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target, nil, nil)
			require.Equal(t, tt.code, rec.Code)
			require.Equal(t, tt.body, rec.Body.String())
			require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
			require.Empty(t, rec.Header().Get("Location"))
		})
	}
}

func TestResources(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/api/resources", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "downloads.example.com")

	list := decodeBody[foliosdk.ResourceListResponse](t, rec)
	require.Len(t, list.Resources, 1)
	require.Equal(t, "1", list.Resources[0].ID)
	require.True(t, list.Resources[0].Downloadable)
	require.Equal(t, "Nanite.zip", list.Resources[0].FileName)
}

func TestAdmin_DisabledWithoutToken(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/v1/admin/resources", nil, http.Header{
		"Authorization": {"Bearer anything"},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_RequiresToken(t *testing.T) {
	env := newTestEnv(t, testAdminToken)

	rec := env.do(t, http.MethodGet, "/v1/admin/resources", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	rec = env.do(t, http.MethodGet, "/v1/admin/resources", nil, http.Header{
		"Authorization": {"Bearer wrong"},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_RateLimited(t *testing.T) {
	env := newTestEnv(t, testAdminToken)
	header := http.Header{"Authorization": {"Bearer wrong"}}

	var last int
	for range 10 {
		last = env.doFrom(t, "203.0.113.77:40000", http.MethodGet, "/v1/admin/resources", nil, header).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestAdmin_RateLimitIgnoresForwardedFor(t *testing.T) {
	env := newTestEnv(t, testAdminToken)

	var last int
	for i := range 10 {
		last = env.doFrom(t, "203.0.113.78:40000", http.MethodGet, "/v1/admin/resources", nil, http.Header{
			"Authorization":   {"Bearer wrong"},
			"X-Forwarded-For": {fmt.Sprintf("192.0.2.%d", i+1)},
		}).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestAdmin_CatalogMaintenance(t *testing.T) {
	env := newTestEnv(t, testAdminToken)

	rec := env.admin(t, http.MethodPut, "/v1/admin/resources/2", foliosdk.PutResourceRequest{
		Name:     "Tool",
		FileName: "Tool.jar",
		FileSize: "2MB",
		Location: "https://downloads.example.com/tool/Tool.jar",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stored := decodeBody[foliosdk.AdminResource](t, rec)
	require.Equal(t, "2", stored.ID)
	require.Equal(t, "https://downloads.example.com/tool/Tool.jar", stored.Location)
	require.False(t, stored.UpdatedAt.IsZero())

	rec = env.admin(t, http.MethodGet, "/v1/admin/resources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[foliosdk.AdminResourceListResponse](t, rec)
	require.Len(t, list.Resources, 2)
	require.Equal(t, naniteURL, list.Resources[0].Location)

	// New entry is immediately linkable.
	_, token := env.requestTicket(t, "2")
	rec = env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(token), nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	rec = env.admin(t, http.MethodPut, "/v1/admin/resources/3", foliosdk.PutResourceRequest{
		Location: "https://downloads.example.com/x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.admin(t, http.MethodDelete, "/v1/admin/resources/2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Links issued before the delete stop resolving.
	rec = env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(token), nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Download not found", rec.Body.String())

	rec = env.admin(t, http.MethodDelete, "/v1/admin/resources/2", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_RevokeLink(t *testing.T) {
	env := newTestEnv(t, testAdminToken)
	_, token := env.requestTicket(t, "1")
	_, other := env.requestTicket(t, "1")

	rec := env.admin(t, http.MethodPost, "/v1/admin/links/revoke", foliosdk.RevokeLinkRequest{
		Token:  token,
		Reason: "shared publicly",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody[foliosdk.RevokeLinkResponse](t, rec)
	require.Equal(t, "1", out.ResourceID)
	require.NotEmpty(t, out.JTI)

	rec = env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(token), nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/download?token="+url.QueryEscape(other), nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	rec = env.admin(t, http.MethodPost, "/v1/admin/links/revoke", foliosdk.RevokeLinkRequest{Token: token})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.admin(t, http.MethodPost, "/v1/admin/links/revoke", foliosdk.RevokeLinkRequest{Token: "garbage"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, foliosdk.ErrorCodeInvalidToken, decodeBody[foliosdk.ErrorResponse](t, rec).Error)

	rec = env.admin(t, http.MethodPost, "/v1/admin/links/revoke", foliosdk.RevokeLinkRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/livez", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody[foliosdk.HealthResponse](t, rec).Status)

	rec = env.do(t, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decodeBody[foliosdk.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.Equal(t, "ok", ready.Checks.Catalog)
}

func TestMetricsAndRequestID(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, http.MethodGet, "/api/resources", nil, nil)

	rec := env.do(t, http.MethodGet, "/metrics", nil, http.Header{slogx.HeaderRequestID: {"abc123"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc123", rec.Header().Get(slogx.HeaderRequestID))
	require.Contains(t, rec.Body.String(), `folio_http_requests_total{method="GET",route="GET /api/resources",status="200"}`)
	require.Contains(t, rec.Body.String(), "folio_catalog_resources")
}
