package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-download-secret"
	naniteURL    = "https://downloads.example.com/nanite/Nanite.zip"
	testBaseURL  = "https://folio.example.com"
	testIssuedAt = "2026-03-01T12:00:00Z"
)

// clock is a settable time source shared by a test's services.
type clock struct{ t time.Time }

func newClock(t *testing.T) *clock {
	t.Helper()
	start, err := time.Parse(time.RFC3339, testIssuedAt)
	require.NoError(t, err)
	return &clock{t: start}
}

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// defaultHolder serves the catalog compiled into the binary.
func defaultHolder(t *testing.T) *catalog.Holder {
	t.Helper()

	f, err := catalog.Default()
	require.NoError(t, err)
	c, err := f.Build()
	require.NoError(t, err)
	return catalog.NewHolder(c)
}

func newLinks(t *testing.T, holder *catalog.Holder, clk *clock) *LinkService {
	t.Helper()

	links, err := NewLinkService(LinkConfig{
		Secret:        []byte(testSecret),
		PublicBaseURL: testBaseURL + "/",
		Catalog:       holder,
		Now:           clk.Now,
	})
	require.NoError(t, err)
	return links
}

// fakeRevocations is a RevocationChecker backed by a map.
type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func resourceOnly(id string) *catalog.Catalog {
	c, _ := catalog.New([]domain.Resource{{ID: id, Name: "Listed"}}, nil)
	return c
}
