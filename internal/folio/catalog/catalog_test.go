package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/stretchr/testify/require"
)

func nanite() (domain.Resource, domain.Download) {
	return domain.Resource{ID: "1", Name: "Nanite"},
		domain.Download{ResourceID: "1", FileName: "Nanite.zip", FileSize: "11.3MB", Location: "https://files/nanite.zip"}
}

func TestNew(t *testing.T) {
	r, d := nanite()

	t.Run("lookups", func(t *testing.T) {
		c, err := catalog.New(
			[]domain.Resource{r, {ID: "2", Name: "Listed only"}},
			[]domain.Download{d},
		)
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())
		require.Equal(t, []string{"1", "2"}, c.IDs())

		got, ok := c.Resource("1")
		require.True(t, ok)
		require.Equal(t, "Nanite", got.Name)

		res, dl, ok := c.Entry("1")
		require.True(t, ok)
		require.Equal(t, "Nanite", res.Name)
		require.Equal(t, "Nanite.zip", dl.FileName)

		// Resource without download is listed but has no entry
		_, ok = c.Resource("2")
		require.True(t, ok)
		_, _, ok = c.Entry("2")
		require.False(t, ok)

		_, ok = c.Download("nonexistent-id")
		require.False(t, ok)
		require.Len(t, c.Downloads(), 1)
	})

	t.Run("exact id match only", func(t *testing.T) {
		c, err := catalog.New([]domain.Resource{r}, []domain.Download{d})
		require.NoError(t, err)

		_, ok := c.Resource(" 1")
		require.False(t, ok)
		_, ok = c.Resource("01")
		require.False(t, ok)
	})

	t.Run("duplicate resource", func(t *testing.T) {
		_, err := catalog.New([]domain.Resource{r, r}, nil)
		require.ErrorIs(t, err, catalog.ErrDuplicateID)
	})

	t.Run("duplicate download", func(t *testing.T) {
		_, err := catalog.New([]domain.Resource{r}, []domain.Download{d, d})
		require.ErrorIs(t, err, catalog.ErrDuplicateID)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := catalog.New([]domain.Resource{{Name: "nameless"}}, nil)
		require.ErrorIs(t, err, catalog.ErrEmptyID)
	})

	t.Run("orphan download", func(t *testing.T) {
		_, err := catalog.New(nil, []domain.Download{d})
		require.ErrorIs(t, err, catalog.ErrOrphanDownload)
	})

	t.Run("missing location", func(t *testing.T) {
		noLoc := d
		noLoc.Location = ""
		_, err := catalog.New([]domain.Resource{r}, []domain.Download{noLoc})
		require.ErrorIs(t, err, catalog.ErrMissingLocation)
	})
}

func TestHolder(t *testing.T) {
	h := catalog.NewHolder(nil)
	require.NotNil(t, h.Load())
	require.Equal(t, 0, h.Load().Len())

	r, d := nanite()
	c, err := catalog.New([]domain.Resource{r}, []domain.Download{d})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				_ = h.Load().Len()
			}
		})
	}
	h.Store(c)
	wg.Wait()

	require.Equal(t, 1, h.Load().Len())
}

func TestDefaultCatalog(t *testing.T) {
	f, err := catalog.Default()
	require.NoError(t, err)

	c, err := f.Build()
	require.NoError(t, err)

	res, dl, ok := c.Entry("1")
	require.True(t, ok)
	require.Equal(t, "Nanite", res.Name)
	require.Equal(t, "Nanite.zip", dl.FileName)
	require.Equal(t, "11.3MB", dl.FileSize)
	require.True(t, strings.HasPrefix(dl.Checksum, "sha256:"))
}

func TestParse(t *testing.T) {
	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := catalog.Parse(strings.NewReader("resources:\n  - id: \"1\"\n    nmae: typo\n"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := catalog.Parse(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, f.Resources)
	})

	t.Run("load from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
resources:
  - id: "7"
    name: Shader Pack
    download:
      fileName: shaders.zip
      fileSize: 2.1MB
      location: https://files/shaders.zip
  - id: "8"
    name: Coming soon
`), 0o600))

		f, err := catalog.LoadFile(path)
		require.NoError(t, err)

		resources, downloads := f.Records()
		require.Len(t, resources, 2)
		require.Len(t, downloads, 1)
		require.Equal(t, "7", downloads[0].ResourceID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
