// Package catalog holds the set of downloadable resources as an immutable,
// id-keyed snapshot. Lookups never take a lock; maintenance builds a new
// snapshot and swaps it into a Holder.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

var (
	ErrEmptyID         = errors.New("catalog: empty resource id")
	ErrDuplicateID     = errors.New("catalog: duplicate resource id")
	ErrMissingLocation = errors.New("catalog: download has no location")
	ErrOrphanDownload  = errors.New("catalog: download for unknown resource")
)

// Catalog is a read-only snapshot. The zero value is not usable; call New or
// Empty.
type Catalog struct {
	resources map[string]domain.Resource
	downloads map[string]domain.Download
	order     []string
}

// Empty returns a catalog with no entries.
func Empty() *Catalog {
	c, _ := New(nil, nil)
	return c
}

// New builds a snapshot. Every id must be unique and non-empty, and every
// download must belong to a resource and name a location.
func New(resources []domain.Resource, downloads []domain.Download) (*Catalog, error) {
	c := &Catalog{
		resources: make(map[string]domain.Resource, len(resources)),
		downloads: make(map[string]domain.Download, len(downloads)),
		order:     make([]string, 0, len(resources)),
	}

	for _, r := range resources {
		if r.ID == "" {
			return nil, ErrEmptyID
		}
		if _, dup := c.resources[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		c.resources[r.ID] = r
		c.order = append(c.order, r.ID)
	}

	for _, d := range downloads {
		if d.ResourceID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := c.resources[d.ResourceID]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrOrphanDownload, d.ResourceID)
		}
		if _, dup := c.downloads[d.ResourceID]; dup {
			return nil, fmt.Errorf("%w: download %q", ErrDuplicateID, d.ResourceID)
		}
		if d.Location == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingLocation, d.ResourceID)
		}
		c.downloads[d.ResourceID] = d
	}

	return c, nil
}

// Resource looks up a resource by exact id.
func (c *Catalog) Resource(id string) (domain.Resource, bool) {
	r, ok := c.resources[id]
	return r, ok
}

// Download looks up the download metadata for a resource id.
func (c *Catalog) Download(id string) (domain.Download, bool) {
	d, ok := c.downloads[id]
	return d, ok
}

// Entry returns the resource and its download. ok is false unless both exist.
func (c *Catalog) Entry(id string) (domain.Resource, domain.Download, bool) {
	r, ok := c.resources[id]
	if !ok {
		return domain.Resource{}, domain.Download{}, false
	}
	d, ok := c.downloads[id]
	if !ok {
		return domain.Resource{}, domain.Download{}, false
	}
	return r, d, true
}

// Resources returns every resource in the order they were added.
func (c *Catalog) Resources() []domain.Resource {
	out := make([]domain.Resource, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.resources[id])
	}
	return out
}

// Downloads returns every download in resource order.
func (c *Catalog) Downloads() []domain.Download {
	out := make([]domain.Download, 0, len(c.downloads))
	for _, id := range c.order {
		if d, ok := c.downloads[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// IDs returns the resource ids in order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Len returns the number of resources.
func (c *Catalog) Len() int { return len(c.order) }
