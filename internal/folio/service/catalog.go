package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// CatalogService keeps the in-memory catalog in step with the store. Every
// write goes to the store first and is then published as a new snapshot.
type CatalogService struct {
	Store  store.Store
	Holder *catalog.Holder

	now func() time.Time
}

func NewCatalogService(st store.Store, holder *catalog.Holder) *CatalogService {
	return &CatalogService{Store: st, Holder: holder, now: time.Now}
}

// List returns the current snapshot.
func (s *CatalogService) List() *catalog.Catalog {
	return s.Holder.Load()
}

// Reload rebuilds the snapshot from the store and swaps it in.
func (s *CatalogService) Reload(ctx context.Context) (*catalog.Catalog, error) {
	resources, err := s.Store.Resources().ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	downloads, err := s.Store.Downloads().ListDownloads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}

	c, err := catalog.New(resources, downloads)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	s.Holder.Store(c)
	catalogResources.Set(float64(c.Len()))

	slogx.FromContext(ctx).Debug("catalog reloaded", slog.Int("resources", c.Len()))
	return c, nil
}

// Seed makes the store match the given catalog in one transaction and
// reloads. Entries the catalog no longer names are deleted, so links issued
// for them stop resolving after a restart.
func (s *CatalogService) Seed(ctx context.Context, resources []domain.Resource, downloads []domain.Download) error {
	want, err := catalog.New(resources, downloads)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResource, err)
	}
	for _, r := range want.Resources() {
		var dl *domain.Download
		if d, ok := want.Download(r.ID); ok {
			dl = &d
		}
		if err := validateEntry(r, dl); err != nil {
			return fmt.Errorf("resource %q: %w", r.ID, err)
		}
	}

	now := s.now().UTC()
	var removed int
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		removed = 0
		existing, err := tx.Resources().ListResources(ctx)
		if err != nil {
			return fmt.Errorf("list resources: %w", err)
		}
		for _, r := range existing {
			if _, ok := want.Resource(r.ID); ok {
				continue
			}
			if err := tx.Resources().DeleteResource(ctx, r.ID); err != nil {
				return fmt.Errorf("delete resource %q: %w", r.ID, err)
			}
			removed++
		}

		for _, r := range want.Resources() {
			if r.CreatedAt.IsZero() {
				r.CreatedAt = now
			}
			r.UpdatedAt = now
			if err := tx.Resources().UpsertResource(ctx, r); err != nil {
				return fmt.Errorf("upsert resource %q: %w", r.ID, err)
			}
			if _, ok := want.Download(r.ID); ok {
				continue
			}
			if err := tx.Downloads().DeleteDownload(ctx, r.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("delete download %q: %w", r.ID, err)
			}
		}
		for _, d := range want.Downloads() {
			d.UpdatedAt = now
			if err := tx.Downloads().UpsertDownload(ctx, d); err != nil {
				return fmt.Errorf("upsert download %q: %w", d.ResourceID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("catalog seeded",
		slog.Int("resources", want.Len()),
		slog.Int("removed", removed),
	)
	_, err = s.Reload(ctx)
	return err
}

// Put creates or replaces a resource. A nil download removes any download
// the resource had, leaving it listed but not linkable.
func (s *CatalogService) Put(ctx context.Context, r domain.Resource, d *domain.Download) error {
	if err := validateEntry(r, d); err != nil {
		return err
	}

	now := s.now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Resources().UpsertResource(ctx, r); err != nil {
			return fmt.Errorf("upsert resource: %w", err)
		}
		if d == nil {
			err := tx.Downloads().DeleteDownload(ctx, r.ID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("delete download: %w", err)
			}
			return nil
		}

		dl := *d
		dl.ResourceID = r.ID
		dl.UpdatedAt = now
		if err := tx.Downloads().UpsertDownload(ctx, dl); err != nil {
			return fmt.Errorf("upsert download: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("catalog entry saved",
		slog.String("resource_id", r.ID),
		slog.Bool("downloadable", d != nil),
	)
	_, err = s.Reload(ctx)
	return err
}

// Delete removes a resource and its download. Links already issued for it
// stop resolving.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Resources().DeleteResource(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete resource: %w", err)
	}

	slogx.FromContext(ctx).Info("catalog entry deleted", slog.String("resource_id", id))
	_, err := s.Reload(ctx)
	return err
}

func validateEntry(r domain.Resource, d *domain.Download) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidResource)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidResource)
	}
	if d == nil {
		return nil
	}
	if d.FileName == "" {
		return fmt.Errorf("%w: fileName is required with a location", ErrInvalidResource)
	}

	u, err := url.Parse(d.Location)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: location must be an absolute http(s) URL", ErrInvalidResource)
	}
	return nil
}
