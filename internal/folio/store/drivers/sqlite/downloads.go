package sqlite

import (
	"context"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type downloadsRepo struct {
	q *queries
}

func scanDownload(row rowScanner) (domain.Download, error) {
	var (
		d         domain.Download
		updatedAt int64
	)
	err := row.Scan(&d.ResourceID, &d.FileName, &d.FileSize, &d.Version, &d.Checksum, &d.Location, &updatedAt)
	if err != nil {
		return domain.Download{}, err
	}
	d.UpdatedAt = fromUnix(updatedAt)
	return d, nil
}

func (r *downloadsRepo) ListDownloads(ctx context.Context) ([]domain.Download, error) {
	rows, err := r.q.db.QueryContext(ctx, listDownloads)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Download
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *downloadsRepo) GetDownload(ctx context.Context, resourceID string) (domain.Download, error) {
	d, err := scanDownload(r.q.db.QueryRowContext(ctx, getDownload, resourceID))
	if err != nil {
		return domain.Download{}, mapNotFound(err)
	}
	return d, nil
}

func (r *downloadsRepo) UpsertDownload(ctx context.Context, d domain.Download) error {
	_, err := r.q.db.ExecContext(ctx, upsertDownload,
		d.ResourceID,
		d.FileName,
		d.FileSize,
		d.Version,
		d.Checksum,
		d.Location,
		toUnix(d.UpdatedAt),
	)
	return err
}

func (r *downloadsRepo) DeleteDownload(ctx context.Context, resourceID string) error {
	result, err := r.q.db.ExecContext(ctx, deleteDownload, resourceID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
