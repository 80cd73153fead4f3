package sqlite

import (
	"context"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type resourcesRepo struct {
	q *queries
}

func scanResource(row rowScanner) (domain.Resource, error) {
	var (
		r                    domain.Resource
		createdAt, updatedAt int64
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &createdAt, &updatedAt); err != nil {
		return domain.Resource{}, err
	}
	r.CreatedAt = fromUnix(createdAt)
	r.UpdatedAt = fromUnix(updatedAt)
	return r, nil
}

func (r *resourcesRepo) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.q.db.QueryContext(ctx, listResources)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resourcesRepo) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	res, err := scanResource(r.q.db.QueryRowContext(ctx, getResource, id))
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	return res, nil
}

func (r *resourcesRepo) UpsertResource(ctx context.Context, res domain.Resource) error {
	_, err := r.q.db.ExecContext(ctx, upsertResource,
		res.ID,
		res.Name,
		res.Description,
		toUnix(res.CreatedAt),
		toUnix(res.UpdatedAt),
	)
	return err
}

func (r *resourcesRepo) DeleteResource(ctx context.Context, id string) error {
	result, err := r.q.db.ExecContext(ctx, deleteResource, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
