package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type revocationsRepo struct {
	q *queries
}

func scanRevocation(row rowScanner) (domain.RevokedLink, error) {
	var (
		r                    domain.RevokedLink
		expiresAt, revokedAt int64
	)
	if err := row.Scan(&r.JTI, &r.ResourceID, &expiresAt, &revokedAt, &r.Reason); err != nil {
		return domain.RevokedLink{}, err
	}
	r.ExpiresAt = fromUnix(expiresAt)
	r.RevokedAt = fromUnix(revokedAt)
	return r, nil
}

func (r *revocationsRepo) CreateRevocation(ctx context.Context, rl domain.RevokedLink) error {
	result, err := r.q.db.ExecContext(ctx, createRevocation,
		rl.JTI,
		rl.ResourceID,
		toUnix(rl.ExpiresAt),
		toUnix(rl.RevokedAt),
		rl.Reason,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *revocationsRepo) GetRevocation(ctx context.Context, jti string) (domain.RevokedLink, error) {
	rl, err := scanRevocation(r.q.db.QueryRowContext(ctx, getRevocation, jti))
	if err != nil {
		return domain.RevokedLink{}, mapNotFound(err)
	}
	return rl, nil
}

func (r *revocationsRepo) ListLiveRevocations(ctx context.Context, now time.Time) ([]domain.RevokedLink, error) {
	rows, err := r.q.db.QueryContext(ctx, listLiveRevocations, toUnix(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RevokedLink
	for rows.Next() {
		rl, err := scanRevocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rl)
	}
	return out, rows.Err()
}

func (r *revocationsRepo) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.q.db.ExecContext(ctx, deleteExpiredRevocations, toUnix(now))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
