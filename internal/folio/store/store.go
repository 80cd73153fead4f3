package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories, which keeps callers from opening a
// transaction inside a transaction.
type Store interface {
	Resources() Resources
	Downloads() Downloads
	Revocations() Revocations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Use the tx passed to fn, not the outer store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Resources interface {
	// ListResources returns every resource in insertion order.
	ListResources(ctx context.Context) ([]domain.Resource, error)

	// GetResource fetches one resource by id.
	GetResource(ctx context.Context, id string) (domain.Resource, error)

	// UpsertResource inserts or replaces a resource, keeping created_at on
	// replace.
	UpsertResource(ctx context.Context, r domain.Resource) error

	// DeleteResource removes a resource and (by cascade) its download.
	DeleteResource(ctx context.Context, id string) error
}

type Downloads interface {
	ListDownloads(ctx context.Context) ([]domain.Download, error)
	GetDownload(ctx context.Context, resourceID string) (domain.Download, error)

	// UpsertDownload inserts or replaces the download for a resource. The
	// resource must exist.
	UpsertDownload(ctx context.Context, d domain.Download) error

	DeleteDownload(ctx context.Context, resourceID string) error
}

type Revocations interface {
	// CreateRevocation records a revoked link. Returns ErrAlreadyExists if
	// the jti was already revoked.
	CreateRevocation(ctx context.Context, r domain.RevokedLink) error

	// GetRevocation fetches a revocation by token id.
	GetRevocation(ctx context.Context, jti string) (domain.RevokedLink, error)

	// ListLiveRevocations returns revocations whose token has not expired at now.
	ListLiveRevocations(ctx context.Context, now time.Time) ([]domain.RevokedLink, error)

	// DeleteExpiredRevocations is housekeeping; it returns how many rows went.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}
