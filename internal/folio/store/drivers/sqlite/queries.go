package sqlite

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db DBTX
}

func newQueries(db DBTX) *queries {
	return &queries{db: db}
}

const (
	listResources = `
SELECT id, name, description, created_at, updated_at
FROM resources
ORDER BY created_at, rowid`

	getResource = `
SELECT id, name, description, created_at, updated_at
FROM resources
WHERE id = ?`

	upsertResource = `
INSERT INTO resources (id, name, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name        = excluded.name,
    description = excluded.description,
    updated_at  = excluded.updated_at`

	deleteResource = `DELETE FROM resources WHERE id = ?`

	listDownloads = `
SELECT d.resource_id, d.file_name, d.file_size, d.version, d.checksum, d.location, d.updated_at
FROM downloads d
JOIN resources r ON r.id = d.resource_id
ORDER BY r.created_at, r.rowid`

	getDownload = `
SELECT resource_id, file_name, file_size, version, checksum, location, updated_at
FROM downloads
WHERE resource_id = ?`

	upsertDownload = `
INSERT INTO downloads (resource_id, file_name, file_size, version, checksum, location, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (resource_id) DO UPDATE SET
    file_name  = excluded.file_name,
    file_size  = excluded.file_size,
    version    = excluded.version,
    checksum   = excluded.checksum,
    location   = excluded.location,
    updated_at = excluded.updated_at`

	deleteDownload = `DELETE FROM downloads WHERE resource_id = ?`

	createRevocation = `
INSERT INTO revoked_links (jti, resource_id, expires_at, revoked_at, reason)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (jti) DO NOTHING`

	getRevocation = `
SELECT jti, resource_id, expires_at, revoked_at, reason
FROM revoked_links
WHERE jti = ?`

	listLiveRevocations = `
SELECT jti, resource_id, expires_at, revoked_at, reason
FROM revoked_links
WHERE expires_at > ?
ORDER BY expires_at`

	deleteExpiredRevocations = `DELETE FROM revoked_links WHERE expires_at <= ?`
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
