package service

import "errors"

var (
	// ErrConfiguration means the service was built without something it
	// cannot run without, such as a signing secret.
	ErrConfiguration = errors.New("configuration error")

	ErrMissingToken     = errors.New("missing_token")
	ErrInvalidToken     = errors.New("invalid_token")
	ErrResourceNotFound = errors.New("download_not_found")

	// ErrNotFound is returned by RequestDownload when the id has no complete
	// catalog entry.
	ErrNotFound = errors.New("cheat not found")

	ErrInvalidResource   = errors.New("invalid_resource")
	ErrAdminUnauthorized = errors.New("admin_unauthorized")
	ErrAlreadyRevoked    = errors.New("already_revoked")
)
