package domain

import "time"

// Resource is one entry in the download catalog as shown to visitors.
type Resource struct {
	ID          string // opaque, unique across the catalog
	Name        string // display name
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
