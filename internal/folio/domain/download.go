package domain

import "time"

// Download is the download metadata for a Resource. A Resource without a
// Download is listed but cannot be linked to.
type Download struct {
	ResourceID string
	FileName   string
	FileSize   string // human label, e.g. "11.3MB"
	Version    string
	Checksum   string // algorithm prefixed, e.g. "sha256:..."
	Location   string // real, non-public retrieval URL
	UpdatedAt  time.Time
}

// DownloadTicket bundles a freshly signed link with the metadata a page needs
// to render a download button.
type DownloadTicket struct {
	URL       string
	Name      string
	FileName  string
	FileSize  string
	Version   string
	Checksum  string
	ExpiresAt time.Time
}
