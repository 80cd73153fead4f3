package foliosdk

import "time"

// ErrorResponse is the JSON error body written by every JSON endpoint.
type ErrorResponse struct {
	// Error is a short machine readable code, e.g. "not_found"
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Download Types
// ============================================================================

// DownloadLinkRequest asks for a fresh signed link to a resource.
type DownloadLinkRequest struct {
	ID string `json:"id"`
}

// DownloadTicket is returned from POST /api/download-links. URL embeds a
// signed token that redeems at GET /api/download until ExpiresAt.
type DownloadTicket struct {
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	FileName  string    `json:"fileName"`
	FileSize  string    `json:"fileSize"`
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResourceSummary is the public view of a catalog entry. It never includes
// the real download location.
type ResourceSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	FileSize     string `json:"fileSize,omitempty"`
	Version      string `json:"version,omitempty"`
	Checksum     string `json:"checksum,omitempty"`
	Downloadable bool   `json:"downloadable"`
}

// ResourceListResponse is returned from GET /api/resources.
type ResourceListResponse struct {
	Resources []ResourceSummary `json:"resources"`
}

// ============================================================================
// Admin Types
// ============================================================================

// AdminResource is the full catalog entry as seen by an operator.
type AdminResource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
	FileSize    string    `json:"fileSize,omitempty"`
	Version     string    `json:"version,omitempty"`
	Checksum    string    `json:"checksum,omitempty"`
	Location    string    `json:"location,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AdminResourceListResponse is returned from GET /v1/admin/resources.
type AdminResourceListResponse struct {
	Resources []AdminResource `json:"resources"`
}

// PutResourceRequest creates or replaces a resource and its download record.
// Leaving Location empty stores the resource without a download.
type PutResourceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	FileSize    string `json:"fileSize,omitempty"`
	Version     string `json:"version,omitempty"`
	Checksum    string `json:"checksum,omitempty"`
	Location    string `json:"location,omitempty"`
}

// RevokeLinkRequest revokes one issued link before it expires.
type RevokeLinkRequest struct {
	Token  string `json:"token"`
	Reason string `json:"reason,omitempty"`
}

// RevokeLinkResponse describes the revocation that was recorded.
type RevokeLinkResponse struct {
	JTI        string    `json:"jti"`
	ResourceID string    `json:"resourceId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	RevokedAt  time.Time `json:"revokedAt"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency /readyz looks at.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Catalog  string `json:"catalog"`
}
