package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// Plain-text bodies written by the download endpoint.
const (
	msgUnauthorized     = "Unauthorized"
	msgInvalidToken     = "Invalid token"
	msgDownloadNotFound = "Download not found"
	msgInternalError    = "Internal Server Error"
)

type DownloadHandler struct {
	LinkService *service.LinkService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Download Link
//	@Description	Verifies a signed download link and redirects to the file.
//	@Description	Error bodies are plain text.
//	@Tags			Downloads
//	@Produce		plain
//	@Param			token	query		string	true	"Signed link token"
//	@Success		307		{string}	string	"Redirect to the file location"
//	@Failure		401		{string}	string	"Unauthorized | Invalid token"
//	@Failure		404		{string}	string	"Download not found"
//	@Router			/api/download [get].
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	location, err := h.LinkService.Redeem(ctx, r.URL.Query().Get("token"))
	switch {
	case err == nil:
		httpx.Redirect(w, r, location)
	case errors.Is(err, service.ErrMissingToken):
		httpx.WriteText(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteText(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, service.ErrResourceNotFound):
		httpx.WriteText(w, http.StatusNotFound, msgDownloadNotFound)
	default:
		slogx.FromContext(ctx).Error("failed to redeem download link", "error", err)
		httpx.WriteText(w, http.StatusInternalServerError, msgInternalError)
	}
}
