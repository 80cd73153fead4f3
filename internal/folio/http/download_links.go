package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// maxRequestBody bounds every JSON request body.
const maxRequestBody = 16 << 10

type DownloadLinksHandler struct {
	LinkService *service.LinkService
}

// ServeHTTP godoc
//
//	@Summary		Request Download Link
//	@Description	Signs a fresh, time-limited link for a catalog entry and returns it with the file's metadata.
//	@Tags			Downloads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foliosdk.DownloadLinkRequest	true	"Resource id"
//	@Success		200		{object}	foliosdk.DownloadTicket			"url, name, fileName, fileSize, version, checksum, expiresAt"
//	@Failure		400		{object}	foliosdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	foliosdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	foliosdk.ErrorResponse			"error, error_description"
//	@Router			/api/download-links [post].
func (h *DownloadLinksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req foliosdk.DownloadLinkRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBody, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	ticket, err := h.LinkService.RequestDownload(ctx, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, foliosdk.ErrorCodeNotFound, "Cheat not found")
			return
		}
		log.Error("failed to issue download link", "resource_id", req.ID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "Failed to issue download link")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, foliosdk.DownloadTicket{
		URL:       ticket.URL,
		Name:      ticket.Name,
		FileName:  ticket.FileName,
		FileSize:  ticket.FileSize,
		Version:   ticket.Version,
		Checksum:  ticket.Checksum,
		ExpiresAt: ticket.ExpiresAt,
	})
}
