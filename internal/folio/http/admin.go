package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// AdminHandler serves catalog maintenance and link revocation for the operator.
type AdminHandler struct {
	CatalogService    *service.CatalogService
	RevocationService *service.RevocationService
}

// HandleList godoc
//
//	@Summary		List Catalog (admin)
//	@Description	Lists every resource including its real download location.
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminAuth
//	@Param			X-OTP	header		string								false	"TOTP code when enabled"
//	@Success		200		{object}	foliosdk.AdminResourceListResponse	"resources"
//	@Failure		401		{object}	foliosdk.ErrorResponse				"error, error_description"
//	@Router			/v1/admin/resources [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	c := h.CatalogService.List()

	out := make([]foliosdk.AdminResource, 0, c.Len())
	for _, res := range c.Resources() {
		out = append(out, toAdminResource(c, res))
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.AdminResourceListResponse{Resources: out})
}

// HandlePut godoc
//
//	@Summary		Create or Replace Resource (admin)
//	@Description	Stores a resource and its download record. An empty location stores the resource without a download.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminAuth
//	@Param			id		path		string						true	"Resource id"
//	@Param			X-OTP	header		string						false	"TOTP code when enabled"
//	@Param			request	body		foliosdk.PutResourceRequest	true	"Resource"
//	@Success		200		{object}	foliosdk.AdminResource		"stored resource"
//	@Failure		400		{object}	foliosdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	foliosdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/resources/{id} [put].
func (h *AdminHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	var req foliosdk.PutResourceRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBody, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	res := domain.Resource{ID: id, Name: req.Name, Description: req.Description}

	var dl *domain.Download
	if req.Location != "" {
		dl = &domain.Download{
			ResourceID: id,
			FileName:   req.FileName,
			FileSize:   req.FileSize,
			Version:    req.Version,
			Checksum:   req.Checksum,
			Location:   req.Location,
		}
	}

	if err := h.CatalogService.Put(ctx, res, dl); err != nil {
		if errors.Is(err, service.ErrInvalidResource) {
			httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, err.Error())
			return
		}
		log.Error("failed to store resource", "resource_id", id, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "Failed to store resource")
		return
	}

	log.Info("resource stored", "resource_id", id, "downloadable", dl != nil, "principal", httpx.PrincipalFromCtx(ctx))

	c := h.CatalogService.List()
	stored, ok := c.Resource(id)
	if !ok {
		httpx.WriteError(w, http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "Resource missing after store")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdminResource(c, stored))
}

// HandleDelete godoc
//
//	@Summary		Delete Resource (admin)
//	@Description	Removes a resource and its download. Links already issued for it start answering 404.
//	@Tags			Admin
//	@Security		AdminAuth
//	@Param			id		path	string	true	"Resource id"
//	@Param			X-OTP	header	string	false	"TOTP code when enabled"
//	@Success		204
//	@Failure		401	{object}	foliosdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	foliosdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/resources/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.CatalogService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, foliosdk.ErrorCodeNotFound, "Resource not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete resource", "resource_id", id, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "Failed to delete resource")
		return
	}

	slogx.FromContext(ctx).Info("resource deleted", "resource_id", id, "principal", httpx.PrincipalFromCtx(ctx))

	w.WriteHeader(http.StatusNoContent)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Download Link (admin)
//	@Description	Blocks a still-valid link until it expires.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminAuth
//	@Param			X-OTP	header		string						false	"TOTP code when enabled"
//	@Param			request	body		foliosdk.RevokeLinkRequest	true	"Token and reason"
//	@Success		200		{object}	foliosdk.RevokeLinkResponse	"jti, resourceId, expiresAt, revokedAt"
//	@Failure		400		{object}	foliosdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	foliosdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	foliosdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/links/revoke [post].
func (h *AdminHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req foliosdk.RevokeLinkRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBody, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	rec, err := h.RevocationService.Revoke(ctx, req.Token, req.Reason)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingToken):
		httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, "token is required")
		return
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusBadRequest, foliosdk.ErrorCodeInvalidToken, "token is not a live download link")
		return
	case errors.Is(err, service.ErrAlreadyRevoked):
		httpx.WriteError(w, http.StatusConflict, foliosdk.ErrorCodeAlreadyRevoked, "link was already revoked")
		return
	default:
		slogx.FromContext(ctx).Error("failed to revoke link", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "Failed to revoke link")
		return
	}

	slogx.FromContext(ctx).Info("link revoked",
		"jti", rec.JTI,
		"resource_id", rec.ResourceID,
		"principal", httpx.PrincipalFromCtx(ctx),
	)

	httpx.WriteJSON(w, http.StatusOK, foliosdk.RevokeLinkResponse{
		JTI:        rec.JTI,
		ResourceID: rec.ResourceID,
		ExpiresAt:  rec.ExpiresAt,
		RevokedAt:  rec.RevokedAt,
	})
}

func toAdminResource(c *catalog.Catalog, res domain.Resource) foliosdk.AdminResource {
	out := foliosdk.AdminResource{
		ID:          res.ID,
		Name:        res.Name,
		Description: res.Description,
		UpdatedAt:   res.UpdatedAt,
	}
	if d, ok := c.Download(res.ID); ok {
		out.FileName = d.FileName
		out.FileSize = d.FileSize
		out.Version = d.Version
		out.Checksum = d.Checksum
		out.Location = d.Location
		if d.UpdatedAt.After(out.UpdatedAt) {
			out.UpdatedAt = d.UpdatedAt
		}
	}
	return out
}
