package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type ResourcesHandler struct {
	CatalogService *service.CatalogService
}

// ServeHTTP godoc
//
//	@Summary		List Resources
//	@Description	Lists the catalog. Download locations and tokens are never included.
//	@Tags			Downloads
//	@Produce		json
//	@Success		200	{object}	foliosdk.ResourceListResponse	"resources"
//	@Router			/api/resources [get].
func (h *ResourcesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := h.CatalogService.List()

	out := make([]foliosdk.ResourceSummary, 0, c.Len())
	for _, res := range c.Resources() {
		s := foliosdk.ResourceSummary{
			ID:          res.ID,
			Name:        res.Name,
			Description: res.Description,
		}
		if d, ok := c.Download(res.ID); ok {
			s.FileName = d.FileName
			s.FileSize = d.FileSize
			s.Version = d.Version
			s.Checksum = d.Checksum
			s.Downloadable = true
		}
		out = append(out, s)
	}

	httpx.WriteJSON(w, http.StatusOK, foliosdk.ResourceListResponse{Resources: out})
}
