// Package http provides http transport for the importer
package http

import (
	stdhttp "net/http"

	"boardstore/internal/modkit/httpkit"
	"boardstore/internal/services/importer/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSONResponse[domain.ImportInput](r, "/import", h.importProduct)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /products/import Products importProduct
// @Summary Import or refresh one product from the remote catalog
// @Tags products
// @Accept json
// @Produce json
// @Param payload body domain.ImportInput true "Import"
// @Success 200 {object} domain.ImportResult "refreshed"
// @Success 201 {object} domain.ImportResult "created"
// @Failure 429 {object} httpkit.Envelope "throttled upstream"
// @Failure 503 {object} httpkit.Envelope "circuit open"
// @Router /products/import [post]
func (h *handlers) importProduct(r *stdhttp.Request, in domain.ImportInput) httpkit.Response {
	res, err := h.svc.Import(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	if res.Fresh {
		return httpkit.Created(res)
	}
	return httpkit.OK(res)
}
