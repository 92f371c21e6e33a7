package controller

import (
	"net/http"

	"go.uber.org/zap"

	"cart-pricing/service"
)

// CatalogController handles HTTP requests for the catalog
type CatalogController struct {
	service service.CatalogServiceInterface
	logger  *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc service.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{service: svc, logger: logger}
}

// GetCatalog handles GET /catalog
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.Overview(r.Context())
	if err != nil {
		writeError(w, c.logger, "load catalog", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, resp)
}
