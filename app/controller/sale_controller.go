package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"cart-pricing/models"
	"cart-pricing/service"
)

// SaleController handles HTTP requests that trigger catalog sale events.
// Scheduling is up to the caller; each request applies at most one sale.
type SaleController struct {
	service service.CatalogServiceInterface
	logger  *zap.Logger
}

// NewSaleController creates a new SaleController
func NewSaleController(svc service.CatalogServiceInterface, logger *zap.Logger) *SaleController {
	return &SaleController{service: svc, logger: logger}
}

// Lightning handles POST /admin/sales/lightning
// Responds 204 when no product is eligible.
func (c *SaleController) Lightning(w http.ResponseWriter, r *http.Request) {
	product, ok, err := c.service.ApplyLightningSale(r.Context())
	c.respond(w, models.SaleLightning, product, ok, err)
}

// Suggestion handles POST /admin/sales/suggestion
// Example request:
// {"lastSelectedProductId": "p1"}
func (c *SaleController) Suggestion(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestionSaleRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	product, ok, err := c.service.ApplySuggestionSale(r.Context(), req.LastSelectedProductID)
	c.respond(w, models.SaleSuggestion, product, ok, err)
}

// Reset handles POST /admin/sales/reset
// Example request:
// {"productId": "p1"}
func (c *SaleController) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetSaleRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	n, err := c.service.ResetSales(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, c.logger, "reset sales", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, models.ResetSaleResponse{Reset: n})
}

func (c *SaleController) respond(w http.ResponseWriter, kind models.SaleKind, product models.Product, ok bool, err error) {
	if err != nil {
		writeError(w, c.logger, fmt.Sprintf("apply %s sale", kind), err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, models.SaleResponse{Kind: kind, Product: product})
}

// decodeOptional decodes a JSON body, treating an empty body as the zero value
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
