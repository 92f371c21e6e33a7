package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cart-pricing/models"
	"cart-pricing/service"
)

// CartController handles HTTP requests for carts and quotes
type CartController struct {
	service service.CartServiceInterface
	now     func() time.Time
	logger  *zap.Logger
}

// NewCartController creates a new CartController. A nil now uses time.Now.
func NewCartController(svc service.CartServiceInterface, now func() time.Time, logger *zap.Logger) *CartController {
	if now == nil {
		now = time.Now
	}
	return &CartController{service: svc, now: now, logger: logger}
}

// GetCart handles GET /carts/{cartID}
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.service.GetCart(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		writeError(w, c.logger, "load cart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, cart)
}

// SetLine handles PUT /carts/{cartID}/lines/{productID}
// Example request:
// PUT /carts/c1/lines/p1
// {"quantity": 3}
func (c *CartController) SetLine(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")

	var req models.SetLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.service.SetLine(r.Context(), cartID, productID, req.Quantity); err != nil {
		writeError(w, c.logger, "set cart line", err)
		return
	}

	cart, err := c.service.GetCart(r.Context(), cartID)
	if err != nil {
		writeError(w, c.logger, "load cart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, cart)
}

// RemoveLine handles DELETE /carts/{cartID}/lines/{productID}
func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	if err := c.service.RemoveLine(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID")); err != nil {
		writeError(w, c.logger, "remove cart line", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuoteCart handles GET /carts/{cartID}/quote?at=2025-01-07T10:00:00Z
func (c *CartController) QuoteCart(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r.URL.Query().Get("at"), c.now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.service.QuoteCart(r.Context(), chi.URLParam(r, "cartID"), at)
	if err != nil {
		writeError(w, c.logger, "quote cart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, resp)
}

// Quote handles POST /quote
// Example request:
// {"lines": [{"productId": "p1", "quantity": 12}], "at": "2025-01-07T10:00:00Z"}
func (c *CartController) Quote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	at, err := parseAt(req.At, c.now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.service.QuoteLines(r.Context(), req.Lines, at)
	if err != nil {
		writeError(w, c.logger, "quote cart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, resp)
}
