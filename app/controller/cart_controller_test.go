package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cart-pricing/models"
	"cart-pricing/repository"
)

var fixedNow = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func newCartRouter(svc *fakeCartService) http.Handler {
	c := NewCartController(svc, func() time.Time { return fixedNow }, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/carts/{cartID}", c.GetCart)
	r.Get("/carts/{cartID}/quote", c.QuoteCart)
	r.Put("/carts/{cartID}/lines/{productID}", c.SetLine)
	r.Delete("/carts/{cartID}/lines/{productID}", c.RemoveLine)
	r.Post("/quote", c.Quote)
	return r
}

func TestCartController_SetLine(t *testing.T) {
	svc := &fakeCartService{}
	h := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/carts/c1/lines/p1", strings.NewReader(`{"quantity": 3}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, "c1", cart.ID)
	assert.Equal(t, []models.CartLine{{ProductID: "p1", Quantity: 3}}, cart.Lines)
}

func TestCartController_SetLineErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"invalid quantity", `{"quantity": 0}`, repository.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown product", `{"quantity": 1}`, repository.ErrProductNotFound, http.StatusNotFound},
		{"out of stock", `{"quantity": 99}`, repository.ErrInsufficientStock, http.StatusConflict},
		{"storage failure", `{"quantity": 1}`, errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newCartRouter(&fakeCartService{err: tt.err})
			req := httptest.NewRequest(http.MethodPut, "/carts/c1/lines/p1", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCartController_RemoveLine(t *testing.T) {
	h := newCartRouter(&fakeCartService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/carts/c1/lines/p1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	h = newCartRouter(&fakeCartService{err: repository.ErrLineNotFound})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/carts/c1/lines/p9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartController_QuoteCart(t *testing.T) {
	svc := &fakeCartService{
		carts: map[string][]models.CartLine{"c1": {{ProductID: "p1", Quantity: 12}}},
		quote: models.QuoteResponse{
			Pricing:           models.PricingResult{Subtotal: 1200000, FinalTotal: 972000, OverallDiscountRate: 0.19, DiscountLines: []models.DiscountLine{}},
			Points:            models.PointsResult{TotalPoints: 1964, Reasons: []string{}},
			FinalTotalDisplay: "972,000",
		},
	}
	h := newCartRouter(svc)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/c1/quote?at=2025-01-07T10:00:00Z", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(972000), resp.Pricing.FinalTotal)
	assert.Equal(t, "972,000", resp.FinalTotalDisplay)
	assert.Equal(t, time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC), svc.quotedAt.UTC())
	assert.Equal(t, []models.CartLine{{ProductID: "p1", Quantity: 12}}, svc.quoted)
}

func TestCartController_QuoteCartDefaultsToNow(t *testing.T) {
	svc := &fakeCartService{}
	h := newCartRouter(svc)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/c1/quote", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fixedNow.Equal(svc.quotedAt))
}

func TestCartController_QuoteCartBadTimestamp(t *testing.T) {
	h := newCartRouter(&fakeCartService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/c1/quote?at=tuesday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartController_Quote(t *testing.T) {
	svc := &fakeCartService{quote: models.QuoteResponse{FinalTotalDisplay: "0"}}
	h := newCartRouter(svc)

	body := `{"lines": [{"productId": "p1", "quantity": 1}, {"productId": "p2", "quantity": 1}], "at": "2025-01-07T10:00:00+09:00"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, svc.quoted, 2)
	assert.Equal(t, time.Tuesday, svc.quotedAt.Weekday())
}

func TestCartController_QuoteBadBody(t *testing.T) {
	h := newCartRouter(&fakeCartService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
