package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cart-pricing/app/controller"
	"cart-pricing/metrics"
)

func TestNewRouter_PingAndMetrics(t *testing.T) {
	m := metrics.NewRegistry()
	m.Quotes.Inc()
	h := NewRouter(&Controllers{
		Catalog: controller.NewCatalogController(nil, zap.NewNop()),
		Cart:    controller.NewCartController(nil, nil, zap.NewNop()),
		Sale:    controller.NewSaleController(nil, zap.NewNop()),
		Metrics: m.Handler(),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart_quotes_total 1")
	assert.Contains(t, rec.Body.String(), "# HELP cart_quotes_total Carts quoted.")
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	h := NewRouter(&Controllers{
		Catalog: controller.NewCatalogController(nil, zap.NewNop()),
		Cart:    controller.NewCartController(nil, nil, zap.NewNop()),
		Sale:    controller.NewSaleController(nil, zap.NewNop()),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/sales/lightning", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
