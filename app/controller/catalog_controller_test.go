package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cart-pricing/models"
)

func TestCatalogController_GetCatalog(t *testing.T) {
	svc := &fakeCatalogService{overview: models.CatalogResponse{
		Products: models.Catalog{
			{ID: "p1", Name: "Keyboard", OriginalPrice: 100000, CurrentPrice: 100000, Stock: 10},
			{ID: "p5", Name: "Bluetooth Speaker", OriginalPrice: 80000, CurrentPrice: 80000, Stock: 2},
		},
		TotalStock: 12,
		LowStock:   []string{"Bluetooth Speaker"},
	}}
	c := NewCatalogController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	c.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp models.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, 12, resp.TotalStock)
	assert.Equal(t, []string{"Bluetooth Speaker"}, resp.LowStock)
}

func TestCatalogController_GetCatalogFailure(t *testing.T) {
	c := NewCatalogController(&fakeCatalogService{err: errors.New("db down")}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load catalog")
}
