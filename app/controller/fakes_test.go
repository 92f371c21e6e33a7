package controller

import (
	"context"
	"time"

	"cart-pricing/models"
)

type fakeCatalogService struct {
	overview       models.CatalogResponse
	sale           models.Product
	saleOK         bool
	err            error
	lastSelectedID string
	resetID        string
	resetCount     int
}

func (f *fakeCatalogService) Snapshot(context.Context) (models.Catalog, error) {
	return f.overview.Products, f.err
}

func (f *fakeCatalogService) Overview(context.Context) (models.CatalogResponse, error) {
	return f.overview, f.err
}

func (f *fakeCatalogService) ApplyLightningSale(context.Context) (models.Product, bool, error) {
	return f.sale, f.saleOK, f.err
}

func (f *fakeCatalogService) ApplySuggestionSale(_ context.Context, lastSelectedID string) (models.Product, bool, error) {
	f.lastSelectedID = lastSelectedID
	if lastSelectedID == "" {
		return models.Product{}, false, f.err
	}
	return f.sale, f.saleOK, f.err
}

func (f *fakeCatalogService) ResetSales(_ context.Context, productID string) (int, error) {
	f.resetID = productID
	return f.resetCount, f.err
}

type fakeCartService struct {
	carts    map[string][]models.CartLine
	quote    models.QuoteResponse
	err      error
	quotedAt time.Time
	quoted   []models.CartLine
}

func (f *fakeCartService) GetCart(_ context.Context, cartID string) (models.Cart, error) {
	if f.err != nil {
		return models.Cart{}, f.err
	}
	return models.Cart{ID: cartID, Lines: append([]models.CartLine{}, f.carts[cartID]...)}, nil
}

func (f *fakeCartService) SetLine(_ context.Context, cartID, productID string, quantity int) error {
	if f.err != nil {
		return f.err
	}
	if f.carts == nil {
		f.carts = map[string][]models.CartLine{}
	}
	f.carts[cartID] = append(f.carts[cartID], models.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeCartService) RemoveLine(_ context.Context, cartID, productID string) error {
	return f.err
}

func (f *fakeCartService) QuoteCart(ctx context.Context, cartID string, at time.Time) (models.QuoteResponse, error) {
	return f.QuoteLines(ctx, f.carts[cartID], at)
}

func (f *fakeCartService) QuoteLines(_ context.Context, lines []models.CartLine, at time.Time) (models.QuoteResponse, error) {
	f.quotedAt = at
	f.quoted = lines
	return f.quote, f.err
}
