package service

import (
	"context"
	"time"

	"cart-pricing/models"
)

// CatalogServiceInterface defines the contract for catalog reads and sale events
type CatalogServiceInterface interface {
	Snapshot(ctx context.Context) (models.Catalog, error)
	Overview(ctx context.Context) (models.CatalogResponse, error)
	// ApplyLightningSale returns ok=false when no product is eligible
	ApplyLightningSale(ctx context.Context) (product models.Product, ok bool, err error)
	// ApplySuggestionSale returns ok=false when lastSelectedID is empty or no product is eligible
	ApplySuggestionSale(ctx context.Context, lastSelectedID string) (product models.Product, ok bool, err error)
	// ResetSales restores list prices and clears sale flags. An empty productID resets the whole catalog.
	ResetSales(ctx context.Context, productID string) (int, error)
}

// CartServiceInterface defines the contract for cart storage and quoting
type CartServiceInterface interface {
	GetCart(ctx context.Context, cartID string) (models.Cart, error)
	SetLine(ctx context.Context, cartID, productID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, productID string) error
	QuoteCart(ctx context.Context, cartID string, at time.Time) (models.QuoteResponse, error)
	QuoteLines(ctx context.Context, lines []models.CartLine, at time.Time) (models.QuoteResponse, error)
}
