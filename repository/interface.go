package repository

import (
	"context"

	"cart-pricing/models"
)

// CatalogRepositoryInterface defines the contract for catalog storage operations
type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context) (models.Catalog, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	// SaveSaleState writes after only if the stored row still matches before.
	SaveSaleState(ctx context.Context, before, after models.Product) error
	SaveSaleStates(ctx context.Context, changes []SaleChange) error
}

// SaleChange pairs the snapshot a sale decision was made on with its result
type SaleChange struct {
	Before models.Product
	After  models.Product
}

// CartRepositoryInterface defines the contract for cart storage operations
type CartRepositoryInterface interface {
	GetCart(ctx context.Context, cartID string) (models.Cart, error)
	SetLine(ctx context.Context, cartID, productID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, productID string) error
}
