package service

import (
	"context"
	"sync"

	"cart-pricing/models"
	"cart-pricing/repository"
)

type fakeCatalogRepository struct {
	mu       sync.Mutex
	products models.Catalog
	listErr  error
	saveErr  error
	saves    int
	// staleWrites makes the next n saves fail as if another writer got there first
	staleWrites int
}

func newFakeCatalogRepository(products models.Catalog) *fakeCatalogRepository {
	return &fakeCatalogRepository{products: append(models.Catalog(nil), products...)}
}

func (f *fakeCatalogRepository) ListProducts(context.Context) (models.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append(models.Catalog(nil), f.products...), nil
}

func (f *fakeCatalogRepository) GetProduct(_ context.Context, id string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products.FindByID(id)
	if !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalogRepository) SaveSaleState(_ context.Context, before, product models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.staleWrites > 0 {
		f.staleWrites--
		return repository.ErrStaleProduct
	}
	for i := range f.products {
		if f.products[i].ID == product.ID {
			cur := f.products[i]
			if cur.CurrentPrice != before.CurrentPrice || cur.OnLightningSale != before.OnLightningSale || cur.OnSuggestionSale != before.OnSuggestionSale {
				return repository.ErrStaleProduct
			}
			f.products[i].CurrentPrice = product.CurrentPrice
			f.products[i].OnLightningSale = product.OnLightningSale
			f.products[i].OnSuggestionSale = product.OnSuggestionSale
			f.saves++
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (f *fakeCatalogRepository) SaveSaleStates(ctx context.Context, changes []repository.SaleChange) error {
	for _, c := range changes {
		if err := f.SaveSaleState(ctx, c.Before, c.After); err != nil {
			return err
		}
	}
	return nil
}

type fakeCartRepository struct {
	carts  map[string][]models.CartLine
	getErr error
}

func (f *fakeCartRepository) GetCart(_ context.Context, cartID string) (models.Cart, error) {
	if f.getErr != nil {
		return models.Cart{}, f.getErr
	}
	return models.Cart{ID: cartID, Lines: append([]models.CartLine{}, f.carts[cartID]...)}, nil
}

func (f *fakeCartRepository) SetLine(_ context.Context, cartID, productID string, quantity int) error {
	if quantity < 1 {
		return repository.ErrInvalidQuantity
	}
	if f.carts == nil {
		f.carts = map[string][]models.CartLine{}
	}
	lines := f.carts[cartID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	f.carts[cartID] = append(lines, models.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeCartRepository) RemoveLine(_ context.Context, cartID, productID string) error {
	lines := f.carts[cartID]
	for i := range lines {
		if lines[i].ProductID == productID {
			f.carts[cartID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrLineNotFound
}

func seedCatalog() models.Catalog {
	return models.Catalog{
		{ID: "p1", Name: "Keyboard", OriginalPrice: 10000, CurrentPrice: 10000, Stock: 50},
		{ID: "p2", Name: "Mouse", OriginalPrice: 20000, CurrentPrice: 20000, Stock: 30},
		{ID: "p3", Name: "Monitor arm", OriginalPrice: 30000, CurrentPrice: 30000, Stock: 20},
		{ID: "p4", Name: "Laptop pouch", OriginalPrice: 15000, CurrentPrice: 15000, Stock: 0},
		{ID: "p5", Name: "Speaker", OriginalPrice: 25000, CurrentPrice: 25000, Stock: 3},
	}
}
