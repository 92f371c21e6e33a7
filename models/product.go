package models

// Product represents a product in the catalog
type Product struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OriginalPrice    int64  `json:"originalPrice"` // List price, never changed by sales
	CurrentPrice     int64  `json:"currentPrice"`  // Sale-adjusted price, equals OriginalPrice when no sale is active
	Stock            int    `json:"stock"`
	OnLightningSale  bool   `json:"onLightningSale"`
	OnSuggestionSale bool   `json:"onSuggestionSale"`
}

// Catalog is an ordered snapshot of products. Iteration order is significant
// for the suggestion sale, which picks the first eligible product.
type Catalog []Product

// TotalStock returns the sum of stock across the catalog
func (c Catalog) TotalStock() int {
	total := 0
	for _, p := range c {
		total += p.Stock
	}
	return total
}

// FindByID returns the product with the given id and whether it exists
func (c Catalog) FindByID(id string) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Index builds an id -> product lookup for repeated access
func (c Catalog) Index() map[string]Product {
	idx := make(map[string]Product, len(c))
	for _, p := range c {
		idx[p.ID] = p
	}
	return idx
}

// CatalogResponse represents the response for the catalog listing
// Example response:
//
//	{
//	  "products": [
//	    {"id": "p1", "name": "Keyboard", "originalPrice": 10000, "currentPrice": 8000, "stock": 50, "onLightningSale": true, "onSuggestionSale": false}
//	  ],
//	  "totalStock": 50,
//	  "lowStock": []
//	}
type CatalogResponse struct {
	Products   []Product `json:"products"`
	TotalStock int       `json:"totalStock"`
	LowStock   []string  `json:"lowStock"` // Names of products with stock below the warning threshold
}
