package models

// SaleKind identifies a catalog-level sale event
type SaleKind string

const (
	SaleLightning  SaleKind = "lightning"
	SaleSuggestion SaleKind = "suggestion"
)

// SuggestionSaleRequest represents the request body for a suggestion sale
// Example: {"lastSelectedProductId": "p1"}
type SuggestionSaleRequest struct {
	LastSelectedProductID string `json:"lastSelectedProductId"`
}

// ResetSaleRequest represents the request body for resetting sale state
// Example: {"productId": "p1"}
// An empty productId resets every product in the catalog
type ResetSaleRequest struct {
	ProductID string `json:"productId,omitempty"`
}

// SaleResponse represents the response after a sale event was applied
// Example response:
//
//	{
//	  "kind": "lightning",
//	  "product": {"id": "p2", "name": "Mouse", "originalPrice": 20000, "currentPrice": 16000, "stock": 30, "onLightningSale": true, "onSuggestionSale": false}
//	}
type SaleResponse struct {
	Kind    SaleKind `json:"kind"`
	Product Product  `json:"product"`
}

// ResetSaleResponse represents the response after a sale reset
type ResetSaleResponse struct {
	Reset int `json:"reset"` // Number of products restored to list price
}
