package models

// CartLine represents one (product, quantity) pair in a cart
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart represents a stored cart with its lines
type Cart struct {
	ID    string     `json:"id"`
	Lines []CartLine `json:"lines"`
}

// TotalQuantity returns the sum of all positive line quantities
func TotalQuantity(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		if l.Quantity > 0 {
			total += l.Quantity
		}
	}
	return total
}

// SetLineRequest represents the request body for setting a cart line quantity
// Example: {"quantity": 3}
type SetLineRequest struct {
	Quantity int `json:"quantity"`
}

// QuoteRequest represents the request body for pricing an ad-hoc cart
// Example: {"lines": [{"productId": "p1", "quantity": 12}], "at": "2025-01-07T10:00:00Z"}
// "at" is optional and defaults to the server clock
type QuoteRequest struct {
	Lines []CartLine `json:"lines"`
	At    string     `json:"at,omitempty"`
}
