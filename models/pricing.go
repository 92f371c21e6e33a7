package models

// DiscountKind identifies which rule produced a discount line
type DiscountKind string

const (
	DiscountIndividual DiscountKind = "individual"
	DiscountBulk       DiscountKind = "bulk"
	DiscountTuesday    DiscountKind = "tuesday"
)

// DiscountLine represents one applied discount in the breakdown.
// RatePercent is for display only and is never fed back into arithmetic.
type DiscountLine struct {
	Kind        DiscountKind `json:"kind"`
	Label       string       `json:"label"`
	RatePercent float64      `json:"ratePercent"`
}

// PricingResult represents the complete pricing calculation result
type PricingResult struct {
	Subtotal            int64          `json:"subtotal"`            // Sum of base price * quantity
	FinalTotal          int64          `json:"finalTotal"`          // Charge after all discounts
	OverallDiscountRate float64        `json:"overallDiscountRate"` // 1 - finalTotal/subtotal, two decimals
	DiscountLines       []DiscountLine `json:"discountLines"`
}

// PointsResult represents accrued loyalty points with itemized reasons
type PointsResult struct {
	TotalPoints int64    `json:"totalPoints"`
	Reasons     []string `json:"reasons"` // In evaluation order: base, calendar, combo, quantity tier
}

// QuoteResponse represents the response for a cart quote
// Example response:
//
//	{
//	  "pricing": {"subtotal": 120000, "finalTotal": 108000, "overallDiscountRate": 0.1, "discountLines": [{"kind": "individual", "label": "Keyboard", "ratePercent": 10}]},
//	  "points": {"totalPoints": 128, "reasons": ["base: 108p", "bulk purchase (10+): +20p"]},
//	  "finalTotalDisplay": "108,000",
//	  "discountDisplay": "10%"
//	}
type QuoteResponse struct {
	Pricing           PricingResult `json:"pricing"`
	Points            PointsResult  `json:"points"`
	FinalTotalDisplay string        `json:"finalTotalDisplay"`
	DiscountDisplay   string        `json:"discountDisplay"`
}
