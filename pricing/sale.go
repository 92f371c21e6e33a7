package pricing

import (
	"github.com/shopspring/decimal"

	"cart-pricing/models"
)

// SaleApplicator applies lightning and suggestion price cuts to a catalog
// snapshot. It never mutates the catalog it is given; callers persist the
// returned product.
type SaleApplicator struct {
	lightningFactor  decimal.Decimal
	suggestionFactor decimal.Decimal
	rng              RandomSource
}

// NewSaleApplicator builds an applicator from the sale rules. A nil rng uses DefaultRNG.
func NewSaleApplicator(rules SaleRules, rng RandomSource) *SaleApplicator {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &SaleApplicator{
		lightningFactor:  remainingFactor(rules.LightningRatePercent),
		suggestionFactor: remainingFactor(rules.SuggestionRatePercent),
		rng:              rng,
	}
}

// ApplyLightningSale picks a random in-stock product not already on a
// lightning sale and cuts its price from the list price. ok is false when no
// product is eligible.
func (a *SaleApplicator) ApplyLightningSale(catalog models.Catalog) (models.Product, bool) {
	var candidates []int
	for i, p := range catalog {
		if p.Stock > 0 && !p.OnLightningSale {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return models.Product{}, false
	}

	p := catalog[candidates[pick(a.rng, len(candidates))]]
	p.CurrentPrice = applyFactor(p.OriginalPrice, a.lightningFactor)
	p.OnLightningSale = true
	return p, true
}

// ApplySuggestionSale cuts the current price of the first in-stock product,
// other than the last selected one, that is not already on a suggestion sale.
// The cut compounds with an active lightning sale. ok is false when
// lastSelectedID is empty or no product is eligible.
func (a *SaleApplicator) ApplySuggestionSale(catalog models.Catalog, lastSelectedID string) (models.Product, bool) {
	if lastSelectedID == "" {
		return models.Product{}, false
	}
	for _, p := range catalog {
		if p.ID == lastSelectedID || p.Stock <= 0 || p.OnSuggestionSale {
			continue
		}
		p.CurrentPrice = applyFactor(p.CurrentPrice, a.suggestionFactor)
		p.OnSuggestionSale = true
		return p, true
	}
	return models.Product{}, false
}

// ResetSale restores the list price and clears both sale flags, making the
// product eligible for new sale events. Flags are never cleared any other way.
func ResetSale(p models.Product) models.Product {
	p.CurrentPrice = p.OriginalPrice
	p.OnLightningSale = false
	p.OnSuggestionSale = false
	return p
}

// HasActiveSale reports whether any sale has touched the product.
func HasActiveSale(p models.Product) bool {
	return p.OnLightningSale || p.OnSuggestionSale || p.CurrentPrice != p.OriginalPrice
}

var hundred = decimal.NewFromInt(100)

// remainingFactor turns a discount percent into the multiplier left after it.
func remainingFactor(ratePercent float64) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(decimal.NewFromFloat(ratePercent).Div(hundred))
}

func applyFactor(amount int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Round(0).IntPart()
}
