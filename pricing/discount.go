package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cart-pricing/models"
)

// LineDecision is a cart line joined with its product and the individual
// rate it qualifies for (0 when below the threshold or not in the table).
type LineDecision struct {
	Product     models.Product
	Quantity    int
	UnitPrice   int64
	RatePercent float64
}

// Amount returns the undiscounted line total.
func (l LineDecision) Amount() decimal.Decimal {
	return decimal.NewFromInt(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DiscountDecision holds every discount decision for one cart.
// When Bulk is set the individual rates are still computed but must not
// reach the breakdown.
type DiscountDecision struct {
	Lines         []LineDecision
	TotalQuantity int
	Bulk          bool
	Tuesday       bool
	Skipped       int // lines dropped for unknown product or out-of-range quantity
}

// CartLines returns the lines that survived validation, in cart order.
func (d DiscountDecision) CartLines() []models.CartLine {
	out := make([]models.CartLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		out = append(out, models.CartLine{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return out
}

// EvaluateDiscounts joins cart lines with the catalog and decides which
// discounts apply. Lines that reference unknown products or carry a
// quantity outside 1..MaxLineQuantity are skipped.
func (e *Engine) EvaluateDiscounts(catalog models.Catalog, lines []models.CartLine, now time.Time) DiscountDecision {
	idx := catalog.Index()
	decision := DiscountDecision{Lines: make([]LineDecision, 0, len(lines))}

	for _, line := range lines {
		if line.Quantity <= 0 || line.Quantity > e.rules.MaxLineQuantity {
			e.logger.Debug("skipping cart line with invalid quantity",
				zap.String("productId", line.ProductID), zap.Int("quantity", line.Quantity))
			decision.Skipped++
			continue
		}
		product, ok := idx[line.ProductID]
		if !ok {
			e.logger.Debug("skipping cart line for unknown product", zap.String("productId", line.ProductID))
			decision.Skipped++
			continue
		}

		d := LineDecision{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: e.unitPrice(product),
		}
		if line.Quantity >= e.rules.Individual.MinQuantity {
			d.RatePercent = e.rules.Individual.Rates[product.ID]
		}
		decision.Lines = append(decision.Lines, d)
		decision.TotalQuantity += line.Quantity
	}

	decision.Bulk = decision.TotalQuantity >= e.rules.Bulk.MinQuantity
	decision.Tuesday = e.IsTuesday(now)
	return decision
}

// IsTuesday reports whether now falls on a Tuesday in the configured time zone.
func (e *Engine) IsTuesday(now time.Time) bool {
	if e.location != nil {
		now = now.In(e.location)
	}
	return now.Weekday() == time.Tuesday
}

func (e *Engine) unitPrice(p models.Product) int64 {
	if e.rules.Baseline == BaselineCurrent {
		return p.CurrentPrice
	}
	return p.OriginalPrice
}

// breakdown returns the discount lines for a decision, excluding the
// Tuesday line which depends on the running total.
func (e *Engine) breakdown(d DiscountDecision) []models.DiscountLine {
	if d.Bulk {
		return []models.DiscountLine{{
			Kind:        models.DiscountBulk,
			Label:       fmt.Sprintf("bulk purchase (%d+ items)", e.rules.Bulk.MinQuantity),
			RatePercent: e.rules.Bulk.RatePercent,
		}}
	}
	out := []models.DiscountLine{}
	for _, l := range d.Lines {
		if l.RatePercent > 0 {
			out = append(out, models.DiscountLine{
				Kind:        models.DiscountIndividual,
				Label:       l.Product.Name,
				RatePercent: l.RatePercent,
			})
		}
	}
	return out
}
