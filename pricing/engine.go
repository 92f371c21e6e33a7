package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cart-pricing/models"
)

// Engine prices carts and computes loyalty points. It is stateless apart
// from its rules and safe for concurrent use.
type Engine struct {
	rules    Rules
	location *time.Location
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for skipped-line diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine validates the rules and builds an engine.
func NewEngine(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing rules: %w", err)
	}
	e := &Engine{rules: rules, logger: zap.NewNop()}
	if rules.Timezone != "" {
		loc, err := time.LoadLocation(rules.Timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", rules.Timezone, err)
		}
		e.location = loc
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rules returns a copy of the engine's rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Price computes the subtotal, the final charge and the discount breakdown.
//
// Discounts apply in a fixed order: individual line rates, then the bulk
// override which replaces them, then the Tuesday rate on the running total.
func (e *Engine) Price(catalog models.Catalog, lines []models.CartLine, now time.Time) models.PricingResult {
	return e.PriceDecision(e.EvaluateDiscounts(catalog, lines, now))
}

// PriceDecision aggregates an already evaluated decision, so callers that
// also need the validated lines evaluate the cart once.
func (e *Engine) PriceDecision(d DiscountDecision) models.PricingResult {
	subtotal := decimal.Zero
	afterItemDiscount := decimal.Zero
	for _, l := range d.Lines {
		amount := l.Amount()
		subtotal = subtotal.Add(amount)
		afterItemDiscount = afterItemDiscount.Add(amount.Mul(remainingFactor(l.RatePercent)))
	}

	running := afterItemDiscount
	if d.Bulk {
		running = subtotal.Mul(remainingFactor(e.rules.Bulk.RatePercent))
	}
	discountLines := e.breakdown(d)

	if d.Tuesday && running.IsPositive() {
		running = running.Mul(remainingFactor(e.rules.Tuesday.RatePercent))
		discountLines = append(discountLines, models.DiscountLine{
			Kind:        models.DiscountTuesday,
			Label:       "Tuesday",
			RatePercent: e.rules.Tuesday.RatePercent,
		})
	}

	result := models.PricingResult{
		Subtotal:      subtotal.IntPart(),
		FinalTotal:    running.Round(0).IntPart(),
		DiscountLines: discountLines,
	}
	if subtotal.IsPositive() {
		rate := decimal.NewFromInt(1).Sub(decimal.NewFromInt(result.FinalTotal).Div(subtotal)).Round(2)
		result.OverallDiscountRate = rate.InexactFloat64()
	}
	return result
}
