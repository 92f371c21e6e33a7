package pricing

import (
	"fmt"
	"time"

	"cart-pricing/models"
)

// Points computes loyalty points from the final charge and the cart
// composition. Rules are evaluated in order: base, Tuesday multiplier,
// combo bonuses, quantity tier. Reasons list only contributing rules.
func (e *Engine) Points(finalTotal int64, lines []models.CartLine, now time.Time) models.PointsResult {
	result := models.PointsResult{Reasons: []string{}}

	present := make(map[string]bool, len(lines))
	totalQty := 0
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		present[l.ProductID] = true
		totalQty += l.Quantity
	}
	if finalTotal <= 0 || totalQty == 0 {
		return result
	}

	base := finalTotal / e.rules.Points.PerAmount
	points := base
	if base > 0 {
		result.Reasons = append(result.Reasons, fmt.Sprintf("base: %dp", base))
		if e.IsTuesday(now) && e.rules.Tuesday.PointsMultiplier > 1 {
			points = base * e.rules.Tuesday.PointsMultiplier
			result.Reasons = append(result.Reasons, fmt.Sprintf("Tuesday x%d", e.rules.Tuesday.PointsMultiplier))
		}
	}

	for _, combo := range e.rules.Points.Combos {
		if combo.Bonus == 0 || !containsAll(present, combo.Products) {
			continue
		}
		points += combo.Bonus
		result.Reasons = append(result.Reasons, fmt.Sprintf("%s: +%dp", combo.Name, combo.Bonus))
	}

	// tiers are sorted highest first by Validate
	for _, tier := range e.rules.Points.Tiers {
		if totalQty < tier.MinQuantity {
			continue
		}
		if tier.Bonus > 0 {
			points += tier.Bonus
			result.Reasons = append(result.Reasons, fmt.Sprintf("bulk purchase (%d+): +%dp", tier.MinQuantity, tier.Bonus))
		}
		break
	}

	result.TotalPoints = points
	return result
}

func containsAll(present map[string]bool, ids []string) bool {
	for _, id := range ids {
		if !present[id] {
			return false
		}
	}
	return true
}
