package pricing

import "farmsync/internal/domain/model"

// ComputeEntry builds the price list entry for one target list from a base
// price and the list's markup fraction.
//
// When a sale is active the effective markup is reduced by saleDeduction
// (a fraction, e.g. 0.5 for 50 percentage points) and the would-be regular
// price becomes the strikethrough display value. A deduction large enough to
// push the sale price below the base price is accepted as-is: the engine is a
// calculator, not a guardrail, and sale parameters are a business decision.
func ComputeEntry(targetListID int64, basePrice, markupFraction float64, saleActive bool, saleDeduction float64) model.PriceListEntry {
	// The price is derived from the rounded adjustment so the two fields can
	// never disagree after rounding.
	adjustment := Round2(markupFraction * 100)
	entry := model.PriceListEntry{
		TargetListID:    targetListID,
		AdjustmentValue: adjustment,
		CalculatedPrice: Round2(basePrice * (1 + adjustment/100)),
	}

	if saleActive {
		regular := entry.CalculatedPrice
		entry.OnSale = true
		entry.StrikethroughPrice = &regular
		entry.AdjustmentValue = Round2((markupFraction - saleDeduction) * 100)
		entry.CalculatedPrice = Round2(basePrice * (1 + entry.AdjustmentValue/100))
	}

	return entry
}
