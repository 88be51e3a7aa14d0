package pricing

import (
	"math"

	"farmsync/internal/domain/model"
)

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBasePrice derives the purchase price for one product from its retail
// price and the global discount factor. Weight-priced products use the average
// of the configured weight range.
//
// The result is deterministic and the function never touches I/O.
func ComputeBasePrice(p model.Product, discountFactor float64) (float64, error) {
	switch p.UnitOfMeasure {
	case model.UnitLbs:
		avgWeight := (p.LowestWeight + p.HighestWeight) / 2
		return Round2(avgWeight * p.RetailSalesPrice * discountFactor), nil
	case model.UnitEach:
		return Round2(p.RetailSalesPrice * discountFactor), nil
	default:
		return 0, model.NewConfigurationError("unknown unit of measure %q for product %d", string(p.UnitOfMeasure), p.ID)
	}
}
