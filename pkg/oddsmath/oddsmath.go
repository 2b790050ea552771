package oddsmath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmericanToImpliedProbability converts American odds to the implied win
// probability, bookmaker margin included.
// +100 → 0.50, -150 → 0.60, +200 → 0.333
func AmericanToImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}

	o := float64(-american)
	return o / (o + 100.0), nil
}

// DecimalToImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50
func DecimalToImpliedProbability(dec float64) (float64, error) {
	if dec <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	return 1.0 / dec, nil
}

// CombinedHitChance returns the product of the leg probabilities as a
// percentage rounded to one decimal place. Legs are treated as independent.
func CombinedHitChance(probabilities []float64) float64 {
	if len(probabilities) == 0 {
		return 0
	}

	product := decimal.NewFromInt(1)
	for _, p := range probabilities {
		product = product.Mul(decimal.NewFromFloat(p))
	}

	pct, _ := product.Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return pct
}
