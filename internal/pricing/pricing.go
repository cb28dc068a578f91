package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
)

// ErrInvalidInput is returned when a dimension is non-positive, the pocket
// count is negative, or the material/case type reference does not resolve.
var ErrInvalidInput = errors.New("invalid pricing input")

var (
	pocketPrice     = decimal.NewFromInt(15)
	litersPerCubicM = decimal.NewFromInt(1000)
)

// Quote is the priced breakdown for a custom case. All monetary fields are
// rounded to 2 decimal places, half up.
type Quote struct {
	VolumeLiters decimal.Decimal `json:"volume"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	ExtrasPrice  decimal.Decimal `json:"pocketPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// Calculate prices a custom case from its dimensions (cm), the material's
// per-unit rate, the case type's multiplier and the extra pocket count.
// It is a pure function with no side effects.
func Calculate(width, height, depth decimal.Decimal, material domain.Material, caseType domain.CaseType, extraPockets int) (Quote, error) {
	zero := decimal.Zero
	if !width.GreaterThan(zero) || !height.GreaterThan(zero) || !depth.GreaterThan(zero) {
		return Quote{}, ErrInvalidInput
	}
	if extraPockets < 0 {
		return Quote{}, ErrInvalidInput
	}
	if !material.PricePerUnit.GreaterThan(zero) {
		return Quote{}, ErrInvalidInput
	}
	if caseType.PriceMultiplier.LessThan(decimal.NewFromInt(1)) {
		return Quote{}, ErrInvalidInput
	}

	volume := width.Mul(height).Mul(depth).Div(litersPerCubicM)
	base := volume.Mul(material.PricePerUnit).Mul(caseType.PriceMultiplier)
	extras := pocketPrice.Mul(decimal.NewFromInt(int64(extraPockets)))

	// Total rounds the unrounded sum, not the sum of rounded parts.
	return Quote{
		VolumeLiters: volume.Round(2),
		BasePrice:    base.Round(2),
		ExtrasPrice:  extras.Round(2),
		TotalPrice:   base.Add(extras).Round(2),
	}, nil
}
