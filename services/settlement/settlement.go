// Package settlement derives the platform fee and talent payout from a gross
// amount. The fee rate is snapshotted on the booking at creation time and
// this split is never recomputed retroactively.
package settlement

import (
	"talentshout/utils"

	"github.com/shopspring/decimal"
)

// Settlement is the exact two-way split of a gross amount.
type Settlement struct {
	PlatformFee    decimal.Decimal
	TalentEarnings decimal.Decimal
}

// Compute splits gross into platform fee and talent earnings. The fee is
// rounded half-up to 2 decimal places and the earnings take the remainder, so
// the two components always sum exactly to the gross amount.
func Compute(gross, feeRate decimal.Decimal) (Settlement, error) {
	if gross.LessThanOrEqual(decimal.Zero) {
		return Settlement{}, utils.NewValidationError("amount", "gross amount must be positive")
	}
	if feeRate.IsNegative() || feeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Settlement{}, utils.NewValidationError("fee_rate", "fee rate must be in [0, 1)")
	}

	// decimal.Round rounds half away from zero, which for non-negative
	// amounts is exactly round-half-up.
	fee := gross.Mul(feeRate).Round(2)
	earnings := gross.Sub(fee)

	return Settlement{PlatformFee: fee, TalentEarnings: earnings}, nil
}
