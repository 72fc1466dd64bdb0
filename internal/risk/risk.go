// Package risk holds the pure admission and health arithmetic of the pool.
// All functions operate on integer-valued decimals: token amounts in native
// precision, prices in fixed-point 18, rates and ratios in basis points.
package risk

import (
	"lendpool/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// BpsDenom basis point denominator
	BpsDenom = decimal.NewFromInt(10000)

	one = decimal.New(1, 0)
)

const (
	// CollateralRatioMinBps lower bound of the protocol collateral ratio (10%)
	CollateralRatioMinBps int64 = 1000
	// CollateralRatioMaxBps upper bound of the protocol collateral ratio (300%)
	CollateralRatioMaxBps int64 = 30000
)

// ValidCollateralRatio reports whether bps is inside [1000, 30000].
func ValidCollateralRatio(bps int64) bool {
	return bps >= CollateralRatioMinBps && bps <= CollateralRatioMaxBps
}

// Interest owed on a principal at rateBps, rounded up so the protocol never
// under-collects by truncation:
//
//	ceil(principal * rateBps / 10000)
func Interest(principal decimal.Decimal, rateBps int64) decimal.Decimal {
	q, r := principal.Mul(decimal.NewFromInt(rateBps)).QuoRem(BpsDenom, 0)
	if !r.IsZero() {
		q = q.Add(one)
	}

	return q
}

// CollateralValue USD value of a collateral amount at a fixed-point-18
// price, truncated:
//
//	collateral * price / 1e18
func CollateralValue(collateral, price decimal.Decimal) decimal.Decimal {
	return number.ScaleDown18(collateral.Mul(price))
}

// RequiredValue minimum USD collateral value for a principal at the given
// ratio, truncated:
//
//	principal * ratioBps / 10000
func RequiredValue(principal decimal.Decimal, ratioBps int64) decimal.Decimal {
	q, _ := principal.Mul(decimal.NewFromInt(ratioBps)).QuoRem(BpsDenom, 0)
	return q
}

// BorrowAllowed admission check at borrow time. Cross-multiplied so no
// division rounding leaks into the comparison:
//
//	collateralValue * 10000 >= amount * ratioBps
func BorrowAllowed(collateralValue, amount decimal.Decimal, ratioBps int64) bool {
	return collateralValue.Mul(BpsDenom).GreaterThanOrEqual(amount.Mul(decimal.NewFromInt(ratioBps)))
}

// Undercollateralized health check at liquidation time. Strict inequality:
// a loan exactly at the threshold is healthy.
func Undercollateralized(collateralValue, principal decimal.Decimal, ratioBps int64) bool {
	return collateralValue.LessThan(RequiredValue(principal, ratioBps))
}

// SlippageExceeded opt-in deviation guard between the fetched price and the
// caller's expected price:
//
//	|price - expected| * 10000 > expected * maxBps
func SlippageExceeded(price, expected decimal.Decimal, maxBps int64) bool {
	deviation := price.Sub(expected).Abs()
	return deviation.Mul(BpsDenom).GreaterThan(expected.Mul(decimal.NewFromInt(maxBps)))
}
