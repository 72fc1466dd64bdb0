package number

import (
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Pow10 10^n as a decimal.
func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}

// ScaleTo18 rescales an integer amount from the given native precision to
// fixed-point 18. Scaling down integer-divides, truncating toward zero, so
// normalization never rounds in the caller's favor.
func ScaleTo18(d decimal.Decimal, decimals int32) decimal.Decimal {
	if decimals == 18 {
		return d
	}

	scaled := d.Shift(18 - decimals)
	if decimals > 18 {
		scaled = scaled.Truncate(0)
	}

	return scaled
}

// ScaleDown18 divides by 10^18 with truncation.
func ScaleDown18(d decimal.Decimal) decimal.Decimal {
	return d.Shift(-18).Truncate(0)
}
