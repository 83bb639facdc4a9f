package utils

import (
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatCompact renders a dollar magnitude as $1.2B, $3.4M, $5.6K or $7.
func FormatCompact(num float64) string {
	d := decimal.NewFromFloat(num)

	switch {
	case d.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(1) + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(1) + "K"
	default:
		return "$" + d.StringFixed(0)
	}
}

// FormatPrice picks the precision by magnitude so sub-cent prices stay readable.
func FormatPrice(num float64) string {
	d := decimal.NewFromFloat(num)

	switch {
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	case d.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return d.StringFixed(2)
	case d.GreaterThanOrEqual(decimal.NewFromFloat(0.01)):
		return d.StringFixed(4)
	default:
		return d.StringFixed(6)
	}
}

func FormatPercent(change float64) string {
	d := decimal.NewFromFloat(change)
	if d.IsPositive() {
		return "+" + d.StringFixed(1) + "%"
	}
	return d.StringFixed(1) + "%"
}

// LiquidityRatio is liquidity over market cap, 0 when the cap is zero.
func LiquidityRatio(liquidity, marketCap float64) float64 {
	if marketCap == 0 {
		return 0
	}
	ratio, _ := decimal.NewFromFloat(liquidity).
		Div(decimal.NewFromFloat(marketCap)).
		Round(4).
		Float64()
	return ratio
}
