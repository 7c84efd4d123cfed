// Package pricing computes spot price and market capitalization for the
// launchpad bonding curve and for graduated pump AMM pools.
package pricing

import "github.com/shopspring/decimal"

const (
	// TotalSupply is the fixed total supply assumed by both pricing models.
	TotalSupply = 1_000_000_000

	// TokenDecimals is the decimal precision of the pump token mint.
	TokenDecimals = 6
	// WSOLDecimals is the decimal precision of wrapped SOL, the quote
	// currency for both models.
	WSOLDecimals = 9
)

// LaunchpadPrice computes the bonding-curve spot price from virtual
// reserves. Zero token reserves yields a price of 0.
func LaunchpadPrice(virtualSolReserves, virtualTokenReserves uint64) float64 {
	if virtualTokenReserves == 0 {
		return 0
	}
	sol := float64(virtualSolReserves) / 1e9
	tok := float64(virtualTokenReserves) / 1e6
	return sol / tok
}

// LaunchpadMarketCap is price times the fixed total supply.
func LaunchpadMarketCap(virtualSolReserves, virtualTokenReserves uint64) float64 {
	return LaunchpadPrice(virtualSolReserves, virtualTokenReserves) * TotalSupply
}

// AMMPrice computes a pump AMM pool's spot price as quote-per-base. Zero
// base reserves yields a price of 0.
func AMMPrice(baseReserves, quoteReserves uint64) float64 {
	base := float64(baseReserves) / pow10(TokenDecimals)
	if base == 0 {
		return 0
	}
	quote := float64(quoteReserves) / pow10(WSOLDecimals)
	return quote / base
}

// AMMMarketCap is quote-per-base price times the fixed total supply — the
// "cal_pumpamm_marketcap_precise" formula, the only AMM market-cap formula
// this monitor implements.
func AMMMarketCap(baseReserves, quoteReserves uint64) float64 {
	return AMMPrice(baseReserves, quoteReserves) * TotalSupply
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// FormatMarketCap renders a market cap as a fixed-point decimal string with
// no exponent, truncated (not rounded) to two decimal places, so stored and
// displayed values stay human-readable. A value round-trips through the
// pipe-delimited record format exactly only up to those two decimals.
func FormatMarketCap(marketCap float64) string {
	return decimal.NewFromFloat(marketCap).Truncate(2).String()
}

// ParseMarketCap is the inverse of FormatMarketCap, tolerant of any decimal
// string the store might hand back (including ones written by an older,
// less precise formatter).
func ParseMarketCap(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
