package symexpr

import "math"

// Round rounds x to the given number of decimal places, half away
// from zero (matching math.Round's tie-breaking), normalizing a
// negative-zero result to positive zero.
func Round(x float64, decimals int) float64 {
	if x == 0 {
		return 0
	}
	factor := math.Pow(10, float64(decimals))
	r := math.Round(x*factor) / factor
	if r == 0 {
		return 0
	}
	return r
}
