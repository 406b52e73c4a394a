package utils

import (
	"math"
	"strconv"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MontantEntier renders an amount for display: rounded to the nearest
// franc, no decimals. Every printed or looked-up amount goes through this.
func MontantEntier(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}
