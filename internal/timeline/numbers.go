package timeline

import (
	"math"
	"strings"
)

// Round2 rounds durations to two decimals, half away from zero.
func Round2(v float64) float64 {
	return roundTo(v, 100)
}

// Round1 rounds percentages to one decimal, half away from zero.
func Round1(v float64) float64 {
	return roundTo(v, 10)
}

func roundTo(v, scale float64) float64 {
	if !finite(v) {
		return v
	}
	return math.Round(v*scale) / scale
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
