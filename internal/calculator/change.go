package calculator

import (
	"errors"
	"math"
)

// CalculateChange returns the absolute and percent move from previous to current.
func CalculateChange(previous, current float64) (change, changePercent float64, err error) {
	if previous <= 0 {
		return 0, 0, errors.New("previous price must be positive")
	}
	change = current - previous
	return change, change / previous * 100, nil
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
