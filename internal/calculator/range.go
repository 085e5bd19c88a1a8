package calculator

import (
	"errors"
	"math"

	"Canari/internal/model"
)

// SeriesRange returns the high and low price of a chart series.
func SeriesRange(points []model.PricePoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no price points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, nil
}

// TrimTail keeps the most recent n points.
func TrimTail(points []model.PricePoint, n int) []model.PricePoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
