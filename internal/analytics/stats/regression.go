package stats

import (
	"fmt"
	"math"
)

// Regression is an ordinary least squares fit over evenly spaced points
// (x = 0, 1, ..., n-1).
type Regression struct {
	Slope     float64
	Intercept float64
	R2        float64
}

func LinearRegression(ys []float64) Regression {
	n := float64(len(ys))
	if len(ys) < 2 {
		var intercept float64
		if len(ys) == 1 {
			intercept = ys[0]
		}
		return Regression{Intercept: intercept}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range ys {
		predicted := intercept + slope*float64(i)
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}

	// A series with no variance carries no fit information, so report R2 as 0
	// rather than a perfect score.
	var r2 float64
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return Regression{Slope: slope, Intercept: intercept, R2: r2}
}

// InterpretTrend describes a fitted trend in plain language.
func InterpretTrend(slope, r2 float64) string {
	if r2 < 0.3 {
		return "No clear trend (high variability)"
	}
	if slope == 0 {
		return "Stable trend"
	}
	strength := "moderate"
	if r2 > 0.7 {
		strength = "strong"
	}
	direction := "increasing"
	if slope < 0 {
		direction = "decreasing"
	}
	return fmt.Sprintf("Clear %s %s trend", strength, direction)
}

// MovingAverage returns the average of the trailing window, or of all values
// when fewer than window are available.
func MovingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window <= 0 || window > len(values) {
		window = len(values)
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// CoefficientOfVariation is std dev over mean, 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	s := Summarize(values)
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / math.Abs(s.Mean)
}

// ConfidenceLabel maps relative variability to a confidence level.
func ConfidenceLabel(cv float64) string {
	switch {
	case cv < 0.2:
		return "high"
	case cv < 0.5:
		return "medium"
	default:
		return "low"
	}
}
