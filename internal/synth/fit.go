package synth

import (
	"math"

	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
)

// #region fit
// Fit computes an ordinary-least-squares linear fit over the entries'
// (input, output) pairs. A zero-variance input set degenerates to a flat
// fit: slope 0, intercept = mean output, R² 0. Never fails.
func Fit(entries []history.Entry) FitResult {
	n := float64(len(entries))
	if n == 0 {
		return FitResult{Degenerate: true}
	}

	var sumX, sumY float64
	for _, e := range entries {
		sumX += e.Input
		sumY += e.Output
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, e := range entries {
		dx := e.Input - meanX
		sxx += dx * dx
		sxy += dx * (e.Output - meanY)
	}

	if sxx < varianceEpsilon {
		return FitResult{
			Slope:      0,
			Intercept:  meanY,
			RSquared:   0,
			Samples:    len(entries),
			Degenerate: true,
		}
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	// Coefficient of determination: 1 - SSres/SStot.
	var ssRes, ssTot float64
	for _, e := range entries {
		pred := slope*e.Input + intercept
		ssRes += (e.Output - pred) * (e.Output - pred)
		ssTot += (e.Output - meanY) * (e.Output - meanY)
	}

	var r2 float64
	if ssTot < varianceEpsilon {
		// Constant outputs: a flat line fits them exactly.
		r2 = 1
		if ssRes >= varianceEpsilon {
			r2 = 0
		}
	} else {
		r2 = 1 - ssRes/ssTot
	}

	return FitResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Samples:   len(entries),
	}
}

// varianceEpsilon guards the degenerate-input and constant-output paths.
const varianceEpsilon = 1e-12

// #endregion fit

// #region round
// Round3 rounds a coefficient to 3 decimals, the precision synthesized
// rules carry.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// #endregion round
