// Package stats holds the small amount of descriptive statistics the
// dashboard needs: an ordinary least squares trendline and Pearson's r.
package stats

import "math"

// Fit is a simple linear regression y = Slope*x + Intercept.
type Fit struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	RSquared  float64 `json:"r_squared" yaml:"r_squared"`
	N         int     `json:"n" yaml:"n"`
	Valid     bool    `json:"valid" yaml:"valid"`
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// OLS fits y on x. Pairs where either value is non-finite are skipped.
// The fit is invalid with fewer than two points or zero variance in x.
func OLS(x, y []float64) Fit {
	xs, ys := finitePairs(x, y)
	fit := Fit{N: len(xs)}
	if len(xs) < 2 {
		return fit
	}

	meanX, meanY := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 {
		return fit
	}

	fit.Slope = sxy / sxx
	fit.Intercept = meanY - fit.Slope*meanX
	fit.Valid = true
	if syy == 0 {
		fit.RSquared = 1
	} else {
		fit.RSquared = (sxy * sxy) / (sxx * syy)
	}
	return fit
}

// Pearson returns the correlation coefficient between x and y in [-1, 1],
// or NaN when it is undefined (fewer than two points or zero variance).
func Pearson(x, y []float64) float64 {
	xs, ys := finitePairs(x, y)
	if len(xs) < 2 {
		return math.NaN()
	}

	meanX, meanY := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

func finitePairs(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !finite(x[i]) || !finite(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
