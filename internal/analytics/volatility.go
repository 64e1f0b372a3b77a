package analytics

import (
	"fmt"
	"math"

	"github.com/newthinker/navscope/internal/core"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes the stddev of period-over-period changes
const TradingDaysPerYear = 252

// Changes converts NAVs to fractional period-over-period changes.
// Entries with a zero previous NAV or a non-finite result are skipped.
func Changes(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		c := values[i]/values[i-1] - 1
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		changes = append(changes, c)
	}
	return changes
}

// Volatility calculates annualized volatility in percent: the sample
// stddev of changes times sqrt(252), rounded to 2 decimals.
func Volatility(series core.Series) Metric {
	changes := Changes(series.Values())
	if len(changes) < 2 {
		return NotAvailable(core.WrapError(core.ErrNoVolatilityData,
			fmt.Errorf("%d valid changes", len(changes))))
	}

	// stat.StdDev is the unbiased (N-1) estimator
	sd := stat.StdDev(changes, nil)
	if math.IsNaN(sd) || math.IsInf(sd, 0) {
		return NotAvailable(core.ErrNoVolatilityData)
	}

	return Value(round2(sd * math.Sqrt(TradingDaysPerYear) * 100))
}
