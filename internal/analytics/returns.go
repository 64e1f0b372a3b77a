package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/newthinker/navscope/internal/core"
)

// DaysPerYear is the fixed year length used to find horizon start dates
const DaysPerYear = 365

// TrailingReturn holds the annualized return over the last Years years
type TrailingReturn struct {
	Years int
	Metric
}

// CAGR calculates the trailing compound annual growth rate over the given
// number of years, in percent rounded to 2 decimals.
//
// The start NAV is the first observation on or after latest - years*365
// days, found by binary search. A weekend or holiday target therefore
// starts from the next published NAV.
func CAGR(series core.Series, years int) Metric {
	if len(series) == 0 || years <= 0 {
		return NotAvailable(core.WrapError(core.ErrInsufficientHistory,
			fmt.Errorf("%d observations for %d year horizon", len(series), years)))
	}

	latest := series.Latest()
	target := latest.Date.AddDate(0, 0, -years*DaysPerYear)

	if series[0].Date.After(target) {
		return NotAvailable(core.WrapError(core.ErrInsufficientHistory,
			fmt.Errorf("history starts %s, %d year horizon needs %s",
				series[0].Date.Format("2006-01-02"), years, target.Format("2006-01-02"))))
	}

	idx := sort.Search(len(series), func(i int) bool {
		return !series[i].Date.Before(target)
	})
	if idx >= len(series) {
		return NotAvailable(core.ErrInsufficientHistory)
	}

	start := series[idx].Value
	if start <= 0 {
		return NotAvailable(core.WrapError(core.ErrUndefinedReturn,
			fmt.Errorf("start NAV %g on %s", start, series[idx].Date.Format("2006-01-02"))))
	}

	cagr := math.Pow(latest.Value/start, 1/float64(years)) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return NotAvailable(core.ErrUndefinedReturn)
	}

	return Value(round2(cagr * 100))
}
