package analytics

import (
	"fmt"
	"time"

	"github.com/newthinker/navscope/internal/core"
)

// DefaultHorizons are the trailing return horizons in years
var DefaultHorizons = []int{1, 3, 5}

// Report holds the computed figures for one scheme
type Report struct {
	core.FundMetadata

	LatestValue  float64
	LatestDate   time.Time
	FirstDate    time.Time
	Observations int

	Returns    []TrailingReturn
	Volatility Metric
}

// Return looks up the trailing return for a horizon
func (r *Report) Return(years int) (Metric, bool) {
	for _, tr := range r.Returns {
		if tr.Years == years {
			return tr.Metric, true
		}
	}
	return Metric{}, false
}

// Calculator produces reports from NAV series
type Calculator struct {
	horizons []int
}

// NewCalculator creates a calculator for the given horizons, or the
// default 1/3/5 years when none are given
func NewCalculator(horizons ...int) *Calculator {
	if len(horizons) == 0 {
		horizons = DefaultHorizons
	}
	h := make([]int, len(horizons))
	copy(h, horizons)
	return &Calculator{horizons: h}
}

// Horizons returns the configured horizons
func (c *Calculator) Horizons() []int {
	h := make([]int, len(c.horizons))
	copy(h, c.horizons)
	return h
}

// Calculate builds a report from metadata and a normalized series.
// Per-field problems degrade that field only; the call fails when the
// scheme has no name or fewer than two valid observations.
func (c *Calculator) Calculate(meta core.FundMetadata, series core.Series) (*Report, error) {
	if !meta.IsValid() {
		return nil, core.WrapError(core.ErrMissingMetadata,
			fmt.Errorf("scheme %q has no name", meta.Code))
	}
	if len(series) < 2 {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("scheme %q has %d valid observations", meta.Code, len(series)))
	}

	latest := series.Latest()
	report := &Report{
		FundMetadata: meta,
		LatestValue:  latest.Value,
		LatestDate:   latest.Date,
		FirstDate:    series[0].Date,
		Observations: len(series),
		Returns:      make([]TrailingReturn, 0, len(c.horizons)),
		Volatility:   Volatility(series),
	}
	for _, years := range c.horizons {
		report.Returns = append(report.Returns, TrailingReturn{
			Years:  years,
			Metric: CAGR(series, years),
		})
	}

	return report, nil
}

// Analyze normalizes raw provider points and calculates the report
func (c *Calculator) Analyze(meta core.FundMetadata, points []core.RawPoint) (*Report, error) {
	return c.Calculate(meta, NormalizeSeries(points))
}
