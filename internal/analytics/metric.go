package analytics

import (
	"github.com/shopspring/decimal"
)

// Metric is a computed figure, or the reason it could not be computed
type Metric struct {
	Value float64
	Err   error
}

// Value wraps a computed figure
func Value(v float64) Metric {
	return Metric{Value: v}
}

// NotAvailable wraps the reason a figure is missing
func NotAvailable(err error) Metric {
	return Metric{Err: err}
}

// Available reports whether the metric holds a value
func (m Metric) Available() bool {
	return m.Err == nil
}

// round2 rounds half away from zero to two decimals. It works on the
// shortest decimal form of v, so round2(1.005) is 1.01 where rounding the
// binary value (as Python's round does) gives 1.0.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
