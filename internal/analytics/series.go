package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/newthinker/navscope/internal/core"
)

// Date layouts accepted for provider dates. Day-first comes first because
// that is what mfapi and AMFI serve.
var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02-Jan-2006",
}

// ParseDate parses a provider date in any accepted layout
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNAV parses a provider NAV. Negative, non-finite and unparseable
// values are rejected.
func ParseNAV(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// NormalizeSeries turns raw provider points into a Series: invalid points
// are dropped, the rest sorted ascending by date. When a date repeats, the
// last valid occurrence in provider order wins.
func NormalizeSeries(points []core.RawPoint) core.Series {
	series := make(core.Series, 0, len(points))
	index := make(map[time.Time]int, len(points))

	for _, p := range points {
		date, ok := ParseDate(p.Date)
		if !ok {
			continue
		}
		value, ok := ParseNAV(p.NAV)
		if !ok {
			continue
		}
		if i, dup := index[date]; dup {
			series[i].Value = value
			continue
		}
		index[date] = len(series)
		series = append(series, core.Observation{Date: date, Value: value})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}
