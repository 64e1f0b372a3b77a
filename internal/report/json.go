package report

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
	"github.com/newthinker/navscope/internal/core"
)

const isoDate = "2006-01-02"

// MetricView is a figure or the code of the reason it is missing
type MetricView struct {
	Years  int      `json:"years,omitempty"`
	Value  *float64 `json:"value"`
	Reason string   `json:"reason,omitempty"`
}

// FundView is the JSON form of a report
type FundView struct {
	core.FundMetadata
	LatestNAV    float64      `json:"latest_nav"`
	LatestDate   string       `json:"latest_date"`
	FirstDate    string       `json:"first_date"`
	Observations int          `json:"observations"`
	Returns      []MetricView `json:"returns"`
	Volatility   MetricView   `json:"volatility"`
}

// ResultView is one fund of a comparison
type ResultView struct {
	Code   string    `json:"code"`
	Report *FundView `json:"report,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// NewFundView converts a report for JSON output
func NewFundView(rep *analytics.Report) *FundView {
	v := &FundView{
		FundMetadata: rep.FundMetadata,
		LatestNAV:    rep.LatestValue,
		LatestDate:   rep.LatestDate.Format(isoDate),
		FirstDate:    rep.FirstDate.Format(isoDate),
		Observations: rep.Observations,
		Returns:      make([]MetricView, 0, len(rep.Returns)),
		Volatility:   metricView(0, rep.Volatility),
	}
	for _, tr := range rep.Returns {
		v.Returns = append(v.Returns, metricView(tr.Years, tr.Metric))
	}
	return v
}

// NewComparisonView converts comparison results for JSON output
func NewComparisonView(results []app.Result) []ResultView {
	out := make([]ResultView, 0, len(results))
	for _, res := range results {
		rv := ResultView{Code: res.Code}
		if res.OK() {
			rv.Report = NewFundView(res.Report)
		} else if res.Err != nil {
			rv.Error = res.Err.Error()
		}
		out = append(out, rv)
	}
	return out
}

func metricView(years int, m analytics.Metric) MetricView {
	mv := MetricView{Years: years}
	if m.Available() {
		v := m.Value
		mv.Value = &v
		return mv
	}
	var coded *core.Error
	if errors.As(m.Err, &coded) {
		mv.Reason = coded.Code
	} else {
		mv.Reason = m.Err.Error()
	}
	return mv
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
