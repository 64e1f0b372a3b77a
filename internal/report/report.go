// Package report formats analysis results as a text card, a side-by-side
// comparison, JSON or terminal-rendered markdown.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
	"github.com/newthinker/navscope/internal/core"
	"github.com/shopspring/decimal"
)

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

const (
	dateLayout = "02-Jan-2006"
	navDigits  = 4
	noData     = "no data"
)

// Options configures a Renderer
type Options struct {
	Format   string
	Currency string // ISO 4217 code for NAV display
	Style    string // glamour style name or path
	Width    int    // markdown word wrap
}

// Renderer writes reports in the configured format
type Renderer struct {
	opts Options
	cur  money.Currency
}

// New creates a Renderer. Unknown formats or currencies are rejected.
func New(opts Options) (*Renderer, error) {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	switch opts.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown report format %q", opts.Format))
	}
	if opts.Currency == "" {
		opts.Currency = money.INR
	}
	cur := money.GetCurrency(strings.ToUpper(opts.Currency))
	if cur == nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown currency %q", opts.Currency))
	}
	if opts.Style == "" {
		opts.Style = "auto"
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}
	return &Renderer{opts: opts, cur: *cur}, nil
}

// Format returns the output format
func (r *Renderer) Format() string {
	return r.opts.Format
}

// row is one labelled field of a report card
type row struct {
	Label string
	Value string
}

// rows lays out a report as the card fields in display order
func (r *Renderer) rows(rep *analytics.Report) []row {
	out := []row{
		{"Scheme Name", rep.Name},
		{"Fund House", rep.FundHouse},
		{"Category", rep.Category},
		{"Type", rep.Type},
		{"Current NAV", r.formatNAV(rep.LatestValue)},
	}
	for _, tr := range rep.Returns {
		out = append(out, row{returnLabel(tr.Years), formatReturn(tr.Metric)})
	}
	out = append(out,
		row{"Risk (Volatility)", formatVolatility(rep.Volatility)},
		row{"Last Updated", rep.LatestDate.Format(dateLayout)},
	)
	return out
}

// labels returns the card field labels for the given horizons
func labels(horizons []int) []string {
	out := []string{"Scheme Name", "Fund House", "Category", "Type", "Current NAV"}
	for _, y := range horizons {
		out = append(out, returnLabel(y))
	}
	return append(out, "Risk (Volatility)", "Last Updated")
}

func returnLabel(years int) string {
	return fmt.Sprintf("%d-Year Return", years)
}

// formatNAV formats a NAV in the configured currency, keeping the four
// decimals NAVs are published with.
func (r *Renderer) formatNAV(v float64) string {
	f := money.NewFormatter(navDigits, r.cur.Decimal, r.cur.Thousand, r.cur.Grapheme, r.cur.Template)
	return f.Format(decimal.NewFromFloat(v).Shift(navDigits).Round(0).IntPart())
}

func formatReturn(m analytics.Metric) string {
	if m.Available() {
		return fmt.Sprintf("%.2f %%", m.Value)
	}
	if errors.Is(m.Err, core.ErrInsufficientHistory) {
		return "N/A (New Fund)"
	}
	return "N/A"
}

func formatVolatility(m analytics.Metric) string {
	if !m.Available() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f %% (Higher is riskier)", m.Value)
}

// horizonsOf returns the horizons of the first successful result
func horizonsOf(results []app.Result) []int {
	for _, res := range results {
		if !res.OK() {
			continue
		}
		h := make([]int, 0, len(res.Report.Returns))
		for _, tr := range res.Report.Returns {
			h = append(h, tr.Years)
		}
		return h
	}
	return analytics.DefaultHorizons
}

// reason is the short failure text shown for a fund without a report
func reason(err error) string {
	if err == nil {
		return "no report"
	}
	var coded *core.Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}
