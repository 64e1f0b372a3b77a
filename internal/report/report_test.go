package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
	"github.com/newthinker/navscope/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *analytics.Report {
	return &analytics.Report{
		FundMetadata: core.FundMetadata{
			Code:      "120828",
			Name:      "Quant Small Cap Fund - Growth Option - Direct Plan",
			FundHouse: "Quant Mutual Fund",
			Category:  "Equity Scheme - Small Cap Fund",
			Type:      "Open Ended Schemes",
		},
		LatestValue:  1234.5678,
		LatestDate:   time.Date(2024, time.October, 25, 0, 0, 0, 0, time.UTC),
		FirstDate:    time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC),
		Observations: 700,
		Returns: []analytics.TrailingReturn{
			{Years: 1, Metric: analytics.Value(42.17)},
			{Years: 3, Metric: analytics.Value(-3.5)},
			{Years: 5, Metric: analytics.NotAvailable(core.WrapError(core.ErrInsufficientHistory, fmt.Errorf("short")))},
		},
		Volatility: analytics.Value(18.04),
	}
}

func mustRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, FormatText, r.Format())

	_, err = New(Options{Format: "csv"})
	assert.ErrorIs(t, err, core.ErrConfigInvalid)

	_, err = New(Options{Currency: "XYZ"})
	assert.ErrorIs(t, err, core.ErrConfigInvalid)

	_, err = New(Options{Currency: "usd"})
	assert.NoError(t, err)
}

func TestFormatting(t *testing.T) {
	r := mustRenderer(t, Options{Currency: "INR"})
	assert.Equal(t, "₹1,234.5678", r.formatNAV(1234.5678))
	assert.Equal(t, "₹12.3000", r.formatNAV(12.3))

	usd := mustRenderer(t, Options{Currency: "USD"})
	assert.Equal(t, "$1,234.5678", usd.formatNAV(1234.5678))

	assert.Equal(t, "12.34 %", formatReturn(analytics.Value(12.34)))
	assert.Equal(t, "-0.50 %", formatReturn(analytics.Value(-0.5)))
	assert.Equal(t, "N/A (New Fund)", formatReturn(analytics.NotAvailable(core.ErrInsufficientHistory)))
	assert.Equal(t, "N/A", formatReturn(analytics.NotAvailable(core.ErrUndefinedReturn)))

	assert.Equal(t, "0.00 % (Higher is riskier)", formatVolatility(analytics.Value(0)))
	assert.Equal(t, "N/A", formatVolatility(analytics.NotAvailable(core.ErrNoVolatilityData)))
}

func TestCard_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{}).Card(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "FUND REPORT CARD")
	assert.Contains(t, out, "Scheme Name          : Quant Small Cap Fund - Growth Option - Direct Plan\n")
	assert.Contains(t, out, "Current NAV          : ₹1,234.5678\n")
	assert.Contains(t, out, "1-Year Return        : 42.17 %\n")
	assert.Contains(t, out, "3-Year Return        : -3.50 %\n")
	assert.Contains(t, out, "5-Year Return        : N/A (New Fund)\n")
	assert.Contains(t, out, "Risk (Volatility)    : 18.04 % (Higher is riskier)\n")
	assert.Contains(t, out, "Last Updated         : 25-Oct-2024\n")

	// Field order follows the card layout
	assert.Less(t, strings.Index(out, "Fund House"), strings.Index(out, "Current NAV"))
	assert.Less(t, strings.Index(out, "5-Year Return"), strings.Index(out, "Risk (Volatility)"))
}

func TestComparison_Text(t *testing.T) {
	results := []app.Result{
		{Code: "120828", Report: sampleReport()},
		{Code: "999999", Err: fmt.Errorf("fetching details: %w", core.ErrSchemeNotFound)},
	}

	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{}).Comparison(&buf, results))
	out := buf.String()

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "120828")
	assert.Contains(t, lines[0], "999999")

	var navLine string
	for _, l := range lines {
		if strings.HasPrefix(l, "Current NAV") {
			navLine = l
		}
	}
	assert.Contains(t, navLine, "₹1,234.5678")
	assert.Contains(t, navLine, "no data")
	assert.Contains(t, out, "999999: scheme not found")
}

func TestComparison_AllFailed(t *testing.T) {
	results := []app.Result{
		{Code: "1", Err: core.ErrSchemeNotFound},
		{Code: "2", Err: core.ErrInsufficientData},
	}

	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{}).Comparison(&buf, results))
	out := buf.String()
	assert.Contains(t, out, "1-Year Return")
	assert.Contains(t, out, "1: scheme not found")
	assert.Contains(t, out, "2: insufficient data for analysis")
}

func TestCard_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{Format: FormatJSON}).Card(&buf, sampleReport()))

	var v FundView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "120828", v.Code)
	assert.Equal(t, "Quant Mutual Fund", v.FundHouse)
	assert.Equal(t, "2024-10-25", v.LatestDate)
	require.Len(t, v.Returns, 3)
	require.NotNil(t, v.Returns[0].Value)
	assert.Equal(t, 42.17, *v.Returns[0].Value)
	assert.Nil(t, v.Returns[2].Value)
	assert.Equal(t, "INSUFFICIENT_HISTORY", v.Returns[2].Reason)
	require.NotNil(t, v.Volatility.Value)
	assert.Equal(t, 18.04, *v.Volatility.Value)
}

func TestComparison_JSON(t *testing.T) {
	results := []app.Result{
		{Code: "120828", Report: sampleReport()},
		{Code: "999999", Err: core.ErrSchemeNotFound},
	}

	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{Format: FormatJSON}).Comparison(&buf, results))

	var v []ResultView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	require.Len(t, v, 2)
	assert.NotNil(t, v[0].Report)
	assert.Empty(t, v[0].Error)
	assert.Nil(t, v[1].Report)
	assert.Contains(t, v[1].Error, "SCHEME_NOT_FOUND")
}

func TestMarkdown_Templates(t *testing.T) {
	r := mustRenderer(t, Options{})

	md, err := Markdown("card.md", cardData{Rows: r.rows(sampleReport())})
	require.NoError(t, err)
	assert.Contains(t, md, "| Field | Value |")
	assert.Contains(t, md, "| 1-Year Return | 42.17 % |")

	results := []app.Result{
		{Code: "120828", Report: sampleReport()},
		{Code: "1", Err: core.ErrSchemeNotFound},
	}
	md, err = Markdown("comparison.md", r.comparisonData(results))
	require.NoError(t, err)
	assert.Contains(t, md, "| Field | 120828 | 1 |")
	assert.Contains(t, md, "|---|---|---|")
	assert.Contains(t, md, "| Type | Open Ended Schemes | no data |")
	assert.Contains(t, md, "- **1**: scheme not found")
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	rep := sampleReport()
	rep.Name = "A | B Fund"
	md, err := Markdown("card.md", cardData{Rows: mustRenderer(t, Options{}).rows(rep)})
	require.NoError(t, err)
	assert.Contains(t, md, `A \| B Fund`)
}

func TestCard_MarkdownRendered(t *testing.T) {
	var buf bytes.Buffer
	r := mustRenderer(t, Options{Format: FormatMarkdown, Style: "notty"})
	require.NoError(t, r.Card(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "Fund Report Card")
	assert.Contains(t, buf.String(), "42.17 %")
}

func TestMatches(t *testing.T) {
	schemes := []core.Scheme{
		{Code: "120828", Name: "Quant Small Cap Fund"},
		{Code: "125497", Name: "SBI Small Cap Fund"},
	}

	var buf bytes.Buffer
	require.NoError(t, mustRenderer(t, Options{}).Matches(&buf, "small", 9, schemes))
	assert.Equal(t, "Found 9 funds. Showing top 2:\n[120828] Quant Small Cap Fund\n[125497] SBI Small Cap Fund\n", buf.String())

	buf.Reset()
	require.NoError(t, mustRenderer(t, Options{}).Matches(&buf, "gilt", 0, nil))
	assert.Equal(t, "No funds found.\n", buf.String())

	buf.Reset()
	require.NoError(t, mustRenderer(t, Options{Format: FormatJSON}).Matches(&buf, "gilt", 0, nil))
	var v MatchesView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "gilt", v.Query)
	assert.NotNil(t, v.Schemes)
	assert.Empty(t, v.Schemes)

	md, err := Markdown("matches.md", MatchesView{Query: "small", Total: 9, Schemes: schemes})
	require.NoError(t, err)
	assert.Contains(t, md, "| 125497 | SBI Small Cap Fund |")
}
