package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
)

const cardRule = 30

// Card writes the report card of one fund
func (r *Renderer) Card(w io.Writer, rep *analytics.Report) error {
	switch r.opts.Format {
	case FormatJSON:
		return writeJSON(w, NewFundView(rep))
	case FormatMarkdown:
		return r.renderMarkdown(w, "card.md", cardData{Rows: r.rows(rep)})
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("-", cardRule) + "\n")
	b.WriteString("       FUND REPORT CARD       \n")
	b.WriteString(strings.Repeat("-", cardRule) + "\n")
	for _, f := range r.rows(rep) {
		fmt.Fprintf(&b, "%-20s : %s\n", f.Label, f.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Comparison writes funds side by side, one column per fund. Funds that
// failed show "no data" and their reason is listed under the table.
func (r *Renderer) Comparison(w io.Writer, results []app.Result) error {
	switch r.opts.Format {
	case FormatJSON:
		return writeJSON(w, NewComparisonView(results))
	case FormatMarkdown:
		return r.renderMarkdown(w, "comparison.md", r.comparisonData(results))
	}

	data := r.comparisonData(results)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FIELD\t%s\n", strings.Join(data.Headers, "\t"))
	for _, line := range data.Lines {
		fmt.Fprintf(tw, "%s\t%s\n", line.Label, strings.Join(line.Values, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(data.Failures) > 0 {
		fmt.Fprintln(w)
		for _, f := range data.Failures {
			fmt.Fprintf(w, "%s: %s\n", f.Label, f.Value)
		}
	}
	return nil
}

type comparisonLine struct {
	Label  string
	Values []string
}

type comparisonData struct {
	Headers  []string
	Lines    []comparisonLine
	Failures []row
}

func (r *Renderer) comparisonData(results []app.Result) comparisonData {
	var data comparisonData
	columns := make([]map[string]string, len(results))
	for i, res := range results {
		data.Headers = append(data.Headers, res.Code)
		if !res.OK() {
			data.Failures = append(data.Failures, row{res.Code, reason(res.Err)})
			continue
		}
		columns[i] = make(map[string]string)
		for _, f := range r.rows(res.Report) {
			columns[i][f.Label] = f.Value
		}
	}

	for _, label := range labels(horizonsOf(results)) {
		line := comparisonLine{Label: label}
		for _, col := range columns {
			v := noData
			if col != nil {
				if s, ok := col[label]; ok {
					v = s
				} else {
					v = "N/A"
				}
			}
			line.Values = append(line.Values, v)
		}
		data.Lines = append(data.Lines, line)
	}
	return data
}
