package report

import (
	"fmt"
	"io"

	"github.com/newthinker/navscope/internal/core"
)

// MatchesView is the JSON form of a search result
type MatchesView struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Schemes []core.Scheme `json:"schemes"`
}

// Matches writes catalog search results
func (r *Renderer) Matches(w io.Writer, query string, total int, schemes []core.Scheme) error {
	view := MatchesView{Query: query, Total: total, Schemes: schemes}
	if view.Schemes == nil {
		view.Schemes = []core.Scheme{}
	}

	switch r.opts.Format {
	case FormatJSON:
		return writeJSON(w, view)
	case FormatMarkdown:
		return r.renderMarkdown(w, "matches.md", view)
	}

	if total == 0 {
		_, err := fmt.Fprintln(w, "No funds found.")
		return err
	}
	fmt.Fprintf(w, "Found %d funds. Showing top %d:\n", total, len(schemes))
	for _, s := range schemes {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", s.Code, s.Name); err != nil {
			return err
		}
	}
	return nil
}
