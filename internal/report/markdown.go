package report

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"cell": func(s string) string {
		return strings.ReplaceAll(s, "|", `\|`)
	},
}

var tmpl = template.Must(template.New("report").Funcs(funcs).ParseFS(templates, "templates/*.md"))

type cardData struct {
	Rows []row
}

// Markdown returns the unrendered markdown for a template and its data
func Markdown(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return b.String(), nil
}

func (r *Renderer) renderMarkdown(w io.Writer, name string, data any) error {
	md, err := Markdown(name, data)
	if err != nil {
		return err
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(r.opts.Style),
		glamour.WithWordWrap(r.opts.Width),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := term.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
