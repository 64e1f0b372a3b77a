// Package console runs the interactive search, analyze and compare menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
	"github.com/newthinker/navscope/internal/core"
	"go.uber.org/zap"
)

// Catalog finds schemes by name and code
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]core.Scheme, int, error)
	Lookup(ctx context.Context, code string) (core.Scheme, bool, error)
}

// Analyzer produces reports for scheme codes
type Analyzer interface {
	Analyze(ctx context.Context, code string) (*analytics.Report, error)
	Compare(ctx context.Context, codes ...string) []app.Result
}

// Printer renders reports
type Printer interface {
	Card(w io.Writer, rep *analytics.Report) error
	Comparison(w io.Writer, results []app.Result) error
}

// Console is one interactive session over an input and an output stream
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	catalog  Catalog
	analyzer Analyzer
	printer  Printer
	limit    int
	logger   *zap.Logger
}

// New creates a console session. limit is the number of search matches shown.
func New(in io.Reader, out io.Writer, catalog Catalog, analyzer Analyzer, printer Printer, limit int, logger *zap.Logger) *Console {
	if limit <= 0 {
		limit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		catalog:  catalog,
		analyzer: analyzer,
		printer:  printer,
		limit:    limit,
		logger:   logger,
	}
}

// errEOF ends the session when input runs out
var errEOF = errors.New("end of input")

// Run shows the menu until the user exits, input ends or ctx is canceled
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.menu()
		choice, err := c.prompt("\nEnter choice (1-3): ")
		if err != nil {
			return c.end(err)
		}

		switch choice {
		case "1":
			err = c.searchAndAnalyze(ctx)
		case "2":
			err = c.compare(ctx)
		case "3":
			c.println("Goodbye.")
			return nil
		default:
			c.println("Invalid choice.")
		}
		if err != nil {
			return c.end(err)
		}
	}
}

func (c *Console) end(err error) error {
	if errors.Is(err, errEOF) {
		c.println("")
		return nil
	}
	return err
}

func (c *Console) menu() {
	c.println("\n" + strings.Repeat("=", 50))
	c.println("      MUTUAL FUND ANALYZER      ")
	c.println(strings.Repeat("=", 50))
	c.println("1. Search & Analyze Fund")
	c.println("2. Compare Two Funds")
	c.println("3. Exit")
}

func (c *Console) searchAndAnalyze(ctx context.Context) error {
	query, err := c.prompt("Enter Fund Name (e.g. Quant Small): ")
	if err != nil {
		return err
	}

	matches, total, err := c.catalog.Search(ctx, query, c.limit)
	switch {
	case errors.Is(err, core.ErrInvalidQuery):
		c.println("Please enter part of a fund name.")
		return nil
	case err != nil:
		c.logger.Warn("catalog search failed", zap.Error(err))
		c.println("Error: Could not load the scheme catalog.")
		return nil
	case total == 0:
		c.println("No funds found.")
		return nil
	}

	c.printf("\nFound %d funds. Showing top %d:\n", total, len(matches))
	for _, s := range matches {
		c.printf("[%s] %s\n", s.Code, s.Name)
	}

	code, err := c.prompt("\nEnter Code to Analyze: ")
	if err != nil {
		return err
	}
	if _, ok, err := c.catalog.Lookup(ctx, code); err != nil || !ok {
		c.println("Invalid Code.")
		return nil
	}

	c.println("\nProcessing... fetching NAV history...")
	rep, err := c.analyzer.Analyze(ctx, code)
	if err != nil {
		c.logger.Debug("analysis failed", zap.String("code", code), zap.Error(err))
		c.println("Error: Could not fetch detailed history.")
		return nil
	}

	c.println("")
	return c.printer.Card(c.out, rep)
}

func (c *Console) compare(ctx context.Context) error {
	first, err := c.prompt("Enter First Fund Code: ")
	if err != nil {
		return err
	}
	second, err := c.prompt("Enter Second Fund Code: ")
	if err != nil {
		return err
	}

	c.println("\nComparing... This may take a few seconds...")
	results := c.analyzer.Compare(ctx, first, second)
	c.println("")
	return c.printer.Comparison(c.out, results)
}

func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", errEOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
