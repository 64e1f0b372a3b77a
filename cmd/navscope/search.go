package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the scheme catalog by name",
	Long:  "List schemes whose name contains the query, ignoring case, in catalog order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum matches to show (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	limit := e.cfg.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}

	query := strings.Join(args, " ")
	matches, total, err := e.catalog.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("searching %q: %w", query, err)
	}
	return e.printer.Matches(cmd.OutOrStdout(), query, total, matches)
}
