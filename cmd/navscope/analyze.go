package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [code]",
	Short: "Print the report card of one fund",
	Long:  "Fetch a scheme's NAV history and print its trailing returns and volatility",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rep, err := e.analyzer.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", args[0], err)
	}
	return e.printer.Card(cmd.OutOrStdout(), rep)
}
