package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [code] [code]",
	Short: "Compare two funds side by side",
	Long:  "Analyze two schemes and print their report cards as columns. A fund that cannot be analyzed shows no data.",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	results := e.analyzer.Compare(ctx, args...)
	if err := e.printer.Comparison(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	for _, res := range results {
		if res.OK() {
			return nil
		}
	}
	return fmt.Errorf("none of %d funds could be analyzed", len(results))
}
