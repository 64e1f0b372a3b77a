package main

import (
	"github.com/newthinker/navscope/internal/console"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive search and compare menu",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), e.catalog, e.analyzer, e.printer, e.cfg.Search.Limit, e.log)
	return c.Run(ctx)
}
