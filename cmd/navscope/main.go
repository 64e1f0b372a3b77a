package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	format  string
)

var rootCmd = &cobra.Command{
	Use:   "navscope",
	Short: "navscope - mutual fund return and risk analyzer",
	Long: `navscope fetches mutual fund NAV history, computes trailing annualized
returns and volatility, and prints a report card or a side-by-side comparison.
Run without a command to start the interactive menu.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: text, json or markdown")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
