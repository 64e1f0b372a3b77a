package main

import (
	"fmt"
	"time"

	"github.com/newthinker/navscope/internal/provider/cached"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache entries from previous days",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if e.store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled, nothing to prune.")
		return nil
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	removed, err := cached.Prune(ctx, e.store, time.Now())
	if err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}
	e.log.Info("cache pruned", zap.Int("removed", removed))
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale cache entries.\n", removed)
	return nil
}
