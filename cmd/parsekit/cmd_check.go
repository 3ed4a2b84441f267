package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"parsekit/internal/cache"
	"parsekit/internal/config"
)

// checkCmd verifies every configured directory
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that all configured directories are usable",
	Long: `Loads configuration, parses the directory list once, and checks
each directory for existence and writability. Exits non-zero if any
directory is unusable.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	dirs, err := cfg.ConfigDirs()
	if err != nil {
		return err
	}

	statuses := cache.Verify(ctx, logger, dirs)

	bad := 0
	for _, s := range statuses {
		mark := "ok"
		if !s.OK() {
			mark = "UNUSABLE"
			bad++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", mark, s.Path)
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d configured directories are unusable", bad, len(statuses))
	}
	return nil
}
