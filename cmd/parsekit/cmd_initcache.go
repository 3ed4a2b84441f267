package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"parsekit/internal/cache"
	"parsekit/internal/config"
)

// initCacheCmd bootstraps the cache under the primary config directory
var initCacheCmd = &cobra.Command{
	Use:   "init-cache",
	Short: "Initialize the cache under the primary configuration directory",
	Long: `Loads configuration, parses the directory list and manifest
attributes once at the boundary, and creates the cache under the first
configured directory.

Example:
  CONFIG_DIRS=/etc/app,/usr/share/app parsekit init-cache`,
	Args: cobra.NoArgs,
	RunE: runInitCache,
}

func runInitCache(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// The boundary: both parses happen here, once. Past this point the
	// refined types carry the guarantees.
	dirs, err := cfg.ConfigDirs()
	if err != nil {
		return err
	}
	attrs, err := cfg.AttributeMap()
	if err != nil {
		return err
	}

	logger.Info("Configuration parsed",
		zap.String("primary_dir", dirs.Head()),
		zap.Strings("fallback_dirs", dirs.Tail()))

	cacheDir, err := cache.Initialize(ctx, logger, dirs, attrs)
	if err != nil {
		return fmt.Errorf("cache initialization failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cacheDir)
	return nil
}
