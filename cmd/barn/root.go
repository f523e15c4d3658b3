package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/creature-barn/internal/cache"
	"github.com/jwebster45206/creature-barn/internal/config"
	"github.com/jwebster45206/creature-barn/internal/logger"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "barn",
		Short: "Creature stat block extractor",
		Long: `Barn turns free-text creature stat blocks into a fixed set of named
fields, and keeps the results in a local SQLite database.

Example:
  barn parse goblin.txt
  barn import monsters/*.txt
  barn list`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if db, _ := cmd.Flags().GetString("db"); strings.TrimSpace(db) != "" {
				cfg.DBPath = db
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.LogLevel = slog.LevelDebug
			}
			a.cfg = cfg
			// stdout carries reports; logs go to stderr.
			a.log = logger.SetupWriter(cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default $DB_PATH or creature_barn.db)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(a.parseCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.importCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.initDBCmd())

	return rootCmd
}

func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.Open(ctx, a.cfg.DBPath, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", a.cfg.DBPath, err)
	}
	return store, nil
}

// openCache returns nil with no error when REDIS_URL is unset.
func (a *app) openCache(ctx context.Context) (cache.Cache, error) {
	if a.cfg.RedisURL == "" {
		return nil, nil
	}
	c, err := cache.NewRedisCache(a.cfg.RedisURL, a.cfg.CacheTTL, a.log)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
