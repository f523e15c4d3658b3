package main

import (
	"fmt"

	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/internal/logger"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Extract stat block files and store them",
		Long: `Extract every file concurrently and save the creatures to the database.
Importing the same text again replaces the stored creature.

Example:
  barn import monsters/*.txt
  barn import --workers 8 bestiary/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			if workers <= 0 {
				workers = a.cfg.BatchWorkers
			}
			ctx := cmd.Context()

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := []batch.Option{batch.WithLogger(a.log)}
			recordCache, err := a.openCache(ctx)
			if err != nil {
				a.log.Warn("Record cache unavailable, continuing without it", "error", err)
			} else if recordCache != nil {
				defer recordCache.Close()
				opts = append(opts, batch.WithCache(recordCache))
			}

			results, err := batch.NewProcessor(workers, opts...).ProcessFiles(ctx, args)
			if err != nil {
				return fmt.Errorf("import interrupted: %w", err)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(out, "skipped %s: %v\n", res.Path, res.Err)
					continue
				}
				c := creature.FromRecord(res.ID, res.Record)
				if err := store.SaveCreature(ctx, c); err != nil {
					failed++
					logger.WithCreature(a.log, c.ID).Error("Failed to save creature", "path", res.Path, "error", err)
					fmt.Fprintf(out, "failed %s: %v\n", res.Path, err)
					continue
				}
				fmt.Fprintf(out, "imported %s %s\n", c.ID, c.Name)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files were not imported", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntP("workers", "w", 0, "Concurrent extractions (default $BATCH_WORKERS)")
	return cmd
}
