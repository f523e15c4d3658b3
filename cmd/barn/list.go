package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored creatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListCreatures(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No creatures stored.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "CR", "TYPE")
			for _, s := range summaries {
				t.Row(s.ID, s.Name, s.CR, s.Type)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored creature's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withActor, _ := cmd.Flags().GetBool("actor")

			store, err := a.openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := store.GetCreature(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, statblock.Render(c.Record))
			if withActor {
				return printActor(cmd, c)
			}
			return nil
		},
	}

	cmd.Flags().Bool("actor", false, "Also print the d20 combat actor")
	return cmd
}

func printActor(cmd *cobra.Command, c *creature.Creature) error {
	actor, err := c.Actor()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nActor: HP %d/%d, AC %d\n", actor.HP(), actor.MaxHP(), actor.AC())
	bonuses := c.AttackBonuses()
	for _, name := range slices.Sorted(maps.Keys(bonuses)) {
		fmt.Fprintf(out, "  %s %+d\n", name, bonuses[name])
	}
	return nil
}

func (a *app) initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database and apply migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", a.cfg.DBPath)
			return nil
		},
	}
}
