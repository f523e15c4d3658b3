package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/spf13/cobra"
)

type parseOutput struct {
	ID     string            `json:"id"`
	Source string            `json:"source"`
	Fields []statblock.Entry `json:"fields"`
}

func (a *app) parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Extract one stat block and print its fields",
		Long: `Extract one stat block and print every field, one "Field: value" line
each, in canonical order. Use - to read from standard input.

Example:
  barn parse goblin.txt
  pbpaste | barn parse - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			text, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			rec := statblock.Extract(text)
			a.log.Debug("Stat block extracted", "source", args[0])

			out := cmd.OutOrStdout()
			if !asJSON {
				_, err := io.WriteString(out, statblock.Render(rec))
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(parseOutput{
				ID:     creature.IDFor(text),
				Source: args[0],
				Fields: statblock.Entries(rec),
			})
		},
	}

	cmd.Flags().Bool("json", false, "Print JSON instead of the text report")
	return cmd
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
