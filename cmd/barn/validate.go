package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/spf13/cobra"
)

var defaultRequired = []string{
	string(statblock.FieldName),
	string(statblock.FieldCR),
	string(statblock.FieldAlignment),
	string(statblock.FieldType),
	string(statblock.FieldAC),
	string(statblock.FieldHP),
	string(statblock.FieldSpeed),
}

var leadingNumber = regexp.MustCompile(`^\d+`)

// blockValidator collects the problems found in one extracted record.
type blockValidator struct {
	required []statblock.Field
	errors   []string
}

func newBlockValidator(required []string) (*blockValidator, error) {
	v := &blockValidator{}
	for _, name := range required {
		f := statblock.Field(strings.TrimSpace(name))
		if !statblock.IsField(f) {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		v.required = append(v.required, f)
	}
	return v, nil
}

func (v *blockValidator) validate(rec statblock.Record) []string {
	v.errors = nil
	for _, f := range v.required {
		if rec.Get(f) == "" {
			v.errors = append(v.errors, fmt.Sprintf("missing %s", f))
		}
	}
	v.validateNumbers(rec)
	return v.errors
}

// validateNumbers flags AC and HP values that do not start with a number.
func (v *blockValidator) validateNumbers(rec statblock.Record) {
	for _, f := range []statblock.Field{statblock.FieldAC, statblock.FieldHP} {
		if val := rec.Get(f); val != "" && !leadingNumber.MatchString(val) {
			v.errors = append(v.errors, fmt.Sprintf("%s is not numeric: %q", f, val))
		}
	}
}

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Check that stat blocks yield the required fields",
		Long: `Extract each file and report required fields that came back empty.
Exits non-zero if any file fails.

Example:
  barn validate monsters/*.txt
  barn validate --require Name,CR,Melee ogre.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			required, _ := cmd.Flags().GetStringSlice("require")
			v, err := newBlockValidator(required)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				text, err := readSource(cmd, path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				problems := v.validate(statblock.Extract(text))
				if len(problems) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s: %s\n", path, strings.Join(problems, "; "))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d stat blocks failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("require", defaultRequired, "Fields that must be non-empty")
	return cmd
}
