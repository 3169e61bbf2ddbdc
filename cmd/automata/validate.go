package main

import (
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a machine definition for consistency",
	Long: `Loads the definition and reports unknown states, tokens outside the alphabet,
multi-character tokens and non-scalar outputs. Unreachable states and missing
transitions are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runValidate(definitionPath(cmd, args))
		if err != nil {
			if errs := schema.ValidationErrors(err); len(errs) > 1 {
				return fmt.Errorf("validation failed with %d errors: %w", len(errs), err)
			}
			return fmt.Errorf("validation failed: %w", err)
		}
		for _, w := range report.Warnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Definition is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) (validator.Report, error) {
	def, err := cli.LoadDefinition(path)
	if err != nil {
		return validator.Report{}, err
	}

	if _, err := automata.New(def); err != nil {
		if kind := domain.KindOf(err); kind != domain.KindUnknown {
			return validator.Report{}, fmt.Errorf("%s: %w", kind, err)
		}
		return validator.Report{}, err
	}
	return validator.Analyze(def), nil
}
