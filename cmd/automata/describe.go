package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe the machine's states and transitions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := cli.LoadDefinition(definitionPath(cmd, args))
		if err != nil {
			return err
		}

		md := tui.DescribeMarkdown(def)
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
