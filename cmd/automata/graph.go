package main

import (
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the machine as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the machine. Accepting states are drawn as double
circles labelled with their output. With --input, the states visited by that input are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := cli.LoadDefinition(definitionPath(cmd, args))
		if err != nil {
			return err
		}

		eng, err := automata.New(def)
		if err != nil {
			return fmt.Errorf("error initializing machine: %w", err)
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			run, _ := eng.Machine().Trace(input)
			overlay = &graph.GraphOverlay{CurrentState: string(run.Final)}
			for _, st := range run.Path {
				overlay.VisitedStates = append(overlay.VisitedStates, string(st))
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Definition(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the states visited by this input")
}
