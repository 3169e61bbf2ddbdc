package main

import (
	"context"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input...]",
	Short: "Run inputs through a machine",
	Long: `Runs each argument through the machine and prints the output of the final state.
Without arguments, inputs are read from stdin, one per line.`,
	Example: `  automata run 110 1010
  printf '1101\n111\n' | automata run --json
  automata run -f parity.yaml 1011`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		debug, _ := cmd.Flags().GetBool("debug")
		file, _ := cmd.Flags().GetString("file")

		ctx, stop := cli.WithShutdownSignals(context.Background())
		defer stop()

		_, err := cli.RunSession(ctx, cli.RunOptions{
			File:         file,
			JSON:         jsonMode,
			Verbose:      verbose,
			Debug:        debug,
			Interactive:  !jsonMode && term.IsTerminal(int(os.Stdin.Fd())),
			MaxInputSize: cfg.MaxInputSize,
			Inputs:       args,
			Stdin:        cmd.InOrStdin(),
			Stdout:       cmd.OutOrStdout(),
			Logger:       logger,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().BoolP("verbose", "v", false, "Print the visited states with each result")
}
