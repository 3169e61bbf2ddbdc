package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata runs deterministic finite state machines",
	Long: `Automata runs deterministic finite automata (DFAs) described in YAML, JSON or TOML.
Without --file the built-in mod-three machine is used, which computes the remainder
of a binary number divided by three.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logger = cli.NewLogger(cfg, debug)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "", "Machine definition (.yaml, .json, .toml); defaults to mod-three")
	rootCmd.PersistentFlags().String("env-file", "", "Dotenv file to load (default .env when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// definitionPath returns --file, or the first argument when the flag is unset.
func definitionPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		path = args[0]
	}
	return path
}
