package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"textvid/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "textvid",
		Short:         "Narrate written passages into subtitled videos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path of a config file (defaults to environment variables)")

	root.AddCommand(newPlanCommand())
	root.AddCommand(newCuesCommand())

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	return root
}

// loadConfiguration reads the config file named by --config, or falls back
// to environment variables
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.NewConfigurationFromFile(path)
	}
	return config.NewConfigurationFromEnv(), nil
}
