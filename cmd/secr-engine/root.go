package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "secr-engine",
		Short:         "Greenhouse-gas emissions calculation engine for SECR-style reporting",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newCalculateCmd(),
		newFactorsCmd(),
	)
	return cmd
}
