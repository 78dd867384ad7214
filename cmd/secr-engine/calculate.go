package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/secr-engine/internal/engine"
	"github.com/rshade/secr-engine/internal/factors"
)

func newCalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculate [request.json]",
		Short: "Run one calculation from a request file (or stdin) and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read request: %w", err)
			}

			var req engine.CalculationRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parse request: %w", err)
			}

			catalog, err := factors.NewCatalog()
			if err != nil {
				return err
			}

			result, err := engine.New(catalog).Calculate(req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
