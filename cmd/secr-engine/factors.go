package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/secr-engine/internal/factors"
)

func newFactorsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the loaded emission-factor catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := factors.NewCatalog()
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(map[string]any{
					"meta":    catalog.Meta(),
					"factors": catalog.All(),
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Catalog version: %s\n\n", catalog.Version())
			for _, f := range catalog.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s scope %d  %-12s %10.5f kg CO2e/%s  tier %d\n",
					f.ID, f.Scope, f.Unit, f.KgCO2ePerUnit, f.Unit, f.DataQualityTier)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the catalog as JSON")
	return cmd
}
