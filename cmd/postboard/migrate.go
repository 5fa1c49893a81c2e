package main

import (
	"postboard/service"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL schema migrations (sqlite and postgres drivers)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := service.Migrate(cmd.Context(), cfg.Store)
		if err != nil {
			return fail(cmd, err)
		}
		log.Info().Str("driver", cfg.Store.Driver).Uint("schema_version", version).Msg("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
