package main

import (
	"os"
	"os/signal"
	"syscall"

	"postboard/service"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := service.RunAppServer(ctx, cfg, log); err != nil {
			return fail(cmd, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
