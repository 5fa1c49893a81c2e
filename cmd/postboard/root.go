package main

import (
	"postboard/config"
	"postboard/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "postboard - a small posts and comments JSON API",
	Long: `postboard serves CRUD endpoints for posts and their comments under /api/posts,
backed by BadgerDB, SQLite or PostgreSQL.

Configuration is read from POSTBOARD_ environment variables and an optional .env file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		log = logger.New(cfg)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("postboard version {{.Version}}\n")
}

// fail logs err through the configured logger, or stderr when config could
// not be loaded, and hands it back to cobra.
func fail(cmd *cobra.Command, err error) error {
	if cfg == nil {
		cmd.PrintErrln("Error:", err)
		return err
	}
	log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
	return err
}
