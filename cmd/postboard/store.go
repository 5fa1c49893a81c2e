package main

import (
	"errors"
	"fmt"

	"postboard/service"

	"github.com/spf13/cobra"
)

var (
	backupOut    string
	restoreForce bool
	cleanForce   bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a full backup of the badger store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := service.Backup(cfg.Store, backupOut)
		if err != nil {
			return fail(cmd, err)
		}
		log.Info().Str("file", file).Msg("database backed up")
		fmt.Fprintln(cmd.OutOrStdout(), file)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Load a backup into the badger store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := service.Restore(cmd.Context(), cfg.Store, args[0], restoreForce, cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, service.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
			return nil
		}
		if err != nil {
			return fail(cmd, err)
		}
		log.Info().Str("file", args[0]).Msg("database restored")
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every post and comment from the badger store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := service.Clean(cfg.Store, cleanForce, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		if errors.Is(err, service.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
			return nil
		}
		if err != nil {
			return fail(cmd, err)
		}
		log.Info().Msg("database cleaned")
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "backup file (default data/backups/backup_<unix>.db)")
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "replace existing data without asking")
	cleanCmd.Flags().BoolVarP(&cleanForce, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(backupCmd, restoreCmd, cleanCmd)
}
