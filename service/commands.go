package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"postboard/app/repositories"
	"postboard/config"

	"github.com/rs/zerolog"
)

// DefaultBackupDir is where Backup writes when no file is given.
const DefaultBackupDir = "data/backups"

// Migrate applies the SQL schema migrations and returns the schema version.
func Migrate(ctx context.Context, cfg config.StoreConfig) (uint, error) {
	if cfg.Driver == config.DriverBadger {
		return 0, fmt.Errorf("store driver %q has no schema to migrate", cfg.Driver)
	}

	store, err := repositories.OpenSQL(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Migrate(ctx)
}

// Backup writes a full badger backup to outFile, or to a timestamped file
// under DefaultBackupDir when outFile is empty. It returns the file written.
func Backup(cfg config.StoreConfig, outFile string) (string, error) {
	if cfg.Driver != config.DriverBadger {
		return "", ErrNotBadger
	}
	if !cfg.InMemory {
		if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
			return "", fmt.Errorf("no database exists to backup at %s", cfg.Path)
		}
	}

	if outFile == "" {
		outFile = filepath.Join(DefaultBackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	}
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	store, err := openBadger(cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	f, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := store.Backup(f); err != nil {
		return "", err
	}
	return outFile, nil
}

// Restore loads backupFile into the badger store. When the store already
// holds posts the user is asked on in before they are replaced, unless
// force is set.
func Restore(ctx context.Context, cfg config.StoreConfig, backupFile string, force bool, in io.Reader, out io.Writer) error {
	if cfg.Driver != config.DriverBadger {
		return ErrNotBadger
	}

	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	store, err := openBadger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	posts, err := store.Find(ctx)
	if err != nil {
		return err
	}
	if len(posts) > 0 {
		if !force && !confirm(in, out, "Existing data found. Do you want to replace it? [y/N] ") {
			return ErrCancelled
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	return loadBackup(store, f)
}

// loadBackup turns a panic inside badger's loader, which a corrupt file can
// trigger, into an error.
func loadBackup(store *repositories.BadgerStore, r io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	return store.Restore(r)
}

// Clean drops every post, comment and sequence from the badger store after
// asking on in, unless force is set.
func Clean(cfg config.StoreConfig, force bool, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	if cfg.Driver != config.DriverBadger {
		return ErrNotBadger
	}
	if !cfg.InMemory {
		if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
			logger.Info().Str("path", cfg.Path).Msg("database is already clean")
			return nil
		}
	}

	if !force && !confirm(in, out, "Are you sure you want to clean the database? This cannot be undone. [y/N] ") {
		return ErrCancelled
	}

	store, err := openBadger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
