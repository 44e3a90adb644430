package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "skillink/internal/adapter/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending MySQL migrations",
	Long:  `Connects to the configured MySQL database and applies every migration of MIGRATIONS_DIR that has not run yet.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to mysql: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	applied, err := dbadapter.Migrate(cmd.Context(), db, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	}
	for _, version := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
	}
	return nil
}
