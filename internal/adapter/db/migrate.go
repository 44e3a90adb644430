package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version VARCHAR(255) NOT NULL PRIMARY KEY,
  applied_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
);
`

// Migrate applies every *.up.sql file of dir that is not yet recorded in
// schema_migrations, in file name order. It returns the applied versions.
func Migrate(ctx context.Context, db *sqlx.DB, dir string) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	done := make(map[string]struct{}, len(applied))
	for _, version := range applied {
		done[version] = struct{}{}
	}

	var ran []string
	for _, file := range files {
		version := strings.TrimSuffix(filepath.Base(file), ".up.sql")
		if _, ok := done[version]; ok {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return ran, err
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return ran, fmt.Errorf("apply %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return ran, fmt.Errorf("record %s: %w", version, err)
		}

		zap.L().Info("migration applied", zap.String("version", version))
		ran = append(ran, version)
	}

	return ran, nil
}
