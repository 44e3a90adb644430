//go:build integration
// +build integration

package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	dbadapter "skillink/internal/adapter/db"
	"skillink/internal/config"
	"skillink/pkg/translator"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  filepath.Join(projectRoot(s.T()), "pkg", "translator", "translation"),
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	conf := &config.Config{
		DbHost:     envOrDefault("MYSQL_HOST", "127.0.0.1"),
		DbPort:     envOrDefault("MYSQL_PORT", "3306"),
		DbUser:     envOrDefault("MYSQL_ROOT_USER", "root"),
		DbPassword: envOrDefault("MYSQL_ROOT_PASSWORD", "root"),
		DbParams:   envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
	}
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "skillink")+"_test")

	// Without a database name the DSN targets the server itself.
	adminDB, err := dbadapter.ConnectDB(conf)
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	conf.DbName = database
	db, err := dbadapter.ConnectDB(conf)
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Only ever drop a database this suite named.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	applyTestMigrations(s.T(), s.DB)
}

// applyTestMigrations drops every table and replays db/migrations, so each
// test starts from an empty schema.
func applyTestMigrations(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
DROP TABLE IF EXISTS todos;
DROP TABLE IF EXISTS phases;
DROP TABLE IF EXISTS projects;
DROP TABLE IF EXISTS post_applicants;
DROP TABLE IF EXISTS posts;
DROP TABLE IF EXISTS schema_migrations;
`)
	require.NoError(t, err)

	applied, err := dbadapter.Migrate(context.Background(), db, filepath.Join(projectRoot(t), "db", "migrations"))
	require.NoError(t, err)
	require.Len(t, applied, 6)
}

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
