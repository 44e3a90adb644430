package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillink/internal/config"
	"skillink/pkg/translator"
)

var rootCmd = &cobra.Command{
	Use:   "skillink",
	Short: "Freelance marketplace API",
	Long: `Skillink serves the post catalog, applications, projects and phase
planning of the freelance marketplace. Without a subcommand it starts the API.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

var (
	cfg    *config.Config
	logger *zap.Logger
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	cfg = config.LoadConfig()
	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	return nil
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		if syncErr := logger.Sync(); syncErr != nil {
			zap.L().Debug("failed to sync logger", zap.Error(syncErr))
		}
	}
	if err != nil {
		os.Exit(1)
	}
}
