package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

var matcher = language.NewMatcher([]language.Tag{language.English})

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // English is always the fallback
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	matcher = newMatcher(cfg.SupportedLanguages)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(cfg.TranslationFolder, f.Name())

		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Match resolves an Accept-Language header to one of the supported languages.
func Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}

func newMatcher(supported []string) language.Matcher {
	tags := []language.Tag{language.English}
	for _, lang := range supported {
		tag, err := language.Parse(strings.TrimSpace(lang))
		if err != nil {
			zap.L().Warn("unsupported language tag", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag == language.English {
			continue
		}
		tags = append(tags, tag)
	}
	return language.NewMatcher(tags)
}
