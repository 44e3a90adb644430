package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

type Config struct {
	AppPort           string
	Storage           string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	TrustedProxies    []string
	JWTSecret         string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	MqURL             string
	SeedFile          string
	PriceFloor        string
	DiscardPolicy     string
	TranslationFolder string
	MigrationsDir     string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		Storage:           strings.ToLower(getEnv("STORAGE", StorageMemory)),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "skillink"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "skillink"),
		DbName:            getEnv("MYSQL_DATABASE", "skillink"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		MqURL:             os.Getenv("MQ_URL"),
		SeedFile:          getEnv("SEED_FILE", "data/seed.yaml"),
		PriceFloor:        getEnv("POST_PRICE_FLOOR", "10"),
		DiscardPolicy:     getEnv("DISCARD_POLICY", "delete"),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "db/migrations"),
	}
}

// Validate reports settings the API cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
