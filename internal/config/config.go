package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DefaultBoardName = "Tasks"

type Config struct {
	Storage      string
	DataFile     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	RedisURL     string
	RedisPrefix  string
	DefaultBoard string
	LogLevel     string
	NoColor      bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("⚠️  No .env file found, using system environment variables")
	}

	_, noColor := os.LookupEnv("NO_COLOR")

	cfg := &Config{
		Storage:      getEnv("BORD_STORAGE", "file"),
		DataFile:     getEnv("BORD_FILE", defaultDataFile()),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "bord"),
		DBPassword:   getEnv("DB_PASSWORD", "bord"),
		DBName:       getEnv("DB_NAME", "bord"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "bord"),
		DefaultBoard: getEnv("BORD_DEFAULT_BOARD", DefaultBoardName),
		LogLevel:     getEnv("BORD_LOG_LEVEL", "warn"),
		NoColor:      noColor,
	}
	if cfg.DefaultBoard == "" {
		cfg.DefaultBoard = DefaultBoardName
	}
	return cfg
}

// PostgresDSN builds the connection string for the postgres backend.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bord", "bord.json")
	}
	return filepath.Join(home, ".bord", "bord.json")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
