package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	HTTPAddr    string
	DBType      string
	DBDSN       string
	SQLiteDir   string
	FileEntries string
	FileUsers   string
	FileBadges  string
	AuthURL     string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			HTTPAddr:    getEnv("HTTP_ADDR", ":8088"),
			DBType:      getEnv("STORAGE_BACKEND", "file"),
			DBDSN:       getEnv("POSTGRES_DSN", ""),
			SQLiteDir:   getEnv("SQLITE_DIR", "data"),
			FileEntries: getEnv("ENTRIES_FILE", "data/sleep_entries.json"),
			FileUsers:   getEnv("USERS_FILE", "data/users.json"),
			FileBadges:  getEnv("BADGES_FILE", "data/badge_states.json"),
			AuthURL:     getEnv("AUTH_SERVICE_URL", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLiteDir == "" {
			return errors.New("SQLITE_DIR is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.FileEntries == "" || c.FileUsers == "" || c.FileBadges == "" {
			return errors.New("File storage requires ENTRIES_FILE, USERS_FILE and BADGES_FILE to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, postgres, sqlite")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
