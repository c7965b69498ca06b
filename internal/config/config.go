package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	SessionSecret string
	AdminSecret   string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string
}

// Load reads the full server configuration. The secrets have no
// defaults on purpose.
func Load() Config {
	cfg := LoadDB()
	cfg.Port = getEnv("APP_PORT", "8080")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.AdminSecret = os.Getenv("ADMIN_SECRET")

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	if cfg.AdminSecret == "" {
		log.Fatal("ADMIN_SECRET is required")
	}

	return cfg
}

// LoadDB reads only the database settings, for jobs that never serve
// HTTP (migrations, export).
func LoadDB() Config {
	_ = godotenv.Load()

	return Config{
		DBHost: getEnv("POSTGRES_HOST", "localhost"),
		DBPort: getEnv("POSTGRES_PORT", "5432"),
		DBUser: getEnv("POSTGRES_USER", "shoevote"),
		DBPass: getEnv("POSTGRES_PASSWORD", "shoevote"),
		DBName: getEnv("POSTGRES_DB", "shoevote"),
	}
}

func (c Config) DBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
