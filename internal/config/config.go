package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	AppBaseURL     string
	SessionSecret  string
	SessionDuration time.Duration

	DatabaseType   string // sqlite (default), postgres, mysql
	DatabasePath   string // for sqlite
	DatabaseURL    string // for postgres/mysql
	MigrationsPath string

	TemplatesPath   string
	StaticFilesPath string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBaseURL string

	AWSRegion     string
	SESFromEmail  string
	SESFromName   string

	// Fixed per-meal charge applied to event registrations
	MealPriceCents int

	Debug bool
}

// Load reads configuration from the environment, first loading a local .env
// file when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me-in-production"),
		SessionDuration: 24 * time.Hour,

		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./packcamp.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		TemplatesPath:   getEnv("TEMPLATES_PATH", "./templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Pack Camping"),

		MealPriceCents: getEnvInt("MEAL_PRICE_CENTS", 500),

		Debug: getEnv("DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
