package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file when present.
// Missing files are fine in containerized deployments where the environment
// is injected directly.
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// GetEnv retrieves an environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback.
func GetEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
