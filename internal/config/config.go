// Package config provides centralized configuration for the relite demo
// binary.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the values cmd/relite needs to open a database.
type Config struct {
	DataDir string // directory holding one JSON document per table
}

// Load reads configuration from the environment, loading a .env file
// first if one is present.
func Load() Config {
	godotenv.Load()
	return Config{
		DataDir: getEnv("RELITE_DATA_DIR", "relitedata"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
