package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that seed CLI flag defaults.
const (
	EnvDB       = "LANDER_DB"
	EnvConfig   = "LANDER_CONFIG"
	EnvLogLevel = "LANDER_LOG_LEVEL"
	EnvLogFile  = "LANDER_LOG_FILE"
)

// LoadEnv loads variables from the given .env files into the process
// environment. Variables already set are not overridden and a missing
// file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load env %s: %w", f, err)
		}
	}
	return nil
}

// EnvOr returns the value of key, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
