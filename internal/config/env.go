package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the sr command.
const (
	EnvLogLevel = "SR_LOG_LEVEL"
	EnvProject  = "SR_PROJECT"
)

// LoadEnv loads .env and .env.local from the working directory when present.
// Variables already set in the process environment are never overridden. It
// returns the files that were loaded.
func LoadEnv() ([]string, error) {
	var loaded []string
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, err
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}
