package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv populates Config fields from environment variables. A .env file
// in the working directory is loaded first if present; explicitly exported
// variables take precedence over it.
//
// Supported variables:
//
//	ADDRESS          HTTP bind address (e.g., ":8000")
//	DATABASE_DSN     PostgreSQL DSN
//	DB_WAIT_INTERVAL delay between readiness probes (Go duration, e.g., "1s")
//	DB_WAIT_TIMEOUT  total probing budget (Go duration, e.g., "30s")
//
// Unset variables leave the corresponding Config fields untouched, and a
// malformed duration is ignored rather than aborting startup.
func parseEnv(config *Config) {
	// Missing .env is the normal case outside of local development.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("DB_WAIT_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.DBWaitInterval = d
		}
	}
	if v, ok := os.LookupEnv("DB_WAIT_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.DBWaitTimeout = d
		}
	}
}
