package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	// Store backend selection: "memory" (copy-on-write, default) or "postgres".
	StoreBackend string
	DatabaseURL  string
	TablePrefix  string
	// Auth
	JWKSURL      string
	AuthDisabled bool
	DevUserID    string // caller id assumed when auth is disabled
	DevOrgID     string // organization scope assumed when auth is disabled
	CORSOrigins  string
	// Debug flags
	Debug bool
	// LogDir, when set, mirrors logs to timestamped files in this directory.
	LogDir string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),
		JWKSURL:      getEnv("JWKS_URL", ""),
		AuthDisabled: getEnv("AUTH_DISABLED", getDefaultAuthDisabled(env)) == "true",
		DevUserID:    getEnv("DEV_USER_ID", "dev-user"),
		DevOrgID:     getEnv("DEV_ORG_ID", "dev-org"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Debug:        getEnv("DEBUG", getDefaultDebug(env)) == "true",
		LogDir:       getEnv("LOG_DIR", ""),
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getDefaultAuthDisabled keeps auth mandatory outside dev.
func getDefaultAuthDisabled(env string) string {
	if env == "dev" {
		return "true"
	}
	return "false"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
