package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration, loaded from the environment
// with sensible defaults for local development.
type Config struct {
	// HTTP
	ListenAddr     string
	RequestTimeout time.Duration

	// Auth
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUser         string
	AdminPasswordHash string // bcrypt
	CredentialsFile   string // optional JSON file, overrides the env pair

	// Storage
	DataDir   string
	StorePath string

	// External solver
	SolverURL     string
	SolverTimeout time.Duration

	// Runs
	RunRetention    time.Duration
	JanitorInterval time.Duration
}

// Load reads configuration from the environment. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getEnv("ROSTERD_LISTEN_ADDR", ":8080"),
		RequestTimeout: getDurationEnv("ROSTERD_REQUEST_TIMEOUT", 60*time.Second),

		JWTSecret:         getEnv("ROSTERD_JWT_SECRET", ""),
		TokenTTL:          getDurationEnv("ROSTERD_TOKEN_TTL", 12*time.Hour),
		AdminUser:         getEnv("ROSTERD_ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ROSTERD_ADMIN_PASSWORD_HASH", ""),
		CredentialsFile:   getEnv("ROSTERD_CREDENTIALS_FILE", ""),

		DataDir:   getEnv("ROSTERD_DATA_DIR", "/tmp/rosterd"),
		StorePath: getEnv("ROSTERD_STORE_PATH", ""),

		SolverURL:     getEnv("ROSTERD_SOLVER_URL", "http://localhost:8000"),
		SolverTimeout: getDurationEnv("ROSTERD_SOLVER_TIMEOUT", 120*time.Second),

		RunRetention:    getDurationEnv("ROSTERD_RUN_RETENTION", 24*time.Hour),
		JanitorInterval: getDurationEnv("ROSTERD_JANITOR_INTERVAL", 10*time.Minute),
	}
	if cfg.StorePath == "" {
		cfg.StorePath = cfg.DataDir + "/store.json"
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
