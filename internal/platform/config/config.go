package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	Environment       string
	UploadDir         string
	MigrationsDir     string
	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
	RunMigrations     bool
	RunSeed           bool
	MaxBodyBytes      int64
	MetricsEnabled    bool
}

func Load() Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Addr:              getEnv("APP_ADDR", ":4000"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		Environment:       getEnv("APP_ENV", "development"),
		UploadDir:         getEnv("UPLOAD_DIR", "public/images"),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Admin"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10*1024*1024)),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
