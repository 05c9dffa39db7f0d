// Package config loads process configuration from environment
// variables (via a .env file in development), the way the rest of
// this codebase's services are wired: one Config struct, one Load,
// fatal only at the call site that decides process exit.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/main.go needs to wire the engine, its
// Postgres-backed repository, its R2 snapshot backup uploader, and its
// JWT-gated HTTP transport.
type Config struct {
	ServerPort  int
	DatabaseURL string

	JWTSecretKey string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// Engine tunables (spec.md §6's stated defaults).
	WinScore         float64
	DrawScore        float64
	LossScore        float64
	ByeScore         float64
	InactiveByeScore float64
}

// Load reads .env (if present; its absence is not an error in
// production, where real env vars are set directly) and required
// environment variables into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	winScore, err := parseFloatEnv("WIN_SCORE", 1.0)
	if err != nil {
		return nil, err
	}
	drawScore, err := parseFloatEnv("DRAW_SCORE", 0.5)
	if err != nil {
		return nil, err
	}
	lossScore, err := parseFloatEnv("LOSS_SCORE", 0.0)
	if err != nil {
		return nil, err
	}
	byeScore, err := parseFloatEnv("BYE_SCORE", 1.0)
	if err != nil {
		return nil, err
	}
	inactiveByeScore, err := parseFloatEnv("INACTIVE_BYE_SCORE", 0.0)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:  port,
		DatabaseURL: dbURL,

		JWTSecretKey: jwtSecret,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		WinScore:         winScore,
		DrawScore:        drawScore,
		LossScore:        lossScore,
		ByeScore:         byeScore,
		InactiveByeScore: inactiveByeScore,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
