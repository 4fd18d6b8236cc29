package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Migrations
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// OpenAI configuration
	OpenAIAPIKey           string
	OpenAIChatURL          string
	OpenAITranscriptionURL string
	OpenAISpeechURL        string
	ChatModel              string
	TranscriptionModel     string
	SpeechModel            string

	// S3 configuration
	S3Bucket string
}

// LoadConfig creates a new Config instance. Values come from environment
// variables first, falling back to Docker-secret files for sensitive
// fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnvOrSecret("DB_USER", "db_user", "postgres"),
		DBPassword: getEnvOrSecret("DB_PASSWORD", "db_password", ""),
		DBName:     getEnv("DB_NAME", "balanceai"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrSecret("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: getEnvOrSecret("JWT_SECRET", "jwt_secret", ""),

		OpenAIAPIKey:           getEnvOrSecret("OPENAI_API_KEY", "openai_api_key", ""),
		OpenAIChatURL:          getEnv("OPENAI_CHAT_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAITranscriptionURL: getEnv("OPENAI_TRANSCRIPTION_URL", "https://api.openai.com/v1/audio/transcriptions"),
		OpenAISpeechURL:        getEnv("OPENAI_SPEECH_URL", "https://api.openai.com/v1/audio/speech"),
		ChatModel:              getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		TranscriptionModel:     getEnv("OPENAI_TRANSCRIPTION_MODEL", "whisper-1"),
		SpeechModel:            getEnv("OPENAI_SPEECH_MODEL", "tts-1"),

		S3Bucket: getEnv("S3_BUCKET_NAME", "balanceai-scan-images"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrSecret returns the environment variable value, then the Docker
// secret with the given name, then the default.
func getEnvOrSecret(envKey, secretName, fallback string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	if value := readSecret(secretName); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
