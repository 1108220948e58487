package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	apperrors "meeting-transcriber/internal/app/errors"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
}

// envPaths are tried in order; the first one found wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from .env file if it exists.
// A missing file is not an error, variables might be set system-wide.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// GetAPIKeys retrieves and validates API keys from environment variables.
// An empty key is allowed here; RequireAPIKeys decides whether it is fatal.
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if !strings.HasPrefix(apiKeys.OpenAI, "sk-") {
			return nil, apperrors.Wrap(apperrors.New("OPENAI_API_KEY must start with 'sk-'"), apperrors.ErrInvalidAPIKey, "")
		}
		if len(apiKeys.OpenAI) < 20 {
			return nil, apperrors.Wrap(apperrors.New("OPENAI_API_KEY too short"), apperrors.ErrInvalidAPIKey, "")
		}
	}

	return apiKeys, nil
}

// RequireAPIKeys fails fast when the OpenAI key is absent. Every command that
// talks to the services calls it before doing any work.
func RequireAPIKeys(apiKeys *APIKeys) error {
	if apiKeys == nil || apiKeys.OpenAI == "" {
		return apperrors.Wrap(
			apperrors.New("please ensure OPENAI_API_KEY is set in your environment or .env file"),
			apperrors.ErrMissingAPIKey, "")
	}
	return nil
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*APIKeys, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return apiKeys, nil
}
