package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	apperrors "meeting-transcriber/internal/app/errors"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML settings file.
const ConfigFileEnv = "TRANSCRIBER_CONFIG"

// Settings is the read-only configuration shared by every request.
type Settings struct {
	APIKey  string `yaml:"-" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	Model              string  `yaml:"model" validate:"required"`
	TranscriptionModel string  `yaml:"transcription_model" validate:"required"`
	Language           string  `yaml:"language" validate:"required,min=2,max=5"`
	MaxChunkMB         float64 `yaml:"max_chunk_mb" validate:"gt=0,lte=25"`

	OutputDir string `yaml:"output_dir" validate:"required"`
	UploadDir string `yaml:"upload_dir" validate:"required"`
	// WorkDir holds per-request chunk directories; empty means the OS temp dir.
	WorkDir string `yaml:"work_dir"`

	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0,lte=30m"`
	MaxRetries     int           `yaml:"max_retries" validate:"gte=0,lte=10"`
	RetryDelay     time.Duration `yaml:"retry_delay" validate:"gte=0,lte=60s"`

	Server ServerSettings `yaml:"server"`
}

// ServerSettings configures the HTTP delivery surface.
type ServerSettings struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port" validate:"required,numeric"`
	Environment string `yaml:"environment" validate:"omitempty,oneof=development production"`
	MaxUploadMB int64  `yaml:"max_upload_mb" validate:"gt=0"`
	// ReadHeaderTimeout bounds the header phase only; upload bodies are read
	// for as long as WriteTimeout allows.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" validate:"gt=0"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Model:              DefaultChatModel,
		TranscriptionModel: DefaultTranscriptionModel,
		Language:           DefaultLanguage,
		MaxChunkMB:         DefaultMaxChunkMB,
		OutputDir:          DefaultOutputDir,
		UploadDir:          DefaultUploadDir,
		RequestTimeout:     DefaultRequestTimeout,
		MaxRetries:         DefaultMaxRetries,
		RetryDelay:         DefaultRetryDelay,
		Server: ServerSettings{
			Host:              DefaultHTTPHost,
			Port:              DefaultHTTPPort,
			Environment:       "development",
			MaxUploadMB:       DefaultMaxUploadMB,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
	}
}

// LoadSettings layers defaults, the optional YAML file at path (falling back to
// $TRANSCRIBER_CONFIG) and environment overrides, then validates the result.
// A missing API key is fatal.
func LoadSettings(path string, keys *APIKeys) (*Settings, error) {
	if err := RequireAPIKeys(keys); err != nil {
		return nil, err
	}

	s := DefaultSettings()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	s.APIKey = keys.OpenAI

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrInvalidConfig, "read %s", path)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrInvalidConfig, "parse %s", path)
	}
	return nil
}

func (s *Settings) applyEnv() error {
	s.BaseURL = envOrDefault("OPENAI_BASE_URL", s.BaseURL)
	s.Model = envOrDefault("TRANSCRIBER_MODEL", s.Model)
	s.Language = envOrDefault("TRANSCRIBER_LANGUAGE", s.Language)
	s.OutputDir = envOrDefault("TRANSCRIBER_OUTPUT_DIR", s.OutputDir)
	s.UploadDir = envOrDefault("TRANSCRIBER_UPLOAD_DIR", s.UploadDir)
	s.WorkDir = envOrDefault("TRANSCRIBER_WORK_DIR", s.WorkDir)
	s.Server.Host = envOrDefault("HOST", s.Server.Host)
	s.Server.Port = envOrDefault("PORT", s.Server.Port)
	s.Server.Environment = envOrDefault("APP_ENV", s.Server.Environment)

	var err error
	if s.MaxChunkMB, err = parseFloatEnv("TRANSCRIBER_MAX_CHUNK_MB", s.MaxChunkMB); err != nil {
		return err
	}
	if s.MaxRetries, err = parseIntEnv("TRANSCRIBER_MAX_RETRIES", s.MaxRetries); err != nil {
		return err
	}
	if s.RequestTimeout, err = parseDurationEnv("TRANSCRIBER_REQUEST_TIMEOUT", s.RequestTimeout); err != nil {
		return err
	}
	if s.RetryDelay, err = parseDurationEnv("TRANSCRIBER_RETRY_DELAY", s.RetryDelay); err != nil {
		return err
	}
	maxUpload, err := parseIntEnv("MAX_UPLOAD_MB", int(s.Server.MaxUploadMB))
	if err != nil {
		return err
	}
	s.Server.MaxUploadMB = int64(maxUpload)
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and reports every failing field.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "")
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s fails %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return apperrors.Wrap(errors.New(strings.Join(problems, "; ")), apperrors.ErrInvalidConfig, "")
}

// MaxUploadBytes converts the upload limit to bytes.
func (s ServerSettings) MaxUploadBytes() int64 {
	return s.MaxUploadMB * 1024 * 1024
}

// Addr is the listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	num, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ErrInvalidConfig, "parse %s", key)
	}
	return num, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ErrInvalidConfig, "parse %s", key)
	}
	return num, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ErrInvalidConfig, "parse %s", key)
	}
	return d, nil
}
