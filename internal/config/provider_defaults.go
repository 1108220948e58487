package config

import "time"

// Service default configuration constants
const (
	// Timeout defaults
	DefaultRequestTimeout    = 10 * time.Minute
	DefaultReadHeaderTimeout = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Minute
	DefaultIdleTimeout       = 2 * time.Minute

	// Retry defaults
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
	MaxRetryDelay     = 30 * time.Second

	// Model defaults
	DefaultChatModel          = "gpt-4o"
	DefaultTranscriptionModel = "whisper-1"
	DefaultLanguage           = "es"

	// Audio defaults
	DefaultMaxChunkMB = 15

	// Filesystem defaults
	DefaultOutputDir = "output"
	DefaultUploadDir = "uploads"
	DefaultInputPath = "input.txt"

	// Network defaults
	DefaultHTTPHost    = "0.0.0.0"
	DefaultHTTPPort    = "8000"
	DefaultMaxUploadMB = 200

	// Pricing, USD
	WhisperPricePerMinute = 0.006
)
