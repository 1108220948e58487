package app

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/config"
)

func TestInitializeService(t *testing.T) {
	settings := config.DefaultSettings()
	settings.APIKey = "sk-test-0123456789abcdef"
	settings.OutputDir = t.TempDir()

	service := InitializeService(settings, nil, nil, metrics.NewMetrics(prometheus.NewRegistry()))
	assert.NotNil(t, service)
}
