package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRequest("audio", nil, 12)
	m.RecordRequest("audio", errors.New("boom"), 3)
	m.RecordRequest("text", nil, 1)
	m.RecordChunk(nil)
	m.RecordChunk(nil)
	m.RecordChunk(errors.New("boom"))
	m.RecordEnhancement("applied", 2000, 500, 0.06)
	m.RecordTranscriptionCost(0.042)
	m.RecordHTTPRequest("POST", "/transcribe", "200", 1.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("audio", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("audio", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("text", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChunksTranscribed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChunkFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Enhancements.WithLabelValues("applied")))
	assert.Equal(t, 2000.0, testutil.ToFloat64(m.Tokens.WithLabelValues("input")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.Tokens.WithLabelValues("output")))
	assert.InDelta(t, 0.06, testutil.ToFloat64(m.CostUSD.WithLabelValues("chat")), 1e-9)
	assert.InDelta(t, 0.042, testutil.ToFloat64(m.CostUSD.WithLabelValues("whisper")), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/transcribe", "200")))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("audio", nil, 1)
		m.RecordChunk(nil)
		m.RecordEnhancement("failed", 0, 0, 0)
		m.RecordHTTPRequest("GET", "/", "200", 0.1)
	})
}
