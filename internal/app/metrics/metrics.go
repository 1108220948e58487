package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics of the transcription pipeline.
// A nil *Metrics records nothing.
type Metrics struct {
	// Pipeline metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AudioDuration   prometheus.Histogram

	// Chunk metrics
	ChunksTranscribed prometheus.Counter
	ChunkFailures     prometheus.Counter

	// Enhancement metrics
	Enhancements *prometheus.CounterVec
	Tokens       *prometheus.CounterVec
	CostUSD      *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg. A nil reg uses
// the default registerer served by promhttp.Handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_requests_total",
			Help: "Total number of processed inputs",
		}, []string{"kind", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcriber_request_duration_seconds",
			Help:    "Wall time spent processing one input",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1 hour
		}, []string{"kind"}),
		AudioDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcriber_audio_duration_seconds",
			Help:    "Duration of transcribed audio sources",
			Buckets: prometheus.ExponentialBuckets(30, 2, 10), // 30s to ~4 hours
		}),

		ChunksTranscribed: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcriber_chunks_transcribed_total",
			Help: "Total number of audio chunks transcribed",
		}),
		ChunkFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcriber_chunk_failures_total",
			Help: "Total number of audio chunks whose transcription failed",
		}),

		Enhancements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_enhancements_total",
			Help: "Enhancement calls by resulting status",
		}, []string{"status"}),
		Tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_enhancement_tokens_total",
			Help: "Tokens consumed by enhancement calls",
		}, []string{"direction"}),
		CostUSD: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_cost_usd_total",
			Help: "Estimated service cost in US dollars",
		}, []string{"service"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcriber_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// RecordRequest records one processed input of kind "audio" or "text"
func (m *Metrics) RecordRequest(kind string, err error, durationSeconds float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Requests.WithLabelValues(kind, outcome).Inc()
	m.RequestDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordAudio records the duration of a probed source
func (m *Metrics) RecordAudio(durationSeconds float64) {
	if m == nil {
		return
	}
	m.AudioDuration.Observe(durationSeconds)
}

// RecordChunk records one chunk transcription attempt
func (m *Metrics) RecordChunk(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ChunkFailures.Inc()
		return
	}
	m.ChunksTranscribed.Inc()
}

// RecordEnhancement records the enhancement status and token usage
func (m *Metrics) RecordEnhancement(status string, inputTokens, outputTokens int, cost float64) {
	if m == nil {
		return
	}
	m.Enhancements.WithLabelValues(status).Inc()
	m.Tokens.WithLabelValues("input").Add(float64(inputTokens))
	m.Tokens.WithLabelValues("output").Add(float64(outputTokens))
	m.CostUSD.WithLabelValues("chat").Add(cost)
}

// RecordTranscriptionCost adds the speech-to-text cost
func (m *Metrics) RecordTranscriptionCost(cost float64) {
	if m == nil {
		return
	}
	m.CostUSD.WithLabelValues("whisper").Add(cost)
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}
