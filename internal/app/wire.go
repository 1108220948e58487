//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"meeting-transcriber/internal/app/api"
	"meeting-transcriber/internal/app/api/openai"
	"meeting-transcriber/internal/app/api/openai/chat"
	"meeting-transcriber/internal/app/api/openai/whisper"
	"meeting-transcriber/internal/app/audio"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/app/transcript"
	"meeting-transcriber/internal/app/util/files"
	"meeting-transcriber/internal/config"
)

// provideSegmenter shells out to ffprobe/ffmpeg found on PATH
func provideSegmenter(settings *config.Settings, logger *zap.Logger) *audio.Segmenter {
	return audio.NewSegmenter(audio.ExecRunner{}, settings.MaxChunkMB, logger)
}

func provideOutputStore(settings *config.Settings) *files.OutputStore {
	return files.NewOutputStore(settings.OutputDir)
}

var serviceSet = wire.NewSet(
	openai.NewClient,
	whisper.NewRemoteTranscriber,
	chat.NewEnhancer,
	provideSegmenter,
	provideOutputStore,
	transcript.NewService,
	wire.Bind(new(api.Transcriber), new(*whisper.RemoteTranscriber)),
	wire.Bind(new(api.Enhancer), new(*chat.Enhancer)),
	wire.Bind(new(transcript.Segmenter), new(*audio.Segmenter)),
)

// InitializeService builds the shared pipeline. A nil progress reporter disables progress output.
func InitializeService(settings *config.Settings, logger *zap.Logger, progress transcript.ProgressReporter, m *metrics.Metrics) *transcript.Service {
	wire.Build(serviceSet)
	return &transcript.Service{}
}
