package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"meeting-transcriber/internal/app/api"
	"meeting-transcriber/internal/app/api/openai"
	"meeting-transcriber/internal/app/audio"
	"meeting-transcriber/internal/app/document"
	apperrors "meeting-transcriber/internal/app/errors"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/app/model"
	"meeting-transcriber/internal/app/util/files"
	"meeting-transcriber/internal/config"
)

const (
	rawSuffix      = "_raw_transcript.txt"
	enhancedSuffix = "_enhanced_transcript.txt"

	kindAudio = "audio"
	kindText  = "text"
)

// Segmenter measures a source and cuts it into uploadable chunks.
type Segmenter interface {
	Probe(ctx context.Context, path string) (model.AudioSource, error)
	Split(ctx context.Context, src model.AudioSource, workDir string) ([]model.Chunk, error)
}

// ProgressReporter is told about chunk progress of audio inputs.
type ProgressReporter interface {
	ChunksPlanned(source string, total int)
	ChunkDone(index int)
	Finish()
}

type noProgress struct{}

func (noProgress) ChunksPlanned(string, int) {}
func (noProgress) ChunkDone(int)             {}
func (noProgress) Finish()                   {}

// Service runs the audio to enhanced transcript pipeline. It holds only
// read-only collaborators and may serve overlapping requests.
type Service struct {
	segmenter   Segmenter
	transcriber api.Transcriber
	enhancer    api.Enhancer
	store       *files.OutputStore
	workDir     string
	progress    ProgressReporter
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewService wires the pipeline. A nil progress reporter disables progress output.
func NewService(
	segmenter Segmenter,
	transcriber api.Transcriber,
	enhancer api.Enhancer,
	store *files.OutputStore,
	settings *config.Settings,
	progress ProgressReporter,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if progress == nil {
		progress = noProgress{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		segmenter:   segmenter,
		transcriber: transcriber,
		enhancer:    enhancer,
		store:       store,
		workDir:     settings.WorkDir,
		progress:    progress,
		metrics:     m,
		logger:      logger.Named("transcript"),
	}
}

// IsTextInput reports whether path is routed to enhancement only.
func IsTextInput(path string) bool {
	return files.IsTextFile(path)
}

// Process routes .txt inputs to EnhanceFile and everything else to Transcribe.
func (s *Service) Process(ctx context.Context, path string) (*model.TranscriptResult, error) {
	if IsTextInput(path) {
		return s.EnhanceFile(ctx, path)
	}
	return s.Transcribe(ctx, path)
}

// Transcribe turns an audio file into a transcript. The raw transcript is on
// disk before enhancement starts, so an enhancement outage never loses it.
func (s *Service) Transcribe(ctx context.Context, path string) (result *model.TranscriptResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordRequest(kindAudio, err, time.Since(start).Seconds())
		if err != nil {
			s.logger.Error("Error processing audio file", zap.String("path", path), zap.Error(err))
		}
	}()

	src, err := s.segmenter.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAudio(src.Duration.Seconds())
	s.logger.Info("Processing audio file",
		zap.String("path", path),
		zap.Duration("duration", src.Duration),
		zap.Float64("size_mb", src.SizeMB()))

	raw, chunkCount, err := s.transcribeChunks(ctx, src)
	if err != nil {
		return nil, err
	}

	rawPath, err := s.store.Save(src.Stem()+rawSuffix, raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Raw transcript saved", zap.String("path", rawPath))

	enhancement := s.enhance(ctx, raw)

	minutes, cost := openai.TranscriptionCost(src.Duration)
	s.metrics.RecordTranscriptionCost(cost)

	result = &model.TranscriptResult{
		Source:      path,
		Title:       src.Stem(),
		Text:        raw,
		RawPath:     rawPath,
		Enhancement: enhancement.Status,
		Chunks:      chunkCount,
		Duration:    src.Duration,
		Usage: model.UsageReport{
			Enhancement:          enhancement.Usage,
			TranscriptionMinutes: minutes,
			TranscriptionCost:    cost,
			PricePerMinute:       config.WhisperPricePerMinute,
		},
	}

	if enhancement.Applied() && enhancement.Text != raw {
		enhancedPath, err := s.store.Save(src.Stem()+enhancedSuffix, enhancement.Text)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Enhanced transcript saved", zap.String("path", enhancedPath))
		result.Text = enhancement.Text
		result.EnhancedPath = enhancedPath
		result.Title = document.Title(enhancement.Text, src.Stem())
		result.Sections = document.Sections(enhancement.Text)
	} else {
		result.Enhancement = degraded(enhancement.Status)
		s.logger.Warn("Enhancement failed or returned same text, using raw transcript",
			zap.String("status", string(result.Enhancement)))
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// transcribeChunks splits src into a request-private work directory that is
// always removed, and joins the chunk texts in order with single spaces.
func (s *Service) transcribeChunks(ctx context.Context, src model.AudioSource) (string, int, error) {
	workDir, err := os.MkdirTemp(s.workDir, "transcribe-*")
	if err != nil {
		return "", 0, apperrors.Wrap(err, apperrors.ErrFileWriteFailed, "create work directory")
	}
	defer os.RemoveAll(workDir)

	chunks, err := s.segmenter.Split(ctx, src, workDir)
	if err != nil {
		return "", 0, err
	}

	s.progress.ChunksPlanned(filepath.Base(src.Path), len(chunks))
	defer s.progress.Finish()

	texts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info("Transcribing chunk",
			zap.Int("chunk", i+1),
			zap.Int("total", len(chunks)),
			zap.Stringer("range", chunk))

		text, err := s.transcriber.Transcribe(ctx, chunk.Path)
		s.metrics.RecordChunk(err)
		if err != nil {
			audio.RemoveChunks(chunks[i:])
			return "", 0, fmt.Errorf("transcribe %s: %w", chunk, err)
		}
		if !chunk.Original {
			if err := os.Remove(chunk.Path); err != nil {
				s.logger.Warn("Could not delete chunk", zap.String("path", chunk.Path), zap.Error(err))
			}
		}

		texts = append(texts, text)
		s.progress.ChunkDone(chunk.Index)
	}

	return strings.Join(texts, " "), len(chunks), nil
}

// EnhanceFile enhances an existing transcript and saves "<name>_enhanced.txt"
// into the output directory. Audio tooling and speech-to-text are never used.
func (s *Service) EnhanceFile(ctx context.Context, path string) (result *model.TranscriptResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordRequest(kindText, err, time.Since(start).Seconds())
		if err != nil {
			s.logger.Error("Error processing text file", zap.String("path", path), zap.Error(err))
		}
	}()

	raw, err := files.ReadOutputFile(path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Enhancing existing transcript", zap.String("path", path), zap.Int("chars", len(raw)))

	enhancement := s.enhance(ctx, raw)

	outputPath, err := s.store.Save(files.EnhancedName(path), enhancement.Text)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Enhanced transcript saved", zap.String("path", outputPath))

	status := enhancement.Status
	if !enhancement.Applied() || enhancement.Text == raw {
		status = degraded(status)
		s.logger.Warn("Enhancement failed or returned same text, saved transcript unchanged",
			zap.String("status", string(status)))
	}

	stem := model.Stem(path)
	title := stem
	var sections []string
	if status == model.EnhancementApplied {
		title = document.Title(enhancement.Text, stem)
		sections = document.Sections(enhancement.Text)
	}

	return &model.TranscriptResult{
		Source:       path,
		Title:        title,
		Sections:     sections,
		Text:         enhancement.Text,
		EnhancedPath: outputPath,
		Enhancement:  status,
		Usage:        model.UsageReport{Enhancement: enhancement.Usage},
		Elapsed:      time.Since(start),
	}, nil
}

// Enhance runs enhancement alone without writing any file.
func (s *Service) Enhance(ctx context.Context, text string) model.EnhancementResult {
	return s.enhance(ctx, text)
}

func (s *Service) enhance(ctx context.Context, raw string) model.EnhancementResult {
	result := s.enhancer.Enhance(ctx, raw)

	var inputTokens, outputTokens int
	var cost float64
	if result.Usage != nil {
		inputTokens, outputTokens, cost = result.Usage.InputTokens, result.Usage.OutputTokens, result.Usage.TotalCost()
	}
	s.metrics.RecordEnhancement(string(result.Status), inputTokens, outputTokens, cost)

	if result.Err != nil {
		s.logger.Warn("Enhancement fell back to raw transcript", zap.Error(result.Err))
	}
	return result
}

// degraded maps an applied status whose text still equals the raw input to unchanged.
func degraded(status model.EnhancementStatus) model.EnhancementStatus {
	if status == model.EnhancementApplied {
		return model.EnhancementUnchanged
	}
	return status
}
