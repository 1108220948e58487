package audio

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	apperrors "meeting-transcriber/internal/app/errors"
	"meeting-transcriber/internal/app/model"
)

const (
	// safetyMargin shrinks the proportional chunk length so re-encoded
	// chunks stay under the upload limit.
	safetyMargin = 0.90

	chunkSampleRate = "16000"
	chunkChannels   = "1"
)

// Segmenter measures audio and splits sources larger than MaxChunkMB.
type Segmenter struct {
	runner     CommandRunner
	maxChunkMB float64
	logger     *zap.Logger
}

// NewSegmenter creates a Segmenter. A nil runner uses ExecRunner.
func NewSegmenter(runner CommandRunner, maxChunkMB float64, logger *zap.Logger) *Segmenter {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{runner: runner, maxChunkMB: maxChunkMB, logger: logger}
}

// Probe measures the file at path.
func (s *Segmenter) Probe(ctx context.Context, path string) (model.AudioSource, error) {
	return Probe(ctx, s.runner, path)
}

// Split returns the chunks covering src. Sources within the size limit come
// back as a single Original chunk pointing at src.Path; larger sources are
// exported as mono 16 kHz WAV files under workDir.
func (s *Segmenter) Split(ctx context.Context, src model.AudioSource, workDir string) ([]model.Chunk, error) {
	if src.Duration <= 0 {
		return nil, apperrors.Wrap(apperrors.Newf("duration %s", src.Duration), apperrors.ErrEmptyAudio, src.Path)
	}

	s.logger.Info("Checking if audio file needs splitting",
		zap.Float64("size_mb", src.SizeMB()),
		zap.Float64("max_size_mb", s.maxChunkMB))

	chunks := PlanChunks(src, s.maxChunkMB)
	if len(chunks) == 1 && chunks[0].Original {
		s.logger.Info("Audio file is within size limits, no splitting needed")
		return chunks, nil
	}

	s.logger.Info("Splitting audio into chunks", zap.Int("chunks", len(chunks)))
	for i := range chunks {
		chunks[i].Path = filepath.Join(workDir, fmt.Sprintf("%s_chunk%d.wav", src.Stem(), chunks[i].Index))

		if err := s.export(ctx, src.Path, chunks[i]); err != nil {
			RemoveChunks(chunks[:i])
			return nil, apperrors.Wrapf(err, apperrors.ErrExportFailed, "chunk %d/%d", i+1, len(chunks))
		}
		s.logger.Info("Created chunk",
			zap.Int("chunk", i+1),
			zap.Int("total", len(chunks)),
			zap.Int64("start_ms", chunks[i].Start.Milliseconds()),
			zap.Int64("end_ms", chunks[i].End.Milliseconds()))
	}

	return chunks, nil
}

func (s *Segmenter) export(ctx context.Context, srcPath string, chunk model.Chunk) error {
	return s.runner.Run(ctx, "ffmpeg",
		"-y", "-v", "error",
		"-ss", formatSeconds(chunk.Start),
		"-t", formatSeconds(chunk.Duration()),
		"-i", srcPath,
		"-vn",
		"-ac", chunkChannels,
		"-ar", chunkSampleRate,
		chunk.Path,
	)
}

// PlanChunks computes chunk boundaries without touching the filesystem.
//
// For an oversize source the chunk length is
// floor(floor(duration_ms * max/size) * 0.90) milliseconds and the chunk count
// is the ceiling of duration over that length. Ranges are half-open,
// contiguous and cover [0, duration).
func PlanChunks(src model.AudioSource, maxChunkMB float64) []model.Chunk {
	if src.SizeMB() <= maxChunkMB {
		return []model.Chunk{{
			Index:    0,
			Start:    0,
			End:      src.Duration,
			Path:     src.Path,
			Original: true,
		}}
	}

	totalMs := src.Duration.Milliseconds()
	chunkMs := int64(math.Floor(float64(totalMs) * (maxChunkMB / src.SizeMB())))
	chunkMs = int64(math.Floor(float64(chunkMs) * safetyMargin))
	if chunkMs < 1 {
		chunkMs = 1
	}
	count := int((totalMs + chunkMs - 1) / chunkMs)

	return lo.Times(count, func(i int) model.Chunk {
		start := int64(i) * chunkMs
		end := min(start+chunkMs, totalMs)
		return model.Chunk{
			Index: i,
			Start: time.Duration(start) * time.Millisecond,
			End:   time.Duration(end) * time.Millisecond,
		}
	})
}

// RemoveChunks deletes exported chunk files, never the original source.
func RemoveChunks(chunks []model.Chunk) {
	for _, chunk := range chunks {
		if chunk.Original || chunk.Path == "" {
			continue
		}
		_ = os.Remove(chunk.Path)
	}
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
