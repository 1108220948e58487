package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"meeting-transcriber/internal/app/audio"
	apperrors "meeting-transcriber/internal/app/errors"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/app/model"
	apptestutil "meeting-transcriber/internal/app/testutil"
	"meeting-transcriber/internal/app/util/files"
	"meeting-transcriber/internal/config"
)

type fixture struct {
	service     *Service
	segmenter   *apptestutil.MockSegmenter
	transcriber *apptestutil.MockTranscriber
	enhancer    *apptestutil.MockEnhancer
	progress    *apptestutil.RecordingProgress
	metrics     *metrics.Metrics
	inputDir    string
	outputDir   string
	workRoot    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	settings := config.DefaultSettings()
	settings.WorkDir = filepath.Join(root, "work")
	settings.OutputDir = filepath.Join(root, "output")
	require.NoError(t, os.MkdirAll(settings.WorkDir, 0o755))

	f := &fixture{
		segmenter:   apptestutil.NewMockSegmenter(t),
		transcriber: apptestutil.NewMockTranscriber(t),
		enhancer:    apptestutil.NewMockEnhancer(t),
		progress:    &apptestutil.RecordingProgress{},
		metrics:     metrics.NewMetrics(prometheus.NewRegistry()),
		inputDir:    filepath.Join(root, "input"),
		outputDir:   settings.OutputDir,
		workRoot:    settings.WorkDir,
	}
	f.service = NewService(f.segmenter, f.transcriber, f.enhancer,
		files.NewOutputStore(settings.OutputDir), settings, f.progress, f.metrics, nil)

	t.Cleanup(func() {
		f.segmenter.AssertExpectations(t)
		f.transcriber.AssertExpectations(t)
		f.enhancer.AssertExpectations(t)
	})
	return f
}

// expectSplit makes Split export count chunk files into the work directory it receives.
func (f *fixture) expectSplit(t *testing.T, src model.AudioSource, count int, workDir *string) {
	f.segmenter.On("Probe", mock.Anything, src.Path).Return(src, nil).Once()
	f.segmenter.On("Split", mock.Anything, src, mock.AnythingOfType("string")).
		Return(func(_ context.Context, src model.AudioSource, dir string) []model.Chunk {
			*workDir = dir
			step := src.Duration / time.Duration(count)
			chunks := make([]model.Chunk, count)
			for i := range chunks {
				chunks[i] = model.Chunk{
					Index: i,
					Start: time.Duration(i) * step,
					End:   time.Duration(i+1) * step,
					Path:  apptestutil.WriteFile(t, dir, fmt.Sprintf("%s_chunk%d.wav", src.Stem(), i), "RIFF"),
				}
			}
			return chunks
		}, nil).Once()
}

func (f *fixture) chunkPath(workDir string, i int) string {
	return filepath.Join(workDir, fmt.Sprintf("talk_chunk%d.wav", i))
}

func (f *fixture) source(t *testing.T, size int64, duration time.Duration) model.AudioSource {
	return model.AudioSource{
		Path:     apptestutil.WriteFile(t, f.inputDir, "talk.mp3", "ID3"),
		Size:     size,
		Duration: duration,
	}
}

func TestTranscribe_RawSavedBeforeEnhancement(t *testing.T) {
	f := newFixture(t)
	src := f.source(t, 40*1024*1024, 405*time.Second)
	var workDir string
	f.expectSplit(t, src, 2, &workDir)

	f.transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(p string) bool { return p == f.chunkPath(workDir, 0) })).
		Return("hola a todos", nil).Once()
	f.transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(p string) bool { return p == f.chunkPath(workDir, 1) })).
		Run(func(args mock.Arguments) {
			assert.NoFileExists(t, f.chunkPath(workDir, 0), "finished chunk is deleted before the next one")
		}).
		Return("bienvenidos", nil).Once()

	rawPath := filepath.Join(f.outputDir, "talk_raw_transcript.txt")
	f.enhancer.On("Enhance", mock.Anything, "hola a todos bienvenidos").
		Run(func(args mock.Arguments) {
			content, err := os.ReadFile(rawPath)
			require.NoError(t, err, "raw transcript exists when enhancement starts")
			assert.Equal(t, "hola a todos bienvenidos", string(content))
		}).
		Return(apptestutil.FailedResult("hola a todos bienvenidos", errors.New("insufficient_quota"))).Once()

	result, err := f.service.Transcribe(context.Background(), src.Path)
	require.NoError(t, err)

	assert.Equal(t, "hola a todos bienvenidos", result.Text)
	assert.Equal(t, model.EnhancementFailed, result.Enhancement)
	assert.False(t, result.IsHTML())
	assert.Equal(t, rawPath, result.RawPath)
	assert.Empty(t, result.EnhancedPath)
	assert.NoFileExists(t, filepath.Join(f.outputDir, "talk_enhanced_transcript.txt"))
	assert.Equal(t, 2, result.Chunks)
	assert.Nil(t, result.Usage.Enhancement)
	assert.Equal(t, 7, result.Usage.TranscriptionMinutes)
	assert.InDelta(t, 0.042, result.Usage.TranscriptionCost, 1e-9)
	assert.NoDirExists(t, workDir, "work directory is removed")
	assert.FileExists(t, src.Path, "source is never deleted")
	assert.Equal(t, "talk.mp3", f.progress.Source)
	assert.Equal(t, 2, f.progress.Total)
	assert.Equal(t, []int{0, 1}, f.progress.Done)
	assert.True(t, f.progress.Finished)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.ChunksTranscribed))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Enhancements.WithLabelValues("failed")))
}

func TestTranscribe_EnhancementApplied(t *testing.T) {
	f := newFixture(t)
	src := f.source(t, 2*1024*1024, 90*time.Second)
	f.segmenter.On("Probe", mock.Anything, src.Path).Return(src, nil).Once()
	f.segmenter.On("Split", mock.Anything, src, mock.AnythingOfType("string")).
		Return([]model.Chunk{{Index: 0, End: src.Duration, Path: src.Path, Original: true}}, nil).Once()
	f.transcriber.On("Transcribe", mock.Anything, src.Path).Return(apptestutil.SampleRawTranscript, nil).Once()
	f.enhancer.On("Enhance", mock.Anything, apptestutil.SampleRawTranscript).
		Return(apptestutil.AppliedResult(apptestutil.SampleEnhancedTranscript, 2000, 500)).Once()

	result, err := f.service.Transcribe(context.Background(), src.Path)
	require.NoError(t, err)

	assert.Equal(t, apptestutil.SampleEnhancedTranscript, result.Text)
	assert.True(t, result.IsHTML())
	assert.Equal(t, "Concurrencia en Go", result.Title)
	assert.Equal(t, []string{"Contexto"}, result.Sections)
	enhancedPath := filepath.Join(f.outputDir, "talk_enhanced_transcript.txt")
	assert.Equal(t, enhancedPath, result.EnhancedPath)
	content, err := os.ReadFile(enhancedPath)
	require.NoError(t, err)
	assert.Equal(t, apptestutil.SampleEnhancedTranscript, string(content))

	require.NotNil(t, result.Usage.Enhancement)
	assert.Equal(t, 2, result.Usage.TranscriptionMinutes)
	assert.InDelta(t, 0.06+0.012, result.Usage.TotalCost(), 1e-9)
	assert.Contains(t, result.Usage.Lines(), "Input tokens: 2,000 ($0.0300)")
	assert.Contains(t, result.Usage.Lines(), "Whisper API cost: $0.0120 (2 minutes at $0.006/minute)")
}

func TestTranscribe_SingleChunkUsesOriginalFile(t *testing.T) {
	f := newFixture(t)
	src := f.source(t, 1024, 30*time.Second)
	f.segmenter.On("Probe", mock.Anything, src.Path).Return(src, nil).Once()
	f.segmenter.On("Split", mock.Anything, src, mock.AnythingOfType("string")).
		Return([]model.Chunk{{Index: 0, End: src.Duration, Path: src.Path, Original: true}}, nil).Once()
	f.transcriber.On("Transcribe", mock.Anything, src.Path).Return("hola", nil).Once()
	f.enhancer.On("Enhance", mock.Anything, "hola").Return(apptestutil.AppliedResult("<h1>Hola</h1>", 10, 10)).Once()

	result, err := f.service.Transcribe(context.Background(), src.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Chunks)
	assert.FileExists(t, src.Path)
}

func TestTranscribe_IdenticalEnhancementWritesNoEnhancedFile(t *testing.T) {
	f := newFixture(t)
	src := f.source(t, 1024, 30*time.Second)
	f.segmenter.On("Probe", mock.Anything, src.Path).Return(src, nil).Once()
	f.segmenter.On("Split", mock.Anything, src, mock.AnythingOfType("string")).
		Return([]model.Chunk{{Index: 0, End: src.Duration, Path: src.Path, Original: true}}, nil).Once()
	f.transcriber.On("Transcribe", mock.Anything, src.Path).Return("hola", nil).Once()
	f.enhancer.On("Enhance", mock.Anything, "hola").Return(apptestutil.AppliedResult("hola", 10, 1)).Once()

	result, err := f.service.Transcribe(context.Background(), src.Path)
	require.NoError(t, err)

	assert.Equal(t, "hola", result.Text)
	assert.Equal(t, model.EnhancementUnchanged, result.Enhancement)
	assert.Empty(t, result.EnhancedPath)
	assert.NoFileExists(t, filepath.Join(f.outputDir, "talk_enhanced_transcript.txt"))
	require.NotNil(t, result.Usage.Enhancement, "usage is reported even when the text is unchanged")
}

func TestTranscribe_ChunkFailureAborts(t *testing.T) {
	f := newFixture(t)
	src := f.source(t, 40*1024*1024, 405*time.Second)
	var workDir string
	f.expectSplit(t, src, 3, &workDir)

	serviceErr := errors.New("server_error (status 500)")
	f.transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(p string) bool { return p == f.chunkPath(workDir, 0) })).
		Return("uno", nil).Once()
	f.transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(p string) bool { return p == f.chunkPath(workDir, 1) })).
		Return("", serviceErr).Once()

	result, err := f.service.Transcribe(context.Background(), src.Path)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, serviceErr)
	assert.NoDirExists(t, workDir, "chunks of aborted requests are removed")
	assert.NoFileExists(t, filepath.Join(f.outputDir, "talk_raw_transcript.txt"))
	f.enhancer.AssertNotCalled(t, "Enhance", mock.Anything, mock.Anything)
	assert.True(t, f.progress.Finished)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ChunkFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Requests.WithLabelValues("audio", "error")))
}

type forbiddenRunner struct{ t *testing.T }

func (r forbiddenRunner) Output(context.Context, string, ...string) ([]byte, error) {
	r.t.Error("audio tooling must not run")
	return nil, errors.New("forbidden")
}

func (r forbiddenRunner) Run(context.Context, string, ...string) error {
	r.t.Error("audio tooling must not run")
	return errors.New("forbidden")
}

func TestTranscribe_MissingFileFailsBeforeAnyCall(t *testing.T) {
	root := t.TempDir()
	settings := config.DefaultSettings()
	settings.OutputDir = filepath.Join(root, "output")
	transcriber := apptestutil.NewMockTranscriber(t)
	enhancer := apptestutil.NewMockEnhancer(t)

	service := NewService(audio.NewSegmenter(forbiddenRunner{t}, settings.MaxChunkMB, nil), transcriber, enhancer,
		files.NewOutputStore(settings.OutputDir), settings, nil, nil, nil)

	result, err := service.Transcribe(context.Background(), filepath.Join(root, "missing.mp3"))

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
	transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
	enhancer.AssertNotCalled(t, "Enhance", mock.Anything, mock.Anything)
	assert.NoDirExists(t, settings.OutputDir)
}

func TestProcess_TextInputUsesEnhancerOnly(t *testing.T) {
	for _, name := range []string{"notes.txt", "NOTES.TXT"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			raw := "  " + apptestutil.SampleRawTranscript + "\n"
			path := apptestutil.WriteFile(t, f.inputDir, name, raw)
			f.enhancer.On("Enhance", mock.Anything, raw).
				Return(apptestutil.AppliedResult(apptestutil.SampleEnhancedTranscript, 100, 50)).Once()

			result, err := f.service.Process(context.Background(), path)
			require.NoError(t, err)

			expectedPath := filepath.Join(f.outputDir, model.Stem(name)+"_enhanced.txt")
			assert.Equal(t, expectedPath, result.EnhancedPath)
			content, err := os.ReadFile(expectedPath)
			require.NoError(t, err)
			assert.Equal(t, apptestutil.SampleEnhancedTranscript, string(content))
			assert.Equal(t, model.EnhancementApplied, result.Enhancement)
			assert.Equal(t, "Concurrencia en Go", result.Title)
			assert.Equal(t, []string{"Contexto"}, result.Sections)
			assert.Zero(t, result.Usage.TranscriptionMinutes)

			f.segmenter.AssertNotCalled(t, "Probe", mock.Anything, mock.Anything)
			f.transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
		})
	}
}

func TestProcess_TextInputFallbackStillSaved(t *testing.T) {
	f := newFixture(t)
	path := apptestutil.WriteFile(t, f.inputDir, "notes.txt", "texto crudo\n\n")
	f.enhancer.On("Enhance", mock.Anything, "texto crudo\n\n").
		Return(apptestutil.FailedResult("texto crudo\n\n", errors.New("timeout"))).Once()

	result, err := f.service.Process(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "texto crudo\n\n", result.Text)
	assert.Equal(t, model.EnhancementFailed, result.Enhancement)
	assert.Equal(t, "notes", result.Title)
	assert.Empty(t, result.Sections)
	content, err := os.ReadFile(result.EnhancedPath)
	require.NoError(t, err)
	assert.Equal(t, "texto crudo\n\n", string(content), "fallback output matches the input byte for byte")
}

func TestProcess_MissingTextFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Process(context.Background(), filepath.Join(f.inputDir, "missing.txt"))
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
	f.enhancer.AssertNotCalled(t, "Enhance", mock.Anything, mock.Anything)
}

func TestEnhance_WritesNoFiles(t *testing.T) {
	f := newFixture(t)
	f.enhancer.On("Enhance", mock.Anything, "hola").Return(apptestutil.AppliedResult("<p>Hola</p>", 1, 1)).Once()

	result := f.service.Enhance(context.Background(), "hola")

	assert.Equal(t, "<p>Hola</p>", result.Text)
	assert.NoDirExists(t, f.outputDir)
}

func TestIsTextInput(t *testing.T) {
	assert.True(t, IsTextInput("a.txt"))
	assert.True(t, IsTextInput("a.TXT"))
	assert.False(t, IsTextInput("a.m4a"))
}
