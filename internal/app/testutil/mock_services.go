package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"meeting-transcriber/internal/app/model"
)

// MockTranscriber is a mock implementation of api.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, inputFilePath string) (string, error) {
	args := m.Called(ctx, inputFilePath)
	return args.String(0), args.Error(1)
}

// MockEnhancer is a mock implementation of api.Enhancer
type MockEnhancer struct {
	mock.Mock
}

func NewMockEnhancer(t *testing.T) *MockEnhancer {
	m := &MockEnhancer{}
	m.Test(t)
	return m
}

func (m *MockEnhancer) Enhance(ctx context.Context, raw string) model.EnhancementResult {
	args := m.Called(ctx, raw)
	return args.Get(0).(model.EnhancementResult)
}

// MockSegmenter is a mock implementation of the orchestrator's segmenter
type MockSegmenter struct {
	mock.Mock
}

func NewMockSegmenter(t *testing.T) *MockSegmenter {
	m := &MockSegmenter{}
	m.Test(t)
	return m
}

func (m *MockSegmenter) Probe(ctx context.Context, path string) (model.AudioSource, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(model.AudioSource), args.Error(1)
}

func (m *MockSegmenter) Split(ctx context.Context, src model.AudioSource, workDir string) ([]model.Chunk, error) {
	args := m.Called(ctx, src, workDir)
	if fn, ok := args.Get(0).(func(context.Context, model.AudioSource, string) []model.Chunk); ok {
		return fn(ctx, src, workDir), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Chunk), args.Error(1)
}

// RecordingProgress records progress callbacks for assertions
type RecordingProgress struct {
	Source   string
	Total    int
	Done     []int
	Finished bool
}

func (p *RecordingProgress) ChunksPlanned(source string, total int) {
	p.Source = source
	p.Total = total
}

func (p *RecordingProgress) ChunkDone(index int) {
	p.Done = append(p.Done, index)
}

func (p *RecordingProgress) Finish() {
	p.Finished = true
}
