// Package testutil provides shared test doubles and fixtures for the
// transcription pipeline.
//
// Mocks are built on github.com/stretchr/testify/mock and bound to the
// running test, so unexpected calls fail it:
//
//	transcriber := testutil.NewMockTranscriber(t)
//	transcriber.On("Transcribe", mock.Anything, "talk.mp3").Return("hola", nil)
//	defer transcriber.AssertExpectations(t)
//
// Fixtures create small files under t.TempDir() that are removed after the test.
package testutil
