package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "meeting-transcriber/internal/app/errors"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		expectError   bool
		errorContains string
	}{
		{
			name:      "valid OpenAI key",
			openaiKey: "sk-1234567890abcdef1234567890abcdef",
		},
		{
			name:      "empty key is allowed",
			openaiKey: "",
		},
		{
			name:      "surrounding whitespace is trimmed",
			openaiKey: "  sk-1234567890abcdef1234567890abcdef \n",
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key-1234567890abcdef",
			expectError:   true,
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)

			keys, err := GetAPIKeys()
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidAPIKey))
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, keys.OpenAI, " ")
		})
	}
}

func TestRequireAPIKeys(t *testing.T) {
	err := RequireAPIKeys(&APIKeys{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMissingAPIKey))

	assert.Error(t, RequireAPIKeys(nil))
	assert.NoError(t, RequireAPIKeys(&APIKeys{OpenAI: "sk-1234567890abcdef1234"}))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("TRANSCRIBER_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("TRANSCRIBER_TEST_VALUE"))

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRANSCRIBER_TEST_VALUE=from-dotenv\n"), 0o644))
	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "from-dotenv", os.Getenv("TRANSCRIBER_TEST_VALUE"))
}
