package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "meeting-transcriber/internal/app/errors"
	"meeting-transcriber/internal/app/model"
)

// CommandRunner runs the external audio tools. The default implementation
// shells out; tests substitute a fake.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Output runs the command and returns its standard output.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s error: %v, stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Run runs the command, capturing stderr so failures explain themselves.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s error: %v, stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Probe measures the byte size and duration of the audio file at path.
func Probe(ctx context.Context, runner CommandRunner, path string) (model.AudioSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AudioSource{}, apperrors.Wrap(err, apperrors.ErrFileNotFound, path)
		}
		return model.AudioSource{}, apperrors.Wrap(err, apperrors.ErrFileReadFailed, path)
	}

	output, err := runner.Output(ctx, "ffprobe", "-v", "error", "-print_format", "json", "-show_format", path)
	if err != nil {
		return model.AudioSource{}, apperrors.Wrap(err, apperrors.ErrProbeFailed, path)
	}

	duration, err := parseProbeDuration(output)
	if err != nil {
		return model.AudioSource{}, apperrors.Wrap(err, apperrors.ErrProbeFailed, path)
	}
	if duration <= 0 {
		return model.AudioSource{}, apperrors.Wrap(apperrors.Newf("duration %s", duration), apperrors.ErrEmptyAudio, path)
	}

	return model.AudioSource{
		Path:     path,
		Size:     info.Size(),
		Duration: duration,
	}, nil
}

// parseProbeDuration reads format.duration (seconds, decimal) at millisecond precision.
func parseProbeDuration(output []byte) (time.Duration, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probeOutput.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probeOutput.Format.Duration, err)
	}

	return time.Duration(math.Round(seconds*1000)) * time.Millisecond, nil
}
