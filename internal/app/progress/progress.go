package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Reporter draws one bar per transcribed source on the CLI.
type Reporter struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
	mu        sync.Mutex
}

func NewReporter(config Config) *Reporter {
	if !config.Enabled {
		return &Reporter{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &Reporter{
		container: container,
		enabled:   true,
	}
}

// ChunksPlanned starts a bar for total chunks of source.
func (r *Reporter) ChunksPlanned(source string, total int) {
	if !r.enabled || r.container == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	description := "Transcribing " + source
	r.bar = r.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)
}

// ChunkDone advances the current bar by one chunk.
func (r *Reporter) ChunkDone(int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enabled && r.bar != nil {
		r.bar.EwmaIncrement(time.Second)
	}
}

// Finish completes the current bar, also when the request aborted early.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enabled && r.bar != nil {
		r.bar.SetTotal(r.bar.Current(), true)
		r.bar = nil
	}
}

// Wait flushes the container. Call once, after the last Finish.
func (r *Reporter) Wait() {
	if r.enabled && r.container != nil {
		r.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
