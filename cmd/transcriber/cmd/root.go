package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"meeting-transcriber/cmd/transcriber/cmd/bootstrap"
	"meeting-transcriber/cmd/transcriber/cmd/serve"
	"meeting-transcriber/cmd/transcriber/cmd/version"
	"meeting-transcriber/internal/app"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/app/model"
	"meeting-transcriber/internal/app/progress"
	"meeting-transcriber/internal/app/transcript"
	"meeting-transcriber/internal/config"
)

var (
	configPath string
	verbose    bool
	showBar    bool
)

// rootCmd transcribes the input given as the only argument
var rootCmd = &cobra.Command{
	Use:   "transcriber [input]",
	Short: "Turn a recorded presentation into structured notes",
	Long: `Turn a recorded presentation into structured notes.

- Audio inputs are split into chunks below the upload limit and transcribed with Whisper
- The raw transcript is saved to the output directory, then enhanced with a chat model
- .txt inputs skip transcription and are only enhanced
- Without an argument the input defaults to ` + config.DefaultInputPath,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runProcess,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, bootstrap.ConfigFlag, "c", "", "YAML settings file (default $"+config.ConfigFileEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, bootstrap.VerboseFlag, "V", false, "verbose output")
	rootCmd.Flags().BoolVar(&showBar, "progress", false, "force the chunk progress bar even when stderr is not a terminal")
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := config.DefaultInputPath
	if len(args) == 1 {
		inputPath = args[0]
	}

	settings, logger, err := bootstrap.Load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := progress.NewReporter(progress.Config{Enabled: progress.ShouldShowProgress(showBar), Writer: os.Stderr})
	service := app.InitializeService(settings, logger, reporter, metrics.NewMetrics(nil))

	out := cmd.OutOrStdout()
	kind := "audio"
	if transcript.IsTextInput(inputPath) {
		kind = "text"
	}
	fmt.Fprintf(out, "Processing %s file: %s\n", kind, inputPath)

	start := time.Now()
	result, err := service.Process(ctx, inputPath)
	reporter.Wait()
	if err != nil {
		return err
	}

	PrintResult(out, result, time.Since(start))
	return nil
}

// PrintResult writes the summary, cost lines, output paths and elapsed time.
func PrintResult(w io.Writer, result *model.TranscriptResult, elapsed time.Duration) {
	if result.Chunks > 0 {
		fmt.Fprintf(w, "Transcribed %d chunk(s) covering %s\n", result.Chunks, result.Duration.Round(time.Second))
	}
	if result.RawPath != "" {
		fmt.Fprintf(w, "Raw transcript saved to %s\n", result.RawPath)
	}

	if lines := result.Usage.Lines(); len(lines) > 0 {
		fmt.Fprintln(w)
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}

	if result.EnhancedPath != "" {
		fmt.Fprintf(w, "Enhanced transcript saved to %s\n", result.EnhancedPath)
	}
	if result.Enhancement != model.EnhancementApplied {
		fmt.Fprintln(w, "Warning: Enhancement failed or made no changes, using raw transcript")
	}

	fmt.Fprintf(w, "Processing completed in %.2f seconds\n", elapsed.Seconds())
}
