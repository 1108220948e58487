package serve

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"
	"meeting-transcriber/cmd/transcriber/cmd/bootstrap"
	"meeting-transcriber/internal/api/server"
	"meeting-transcriber/internal/app"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/config"
)

const shutdownTimeout = 30 * time.Second

var tunnel bool

func init() {
	Cmd.Flags().BoolVar(&tunnel, "tunnel", false,
		"expose the server through an ngrok tunnel, reads NGROK_AUTHTOKEN")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload web page",
	Long: `Start the upload web page.

- GET / shows the upload form, POST /transcribe processes one file
- /health and /metrics are available for monitoring
- With --tunnel the page is also published on a public ngrok URL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := metrics.NewMetrics(nil)
		srv := server.NewServer(server.Options{
			Settings:  settings,
			Processor: app.InitializeService(settings, logger, nil, m),
			Metrics:   m,
			Logger:    logger,
		})

		listener, publicURL, err := listen(ctx, settings, logger)
		if err != nil {
			return err
		}
		if publicURL != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Public URL: %s\n", publicURL)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Serve(listener)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// listen opens the local listener, or an ngrok tunnel and its public URL.
func listen(ctx context.Context, settings *config.Settings, logger *zap.Logger) (net.Listener, string, error) {
	if !tunnel {
		listener, err := net.Listen("tcp", settings.Server.Addr())
		return listener, "", err
	}

	tun, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtokenFromEnv())
	if err != nil {
		return nil, "", fmt.Errorf("failed to open ngrok tunnel: %w", err)
	}
	logger.Info("ngrok tunnel established", zap.String("url", tun.URL()))
	return tun, tun.URL(), nil
}
