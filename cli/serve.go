package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/gesturekit/bridge"
	"github.com/dshills/gesturekit/config"
)

const shutdownTimeout = 5 * time.Second

var (
	serveAddr           string
	serveAllowAnyOrigin bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the websocket gesture bridge",
	Long: `Serves the gesture bridge: remote hosts stream raw pointer JSON over
a websocket and receive classified gesture events back. Also exposes
/healthz and /stats.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Bridge.Addr = serveAddr
		}
		if cmd.Flags().Changed("allow-any-origin") {
			cfg.Bridge.AllowAnyOrigin = serveAllowAnyOrigin
		}

		srv := bridge.New(cfg, log)

		// Live reload: retune every open session when the config file
		// changes.
		if configPath != "" {
			w, err := config.Watch(configPath, func(next config.Config) {
				srv.SetConfig(next)
			}, config.WithErrorHandler(func(err error) {
				log.WithError(err).Warn("config reload failed")
			}))
			if err != nil {
				log.WithError(err).Warn("config watch unavailable")
			} else {
				defer w.Close()
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAnyOrigin, "allow-any-origin", false, "accept websocket upgrades from any origin")
}
