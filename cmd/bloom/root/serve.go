package root

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"skillbloom/internal/engine"
	"skillbloom/internal/server"
	"skillbloom/internal/ui"
)

func newServeCmd() *cobra.Command {
	var addr string
	var mock bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the web frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			db, cleanup, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			gen, usingMock := newGenerator(cfg, mock)
			if usingMock {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" No API key configured — /api/generate serves the built-in sample roadmap."))
			}

			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           server.NewServer(engine.NewService(db), gen).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGarden, "Serving on http://"+cfg.ListenAddr))

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().BoolVarP(&mock, "mock", "m", false, "Serve the built-in sample roadmap instead of calling the API")

	return cmd
}
