package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(s *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.app.Config
			handler, err := server.New(server.Config{
				Estimates: s.app.Estimates,
				Rollups:   s.app.Rollups,
				Buffers:   s.app.Buffers,
				Hierarchy: s.app.Hierarchy,
				BasePath:  cfg.Server.BasePath,
				Logger:    s.app.Logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
			}
			srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

			s.app.Logger.Info("serving api", zap.String("addr", ln.Addr().String()), zap.String("base_path", cfg.Server.BasePath))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving API on http://%s%s (OpenAPI at %s/openapi.json)\n",
				ln.Addr(), cfg.Server.BasePath, cfg.Server.BasePath)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	return cmd
}
