package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/components/cardform"
	"github.com/goliatone/go-cardform/pkg/orchestrator"
	"github.com/goliatone/go-cardform/pkg/renderers/vanilla"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card form HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			o, err := orchestrator.FromConfig(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer o.Close()

			mux, pattern, err := newServeMux(a, o)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.log.Info("listening", "addr", srv.Addr, "routes", pattern)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				a.log.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// newServeMux mounts the card component under the configured base path and
// the preview stylesheet and logos under /assets/.
func newServeMux(a *app, o *orchestrator.Orchestrator) (*http.ServeMux, string, error) {
	component, err := cardform.New(
		cardform.WithCommitter(o.Committer()),
		cardform.WithRenderers(o.Registry()),
		cardform.WithNextURL(o.NextURL()),
		cardform.WithRevealRecords(a.cfg.Server.RevealRecords),
		cardform.WithLogger(a.log),
	)
	if err != nil {
		return nil, "", err
	}

	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, a.cfg.Server.BasePath)
	if err != nil {
		return nil, "", fmt.Errorf("register routes: %w", err)
	}
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	return mux, pattern, nil
}
