package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			module, err := openModule(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			if err := module.Bootstrap(ctx); err != nil {
				return err
			}
			handler, err := module.HTTPHandler()
			if err != nil {
				return err
			}

			httpCfg := module.Container().Config.HTTP
			srv := &http.Server{
				Addr:         httpCfg.Addr,
				Handler:      handler,
				ReadTimeout:  httpCfg.ReadTimeout,
				WriteTimeout: httpCfg.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("mdshelf")+" listening on "+httpCfg.Addr+httpCfg.BasePath)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	return cmd
}
