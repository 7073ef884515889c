package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stc/pkg/server"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		ephemeral bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capture and compose HTTP API",
		Example: `  stc serve --addr :8417
  curl -X POST localhost:8417/tabs -d '{"url":"https://community.example.com/feed"}'
  curl -X POST localhost:8417/panel/testimonial
  curl -o out.png localhost:8417/composer/render?bg=navy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config().Server.Addr
			}

			ws, err := c.openWorkspace(ctx, ephemeral)
			if err != nil {
				return err
			}
			defer ws.Close()

			logger := loggerFromContext(ctx)
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(ws.browser, ws.repo, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			printSuccess("Listening on %s", StyleLink.Render("http://"+addr))
			if ephemeral {
				printDetail("Selection is kept in memory and lost on exit")
			}

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultAddr+")")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep the selection in memory instead of the configured store")

	return cmd
}
