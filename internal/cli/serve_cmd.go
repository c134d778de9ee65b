package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/httpapi"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return newAPIServer(app, addr).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from PLANCAD_HTTP_ADDR)")

	return cmd
}

func newAPIServer(app *App, addr string) *httpapi.Server {
	readTimeout, shutdownTimeout := defaultReadTimeout, defaultShutdownTimeout
	listen := defaultAddr
	if app.Server != nil {
		listen = app.Server.Address()
		readTimeout = app.Server.ReadTimeout()
		shutdownTimeout = app.Server.ShutdownTimeout()
	}
	if addr != "" {
		listen = addr
	}

	router := httpapi.NewRouter(&httpapi.Handler{
		Scripts:  app.Scripts,
		Drawings: app.Drawings,
		Catalog:  app.Catalog,
		Drafts:   app.Drafts,
	})
	return httpapi.NewServer(listen, router, readTimeout, shutdownTimeout)
}
