package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-explorer/internal/api"
	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/observability"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var port string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API over the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			server := api.NewServer(api.ServerConfig{
				Address: ":" + port,
				Handler: api.NewHandler(svc),
				Logger:  observability.Logger(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Serve(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	serveCmd.Flags().StringVar(&port, "port", config.EnvOr("CLAUDE_EXPLORER_PORT", "8420"), "TCP port to listen on")
	return serveCmd
}
