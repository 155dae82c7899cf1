package cli

import (
	"context"

	"fact-tracker/internal/api"

	"github.com/rs/zerolog/log"
)

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute starts the server and shuts it down gracefully once ctx is done
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	server := api.NewServer(c.app.services, c.app.repo, c.app.config, c.app.metrics)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return <-errCh
}
