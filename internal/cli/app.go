package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"fact-tracker/internal/config"
	"fact-tracker/internal/logging"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/services"
	"fact-tracker/internal/validation"
)

// App represents the main CLI application
type App struct {
	repo     repository.Repository
	services *services.ServiceContainer
	config   *config.Config
	metrics  *monitor.Metrics
	in       io.Reader
	out      io.Writer
	registry *CommandRegistry
	tracing  *monitor.TracerProvider
}

// AppFactory builds an App for a resolved configuration
type AppFactory func(ctx context.Context, cfg *config.Config) (*App, error)

// NewApp creates a new CLI application instance with dependency injection
func NewApp(repo repository.Repository, cfg *config.Config, opts ...services.Option) *App {
	metrics := monitor.NewMetrics()
	opts = append([]services.Option{
		services.WithValidator(validation.NewValidatorWithConfig(cfg)),
		services.WithMetrics(metrics),
	}, opts...)

	app := &App{
		repo:     repo,
		services: services.NewServiceContainer(repo, opts...),
		config:   cfg,
		metrics:  metrics,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// NewAppWithDefaultRepository opens the repository selected by the configuration.
// When tracing is enabled, service spans are written to stderr.
func NewAppWithDefaultRepository(ctx context.Context, cfg *config.Config) (*App, error) {
	return newAppWithTracing(ctx, cfg, os.Stderr, config.CreateRepository)
}

func newAppWithTracing(ctx context.Context, cfg *config.Config, spans io.Writer,
	open func(context.Context, *config.Config) (repository.Repository, error)) (*App, error) {
	var (
		tp   *monitor.TracerProvider
		opts []services.Option
	)
	if cfg.Tracing.Enabled {
		var err error
		if tp, err = monitor.NewStdoutTracerProvider(spans); err != nil {
			return nil, err
		}
		opts = append(opts, services.WithTracer(tp.ServiceTracer()))
	}

	repo, err := open(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	app := NewApp(repo, cfg, opts...)
	app.tracing = tp
	return app, nil
}

// SetIO redirects command input and output
func (a *App) SetIO(in io.Reader, out io.Writer) {
	a.in = in
	a.out = out
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// Close flushes pending spans and releases the repository
func (a *App) Close() error {
	if err := a.tracing.Shutdown(context.Background()); err != nil {
		logging.FromContext(context.Background()).Warn().Err(err).Msg("failed to flush spans")
	}
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// timeout returns the configured per-command deadline
func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}
