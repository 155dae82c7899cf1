package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fact-tracker/internal/config"
	"fact-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	app     *App
	config  *config.Config
	errors  *ErrorHandler

	importJSON bool
	report     reportFlags
}

type reportFlags struct {
	email       string
	description string
	from        string
	to          string
	pageIndex   int
	pageSize    int
}

// Execute builds the production root command and runs it
func Execute() error {
	return NewRootCommand(NewAppWithDefaultRepository).Execute()
}

// NewRootCommand creates the root cobra command with global flags.
// The factory is called once flags are parsed and configuration is resolved.
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{
		factory: factory,
		errors:  NewErrorHandler(),
	}

	root.cmd = &cobra.Command{
		Use:   "ft",
		Short: "Record and report execution facts",
		Long: `Fact Tracker (ft) records execution facts: who performed which piece of work and when.

FEATURES:
  • Register participants and record execution facts against them
  • Serve a JSON HTTP API with search, CSV reports and bulk upload
  • Bulk import facts from a JSON array, keeping valid records when others fail
  • Stream filtered CSV reports to stdout
  • Run on an embedded SQLite file or a PostgreSQL server

EXAMPLES:
  ft serve                                     # Start the HTTP API on 127.0.0.1:8080
  ft participant add "Ann Example" ann@example.com
  ft participant list
  ft import facts.json                         # Import a JSON array of facts
  cat facts.json | ft import - --json          # Import from stdin, print the JSON summary
  ft report --email ann@example.com > ann.csv  # Export Ann's facts as CSV
  ft report --from 2024-01-01T00:00 --to 2024-01-31T23:59
  ft fact get <id>
  ft fact delete <id>

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > YAML file > defaults
  A .env file in the working directory is loaded into the environment first.

  Database Configuration:
    FT_DB_DRIVER                               sqlite or postgres (default: sqlite)
    FT_DB_DIR                                  SQLite directory (default: ~/.ft)
    FT_DB_FILENAME                             SQLite filename (default: ft.db)
    FT_DB_DSN                                  PostgreSQL connection string
    FT_DB_QUERY_TIMEOUT                        Query timeout (default: 10s)
    FT_DB_MAX_OPEN_CONNS                       PostgreSQL pool size (default: 10)

  Server Configuration:
    FT_SERVER_HOST                             Listen host (default: 127.0.0.1)
    FT_SERVER_PORT                             Listen port (default: 8080)
    FT_SERVER_READ_TIMEOUT                     Read timeout (default: 15s)
    FT_SERVER_WRITE_TIMEOUT                    Write timeout (default: 60s)
    FT_SERVER_SHUTDOWN_TIMEOUT                 Graceful shutdown timeout (default: 10s)
    FT_SERVER_MAX_UPLOAD_BYTES                 Upload size limit (default: 10485760)

  Search Configuration:
    FT_PAGINATION_MAX_PAGE_SIZE                Largest accepted page size (default: 100)

  Logging and Metrics:
    FT_LOG_LEVEL                               debug, info, warn or error (default: info)
    FT_LOG_FORMAT                              console or json (default: console)
    FT_METRICS_ENABLED                         Expose Prometheus metrics (default: true)
    FT_METRICS_PATH                            Metrics path (default: /metrics)
    FT_TRACING_ENABLED                         Write service spans to stderr (default: false)

  Application Configuration:
    FT_CONFIG                                  YAML configuration file
    FT_APP_TIMEOUT                             Per-command timeout (default: 60s)
    FT_APP_VERBOSE                             Enable verbose output (default: false)

DATE-TIMES:
  Date-times are ISO-8601 local date-times in UTC: 2024-01-10T09:00 or 2024-01-10T09:00:00

GETTING HELP:
  ft [command] --help                          # Get help for any specific command
  ft completion bash                           # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command, for tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML configuration file (overrides FT_CONFIG)")

	// Database configuration
	flags.String("db-driver", "", "Database driver: sqlite or postgres (overrides FT_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite directory (overrides FT_DB_DIR)")
	flags.String("db-filename", "", "SQLite filename (overrides FT_DB_FILENAME)")
	flags.String("db-dsn", "", "PostgreSQL connection string (overrides FT_DB_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides FT_DB_QUERY_TIMEOUT)")

	// Server configuration
	flags.String("host", "", "HTTP listen host (overrides FT_SERVER_HOST)")
	flags.Int("port", 0, "HTTP listen port (overrides FT_SERVER_PORT)")

	// Search configuration
	flags.Int("max-page-size", 0, "Largest accepted page size (overrides FT_PAGINATION_MAX_PAGE_SIZE)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides FT_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: console or json (overrides FT_LOG_FORMAT)")
	flags.Bool("trace", false, "Write service spans to stderr (overrides FT_TRACING_ENABLED)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides FT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides FT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve the execution fact API until interrupted. SIGINT and SIGTERM trigger a graceful shutdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return r.errors.Handle("serve", r.app.registry.Execute(ctx, "serve", args))
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Bulk import execution facts",
		Long: `Import a JSON array of execution facts. Each element looks like:

  {"executorId": "<participant id>", "description": "deploy", "startTime": "2024-01-10T09:00", "finishTime": "2024-01-10T10:00"}

Records are processed in order. Invalid records are reported and skipped; valid ones are kept.
A payload that is not a JSON array of facts is rejected without importing anything.
Use "-" to read the array from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.app.timeout())
			defer cancel()

			if c, ok := r.app.registry.Get("import"); ok {
				c.(*ImportCommand).JSON = r.importJSON
			}
			return r.errors.Handle("import execution facts", r.app.registry.Execute(ctx, "import", args))
		},
	}
	importCmd.Flags().BoolVar(&r.importJSON, "json", false, "Print the import result as JSON")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Write matching execution facts as CSV",
		Long: `Write execution facts matching every given filter to stdout as CSV.

The finish-time range applies only when both --from and --to are given.
Pages are read from --page onwards in chunks of --page-size.

Examples:
  ft report                                    # Every fact
  ft report --email ann@example.com            # Facts executed by Ann
  ft report --description deploy              # Facts described exactly as "deploy"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.app.timeout())
			defer cancel()

			if c, ok := r.app.registry.Get("report"); ok {
				r.applyReportFlags(cmd, c.(*ReportCommand))
			}
			return r.errors.Handle("write report", r.app.registry.Execute(ctx, "report", args))
		},
	}
	reportFlagSet := reportCmd.Flags()
	reportFlagSet.StringVar(&r.report.email, "email", "", "Executor email")
	reportFlagSet.StringVar(&r.report.description, "description", "", "Exact description")
	reportFlagSet.StringVar(&r.report.from, "from", "", "Earliest finish time, inclusive")
	reportFlagSet.StringVar(&r.report.to, "to", "", "Latest finish time, inclusive")
	reportFlagSet.IntVar(&r.report.pageIndex, "page", 0, "First page to include")
	reportFlagSet.IntVar(&r.report.pageSize, "page-size", 0, "Rows fetched per page")

	participantCmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage participants",
	}
	participantCmd.AddCommand(
		&cobra.Command{
			Use:   "add <full name> <email>",
			Short: "Register a participant and print its id",
			Args:  cobra.MinimumNArgs(2),
			RunE:  r.runGroup("participant add", "register participant"),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List participants by name",
			Args:  cobra.NoArgs,
			RunE:  r.runGroup("participant list", "list participants"),
		},
	)

	factCmd := &cobra.Command{
		Use:   "fact",
		Short: "Inspect and remove execution facts",
	}
	factCmd.AddCommand(
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show an execution fact",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runGroup("fact get", "get execution fact"),
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an execution fact",
			Long:  "Delete an execution fact. Deleting an unknown id succeeds.",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runGroup("fact delete", "delete execution fact"),
		},
	)

	r.cmd.AddCommand(
		serveCmd,
		importCmd,
		reportCmd,
		participantCmd,
		factCmd,
	)
}

func (r *RootCommand) runGroup(name, operation string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.app.timeout())
		defer cancel()

		return r.errors.Handle(operation, r.app.registry.Execute(ctx, name, args))
	}
}

func (r *RootCommand) applyReportFlags(cmd *cobra.Command, c *ReportCommand) {
	c.Email = r.report.email
	c.Description = r.report.description
	c.From = r.report.from
	c.To = r.report.to
	c.PageIndex = nil
	c.PageSize = nil
	if cmd.Flags().Changed("page") {
		c.PageIndex = &r.report.pageIndex
	}
	if cmd.Flags().Changed("page-size") {
		c.PageSize = &r.report.pageSize
	}
}

// setup resolves configuration, configures logging and builds the App
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	logging.Debugf("using %s storage", cfg.Database.Driver)

	app, err := r.factory(cmd.Context(), cfg)
	if err != nil {
		return r.errors.Handle("open storage", err)
	}
	app.SetIO(cmd.InOrStdin(), cmd.OutOrStdout())
	r.app = app
	return nil
}

func (r *RootCommand) teardown() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// overridesFromFlags collects the global flags that were explicitly set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("config") {
		v, _ := flags.GetString("config")
		overrides.ConfigFile = &v
	}
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-dsn") {
		v, _ := flags.GetString("db-dsn")
		overrides.DBDSN = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("host") {
		v, _ := flags.GetString("host")
		overrides.Host = &v
	}
	if flags.Changed("port") {
		v, _ := flags.GetInt("port")
		overrides.Port = &v
	}
	if flags.Changed("max-page-size") {
		v, _ := flags.GetInt("max-page-size")
		overrides.MaxPageSize = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("trace") {
		v, _ := flags.GetBool("trace")
		overrides.Tracing = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
