package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/format"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	ConfigFile string
	PrettyJSON bool
	Format     string
	LogLevel   string
	Timeout    time.Duration

	cfg *store.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ticketdesk",
		Short:        "Ticketing admin CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  ticketdesk

  # Scriptable commands
  ticketdesk tickets list --query vip --sort price --desc

  # Direct ticket lookup (shortcut for: ticketdesk tickets show <id>)
  ticketdesk 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		logger := logging.New(cmd.ErrOrStderr(), level)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TICKETDESK_SERVER", ""), "Backend base URL (default: config server, then "+store.DefaultServer+")")
	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("TICKETDESK_CONFIG", ""), "Path to config file (default: ~/.ticketdesk/config.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TICKETDESK_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TICKETDESK_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 0, "Per-request timeout (0 = config timeout, or none)")

	cmd.AddCommand(newTicketsCmd(app))
	cmd.AddCommand(newPersonsCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newVenuesCmd(app))
	cmd.AddCommand(newFunctionsCmd(app))
	cmd.AddCommand(newCacheCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) configPath() (string, error) {
	if p := strings.TrimSpace(app.ConfigFile); p != "" {
		return p, nil
	}
	return store.ConfigPath()
}

// config loads the config file once per invocation.
func (app *App) config() (*store.Config, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	path, err := app.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	app.cfg = cfg
	return cfg, nil
}

// server resolves the backend URL: flag, then env, then config, then default.
func (app *App) server() (string, error) {
	if s := strings.TrimSpace(app.Server); s != "" {
		return s, nil
	}
	cfg, err := app.config()
	if err != nil {
		return "", err
	}
	return cfg.ServerOrDefault(), nil
}

func (app *App) timeout() (time.Duration, error) {
	if app.Timeout < 0 {
		return 0, invalidInput("timeout", "must not be negative")
	}
	if app.Timeout > 0 {
		return app.Timeout, nil
	}
	cfg, err := app.config()
	if err != nil {
		return 0, err
	}
	return cfg.TimeoutOrZero()
}

func (app *App) client(ctx context.Context) (*backend.Client, error) {
	server, err := app.server()
	if err != nil {
		return nil, err
	}
	timeout, err := app.timeout()
	if err != nil {
		return nil, err
	}
	return backend.New(server,
		backend.WithTimeout(timeout),
		backend.WithLogger(logging.FromContext(ctx)),
	)
}

func (app *App) pageSize() int {
	cfg, err := app.config()
	if err != nil {
		return store.DefaultPageSize
	}
	return cfg.PageSizeOrDefault()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
