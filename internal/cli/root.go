// Package cli wires the cobra command tree: the bare command opens the
// interactive timeline, subcommands cover scriptable views, the demo server,
// configuration and docs.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timeclerk-cli/internal/config"
	"timeclerk-cli/internal/syncapi"
	"timeclerk-cli/internal/tui"
)

type App struct {
	Server   string
	Days     int
	Timezone string
	DebugLog string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "timeclerk",
		Short:        "Review tracked work sessions and export them as time entries",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive timeline
  timeclerk

  # Scriptable views
  timeclerk sessions
  timeclerk entries

  # Local demo service with generated data
  timeclerk serve
  timeclerk --server http://localhost:8090
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive timeline.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTimeline(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TIMECLERK_SERVER", ""), "Sync service base URL (overrides config)")
	cmd.PersistentFlags().IntVar(&app.Days, "days", 0, "How many days back to load (0 = config/service default)")
	cmd.PersistentFlags().StringVar(&app.Timezone, "timezone", envOr("TIMECLERK_TZ", ""), "IANA timezone for localizing timestamps (overrides config)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", "", "File that receives diagnostic lines (overrides config)")

	cmd.AddCommand(newSessionsCmd(app))
	cmd.AddCommand(newEntriesCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd())

	return cmd
}

// resolve merges the persisted config with the flags (flags win) and turns
// the result into the pieces commands need.
func (app *App) resolve() (*config.Config, *time.Location, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if app.Server != "" {
		cfg.Server = app.Server
	}
	if app.Days != 0 {
		cfg.Days = app.Days
	}
	if app.Timezone != "" {
		cfg.Timezone = app.Timezone
	}
	if app.DebugLog != "" {
		cfg.DebugLog = app.DebugLog
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, loc, nil
}

func (app *App) client() (*syncapi.Client, *time.Location, *config.Config, error) {
	cfg, loc, err := app.resolve()
	if err != nil {
		return nil, nil, nil, err
	}
	if strings.TrimSpace(cfg.Server) == "" {
		return nil, nil, nil, fmt.Errorf("no sync service configured; pass --server or run `timeclerk config set --server <url>` (try `timeclerk serve` for a local demo)")
	}
	opts := []syncapi.Option{syncapi.WithLocation(loc)}
	if cfg.Days > 0 {
		opts = append(opts, syncapi.WithDays(cfg.Days))
	}
	return syncapi.NewClient(cfg.Server, opts...), loc, cfg, nil
}

func runTimeline(app *App) error {
	client, loc, cfg, err := app.client()
	if err != nil {
		return err
	}
	return tui.Run(client, tui.Options{
		Location:     loc,
		DebugLogPath: cfg.DebugLog,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
