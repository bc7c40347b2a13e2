package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclerk-cli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.resolve()
			if err != nil {
				return err
			}
			path, err := config.Path()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config file  %s\n", path)
			fmt.Fprintf(out, "server       %s\n", orNone(cfg.Server))
			if cfg.Days > 0 {
				fmt.Fprintf(out, "days         %d\n", cfg.Days)
			} else {
				fmt.Fprintln(out, "days         (service default)")
			}
			fmt.Fprintf(out, "timezone     %s\n", orNone(cfg.Timezone))
			fmt.Fprintf(out, "debug log    %s\n", orNone(cfg.DebugLog))
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

// newConfigSetCmd persists the current flag values on top of the existing
// file. Only flags the user actually set are written.
func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Persist --server/--days/--timezone/--debug-log to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if app.Server != "" {
				cfg.Server = app.Server
			}
			if app.Days != 0 {
				cfg.Days = app.Days
			}
			if app.Timezone != "" {
				if _, err := (&config.Config{Timezone: app.Timezone}).Location(); err != nil {
					return err
				}
				cfg.Timezone = app.Timezone
			}
			if app.DebugLog != "" {
				cfg.DebugLog = app.DebugLog
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			path, _ := config.Path()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
