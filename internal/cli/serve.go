package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"timeclerk-cli/internal/config"
	"timeclerk-cli/internal/demoserver"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr   string
		dbPath string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local demo sync service with generated sessions",
		Long: "Serve the sync API locally: sessions and commits are generated\n" +
			"fixtures, time entries persist in SQLite. Point the timeline at it\n" +
			"with --server http://localhost:8090.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				dbPath = filepath.Join(dir, "demo.db")
			}
			db, err := demoserver.OpenDB(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("open demo db: %w", err)
			}
			defer db.Close()

			srv := demoserver.NewServer(db, demoserver.WithDays(days))
			fmt.Fprintf(cmd.OutOrStdout(), "demo sync service on http://localhost%s (db %s)\n", addr, dbPath)
			return http.ListenAndServe(addr, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file for time entries (default <config dir>/demo.db)")
	cmd.Flags().IntVar(&days, "days", 15, "Days of generated sessions")

	return cmd
}
