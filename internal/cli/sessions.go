package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

const loadTimeout = 30 * time.Second

func newSessionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List tracked sessions as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := app.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
			defer cancel()
			res, err := client.Load(ctx)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold).SprintFunc()
			green := color.New(color.FgGreen).SprintFunc()

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(bold("DAY"), bold("START"), bold("END"), bold("CATEGORY"), bold("DURATION"), bold("EXPORTED"))
			for _, sn := range res.Sessions {
				exported := ""
				if sn.ExportedID != nil {
					exported = green("✓")
				}
				table.AddRow(
					sn.Day.String(),
					sn.Start.Format("15:04"),
					sn.End.Format("15:04"),
					categoryColor(sn.Category).Sprint(sn.Category),
					fmtDur(sn.End.Sub(sn.Start)),
					exported,
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}

func categoryColor(category string) *color.Color {
	switch category {
	case "coding":
		return color.New(color.FgGreen)
	case "meetings":
		return color.New(color.FgYellow)
	}
	return color.New(color.Faint)
}

func fmtDur(d time.Duration) string {
	return d.Truncate(time.Minute).String()
}
