package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newEntriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List exported time entries as a table",
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

			projects := map[int64]string{}
			for _, p := range res.Projects {
				projects[p.RemoteID] = p.Name
			}

			bold := color.New(color.Bold).SprintFunc()
			cyan := color.New(color.FgCyan).SprintFunc()

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(bold("DAY"), bold("START"), bold("END"), bold("DURATION"), bold("PROJECT"), bold("DESCRIPTION"))
			for _, e := range res.Entries {
				proj := ""
				if e.Project != nil {
					proj = cyan(projects[*e.Project])
				}
				table.AddRow(
					e.Day.String(),
					e.Start.Format("15:04"),
					e.End.Format("15:04"),
					fmtDur(e.End.Sub(e.Start)),
					proj,
					e.Description,
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}
