package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"timeclerk-cli/internal/docs"
)

func newDocsCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				fmt.Fprintln(out, "topics: "+strings.Join(topics, ", "))
				return nil
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown docs topic %q (run `timeclerk docs` to list topics)", args[0])
			}
			if raw {
				fmt.Fprint(out, body)
				return nil
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				fmt.Fprint(out, body)
				return nil
			}
			rendered, err := r.Render(body)
			if err != nil {
				fmt.Fprint(out, body)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	return cmd
}
