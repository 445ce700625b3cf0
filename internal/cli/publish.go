package cli

import (
	"strings"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
	"ticketdesk/internal/publish"
	"ticketdesk/internal/schema"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App, coll model.Collection) *cobra.Command {
	var (
		toDir     string
		overwrite bool
		opts      listOptions
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write " + string(coll) + " as markdown cards (index + one file per record)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(toDir) == "" {
				return writeErr(cmd, invalidInput("to", "required"))
			}
			ctx := cmd.Context()
			s := schema.For(coll)
			st, err := opts.state(s, app.pageSize())
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := fetchRecords(ctx, app, coll, opts.offline)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Every matching record, in view order; paging does not apply.
			rows := grid.Sort(grid.Filter(f.Records, s, st.Query), s, st.SortKey, st.Direction)
			res, err := publish.WriteCollection(coll, rows, toDir, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"collection": coll, "records": len(rows), "source": f.Source},
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().StringVar(&opts.query, "query", "", "Only publish records matching this filter")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Column key to order the index by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Publish the last cached snapshot")
	return cmd
}
