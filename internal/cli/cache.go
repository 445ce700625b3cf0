package cli

import (
	"ticketdesk/internal/model"
	"ticketdesk/internal/store"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Offline snapshot cache commands",
	}
	cmd.AddCommand(newCacheShowCmd(app))
	cmd.AddCommand(newCacheClearCmd(app))
	return cmd
}

func newCacheShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List cached collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := store.OpenCache()
			if err != nil {
				return writeErr(cmd, err)
			}
			snaps, err := cache.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": snaps,
				"meta": map[string]any{"path": cache.Path()},
			})
		},
	}
}

func newCacheClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [collection...]",
		Short: "Drop cached snapshots (all when no collection is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			colls := make([]string, 0, len(args))
			for _, a := range args {
				c, ok := model.ParseCollection(a)
				if !ok {
					return writeErr(cmd, invalidInput("collection", a))
				}
				colls = append(colls, string(c))
			}
			cache, err := store.OpenCache()
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := cache.Clear(cmd.Context(), colls...)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": n}})
		},
	}
}
