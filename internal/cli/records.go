package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ticketdesk/internal/format"
	"ticketdesk/internal/grid"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"
	"ticketdesk/internal/schema"
	"ticketdesk/internal/store"

	"github.com/spf13/cobra"
)

// fetched is one record list plus where it came from.
type fetched struct {
	Records   []grid.Record
	Source    string
	Server    string
	FetchedAt time.Time
}

// fetchRecords loads coll from the backend (refreshing the offline cache) or,
// when offline, from the cache.
func fetchRecords(ctx context.Context, app *App, coll model.Collection, offline bool) (fetched, error) {
	cache, err := store.OpenCache()
	if err != nil {
		return fetched{}, err
	}
	if offline {
		snap, err := cache.Load(ctx, string(coll))
		if errors.Is(err, store.ErrNoSnapshot) {
			return fetched{}, fmt.Errorf("no cached %s; run `ticketdesk %s list` online first", coll, coll)
		}
		if err != nil {
			return fetched{}, err
		}
		return fetched{Records: snap.Records, Source: "cache", Server: snap.Server, FetchedAt: snap.FetchedAt}, nil
	}

	c, err := app.client(ctx)
	if err != nil {
		return fetched{}, err
	}
	recs, err := c.List(ctx, coll)
	if err != nil {
		return fetched{}, backendError(err, coll.Singular(), "")
	}
	now := time.Now().UTC()
	if err := cache.Save(ctx, string(coll), c.Server(), recs, now); err != nil {
		logging.FromContext(ctx).Warn("cache snapshot not saved", "collection", coll, "err", err)
	}
	return fetched{Records: recs, Source: "backend", Server: c.Server(), FetchedAt: now}, nil
}

type listOptions struct {
	query    string
	sort     string
	desc     bool
	page     int
	pageSize int
	offline  bool
}

// state turns flags into a view state, rejecting sort keys the schema
// cannot sort by.
func (o listOptions) state(s grid.Schema, defaultSize int) (grid.State, error) {
	st := grid.DefaultState().WithPageSize(defaultSize)
	if o.pageSize != 0 {
		if o.pageSize < 1 {
			return st, invalidInput("page-size", "must be >= 1")
		}
		st = st.WithPageSize(o.pageSize)
	}
	st = st.WithQuery(o.query)
	if key := strings.TrimSpace(o.sort); key != "" {
		c, ok := s.Find(key)
		if !ok {
			return st, invalidInput("sort", fmt.Sprintf("unknown column %q (known: %s)", key, strings.Join(s.Keys(), ", ")))
		}
		if !c.Sortable {
			return st, invalidInput("sort", fmt.Sprintf("column %q is not sortable", key))
		}
		dir := grid.Ascending
		if o.desc {
			dir = grid.Descending
		}
		st = st.WithSort(c.Key, dir)
	}
	if o.page < 0 {
		return st, invalidInput("page", "must be >= 1")
	}
	if o.page > 0 {
		st.Page = o.page
	}
	return st, nil
}

// listTable renders one page through the grid's header and cell renderers.
func listTable(g *grid.Grid, res grid.Result) format.Table {
	t := format.Table{}
	for _, h := range g.Header() {
		t.Headers = append(t.Headers, h.Label())
	}
	for _, r := range res.Rows {
		t.Rows = append(t.Rows, g.Cells(r))
	}
	t.Caption = pagerCaption(res)
	return t
}

func pagerCaption(res grid.Result) string {
	prev, next := "‹ prev", "next ›"
	if !res.HasPrev() {
		prev = strings.Repeat(" ", len([]rune(prev)))
	}
	if !res.HasNext() {
		next = ""
	}
	line := prev + "  " + res.Label() + "  " + next
	return strings.TrimRight(line, " ") + fmt.Sprintf("  (%d of %d records)", res.Matched, res.Total)
}

func newListCmd(app *App, coll model.Collection) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + string(coll) + " (filter, sort, paginate)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			g := grid.NewWithState(s, f.Records, st)
			res := g.View()
			logging.FromContext(ctx).Debug("list view",
				"collection", coll,
				"total", res.Total,
				"matched", res.Matched,
				"page", res.Page.Page,
			)

			if strings.EqualFold(app.Format, "table") {
				t := listTable(g, res)
				if msg := res.EmptyMessage(); msg != "" {
					t.Caption = msg
				}
				return writeOut(cmd, app, t)
			}

			rows := res.Rows
			if rows == nil {
				rows = []grid.Record{}
			}
			view := g.State()
			meta := map[string]any{
				"collection": coll,
				"page":       res.Page.Page,
				"totalPages": res.TotalPages,
				"pageSize":   view.PageSize,
				"total":      res.Total,
				"filtered":   res.Matched,
				"query":      view.Query,
				"prev":       res.HasPrev(),
				"next":       res.HasNext(),
				"source":     f.Source,
				"server":     f.Server,
				"fetchedAt":  f.FetchedAt,
			}
			if view.Sorted() {
				meta["sort"] = map[string]any{"key": view.SortKey, "direction": view.Direction.String()}
			}
			if msg := res.EmptyMessage(); msg != "" {
				meta["empty"] = msg
			}

			var hints []string
			if res.HasNext() {
				hints = append(hints, listHint(coll, opts, res.Page.Page+1))
			}
			if res.HasPrev() {
				hints = append(hints, listHint(coll, opts, res.Page.Page-1))
			}
			out := map[string]any{"data": rows, "meta": meta}
			if len(hints) > 0 {
				out["_hints"] = hints
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&opts.query, "query", "", "Case-insensitive text filter across all columns")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Column key to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.page, "page", 0, "Page number (clamped to the last page)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page (default: config pageSize, then 10)")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Read the last cached snapshot instead of the backend")
	return cmd
}

func listHint(coll model.Collection, o listOptions, page int) string {
	parts := []string{"ticketdesk", string(coll), "list"}
	if o.query != "" {
		parts = append(parts, "--query", strconv.Quote(o.query))
	}
	if o.sort != "" {
		parts = append(parts, "--sort", o.sort)
		if o.desc {
			parts = append(parts, "--desc")
		}
	}
	if o.pageSize > 0 {
		parts = append(parts, "--page-size", strconv.Itoa(o.pageSize))
	}
	if o.offline {
		parts = append(parts, "--offline")
	}
	parts = append(parts, "--page", strconv.Itoa(page))
	return strings.Join(parts, " ")
}
