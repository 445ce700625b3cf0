package tui

import (
	"context"
	"errors"
	"log/slog"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the subset of the HTTP client the TUI drives.
type Backend interface {
	List(ctx context.Context, coll model.Collection) ([]grid.Record, error)
	Ticket(ctx context.Context, id int64) (grid.Record, error)
	DeleteByComment(ctx context.Context, comment string) error
	MinEventTicket(ctx context.Context) (grid.Record, error)
	CountCommentLess(ctx context.Context, comment string) (int64, error)
	SellTicket(ctx context.Context, req model.SellRequest) error
	CloneVIP(ctx context.Context, ticketID int64) (grid.Record, error)
}

type Options struct {
	Backend Backend
	Server  string

	// PageSize is the launch page size; remounts return to it.
	PageSize  int
	PageSizes []int

	Glyphs  string
	Profile string

	// MarkdownStyle is a glamour standard style; empty picks one from the
	// terminal.
	MarkdownStyle string

	// StateDir holds tui_state.json. Empty disables state persistence.
	StateDir string

	Logger *slog.Logger
}

// Run starts the TUI and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	if opts.Backend == nil {
		return errors.New("tui: missing backend")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	applyThemePreference()
	applyColorProfilePreference(opts.Profile)
	if gs, ok := parseGlyphSet(opts.Glyphs); ok {
		setGlyphs(gs)
	} else {
		opts.Logger.Warn("unknown glyph set, using unicode", "glyphs", opts.Glyphs)
	}

	m := newAppModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(appModel); ok {
		if serr := fm.saveState(); serr != nil {
			opts.Logger.Warn("save tui state", "err", serr)
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
