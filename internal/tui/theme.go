package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers. The TUI must stay readable on light and dark terminal
// backgrounds, so colors are adaptive and "faint" is only used on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorError      lipgloss.TerminalColor = ac("160", "203")
	colorOK         lipgloss.TerminalColor = ac("28", "114")
	colorBorder     lipgloss.TerminalColor = ac("250", "243")
)

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	header    lipgloss.Style
	headerCur lipgloss.Style
	rowCur    lipgloss.Style
	muted     lipgloss.Style
	statusErr lipgloss.Style
	statusOK  lipgloss.Style
	card      lipgloss.Style
	pagerOn   lipgloss.Style
	pagerOff  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		tab:       faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).Padding(0, 1),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1),
		header:    lipgloss.NewStyle().Bold(true),
		headerCur: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		rowCur:    lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg),
		muted:     faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		statusErr: lipgloss.NewStyle().Foreground(colorError),
		statusOK:  lipgloss.NewStyle().Foreground(colorOK),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		pagerOn:   lipgloss.NewStyle().Foreground(colorAccent),
		pagerOff:  faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which suits
// piped CLI output but can disable colors in a TUI. Here only NO_COLOR and
// the "mono" profile turn colors off.
func applyColorProfilePreference(profile string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.EqualFold(strings.TrimSpace(profile), "mono") {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	p := termenv.ColorProfile()

	// TERM/COLORTERM can report stronger support than the detector does.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if p != termenv.Ascii {
			p = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (p == termenv.Ascii || p == termenv.ANSI) {
		p = termenv.ANSI256
	}

	lipgloss.SetColorProfile(p)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) TICKETDESK_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TICKETDESK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
