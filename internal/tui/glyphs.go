package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but they can choose between
// Unicode and ASCII glyph sets for sort markers, pager arrows and cut-offs.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// glyphSort maps the grid's direction glyph to the active set.
func glyphSort(g string) string {
	if glyphs() != glyphSetASCII {
		return g
	}
	switch g {
	case "▲":
		return "^"
	case "▼":
		return "v"
	}
	return g
}

func glyphPrev() string {
	if glyphs() == glyphSetASCII {
		return "< prev"
	}
	return "‹ prev"
}

func glyphNext() string {
	if glyphs() == glyphSetASCII {
		return "next >"
	}
	return "next ›"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "…"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}
