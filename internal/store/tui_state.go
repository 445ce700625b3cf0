package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// Callers should tolerate missing or invalid data; a corrupt file loads as the default.
type TUIState struct {
	Version int `json:"version"`

	// Collection is one of: tickets|persons|events|venues
	Collection string `json:"collection,omitempty"`

	// PageSize is the last page size chosen with +/-.
	PageSize int `json:"pageSize,omitempty"`

	// RecentTicketIDs stores most-recently-opened ticket ids, newest first.
	RecentTicketIDs []int64 `json:"recentTicketIds,omitempty"`
}

const maxRecentTickets = 10

// TouchTicket records id as the most recently opened ticket.
func (st *TUIState) TouchTicket(id int64) {
	out := []int64{id}
	for _, prev := range st.RecentTicketIDs {
		if prev != id && len(out) < maxRecentTickets {
			out = append(out, prev)
		}
	}
	st.RecentTicketIDs = out
}

func tuiStatePath(dir string) string {
	return filepath.Join(dir, tuiStateFileName)
}

func LoadTUIState(dir string) (*TUIState, error) {
	if strings.TrimSpace(dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(tuiStatePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(dir string, st *TUIState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "tui_state.json.*.tmp", tuiStatePath(dir), b, 0o644)
}
