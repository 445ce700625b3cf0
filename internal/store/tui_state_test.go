package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Missing file => default state.
	st0, err := LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{
		Version:         1,
		Collection:      "events",
		PageSize:        20,
		RecentTicketIDs: []int64{7, 3},
	}
	if err := SaveTUIState(dir, want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	got, err := LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptFileLoadsDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tuiStateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Version != 1 || st.Collection != "" {
		t.Fatalf("expected default state, got %#v", st)
	}
}

func TestTUIState_TouchTicket(t *testing.T) {
	t.Parallel()

	var st TUIState
	for _, id := range []int64{1, 2, 3, 2} {
		st.TouchTicket(id)
	}
	if !reflect.DeepEqual(st.RecentTicketIDs, []int64{2, 3, 1}) {
		t.Fatalf("recent = %v, want [2 3 1]", st.RecentTicketIDs)
	}
	for i := int64(10); i < 30; i++ {
		st.TouchTicket(i)
	}
	if len(st.RecentTicketIDs) != maxRecentTickets || st.RecentTicketIDs[0] != 29 {
		t.Fatalf("recent = %v", st.RecentTicketIDs)
	}
}
