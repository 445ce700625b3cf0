package cli

import (
	"context"
	"testing"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/model"
	"ticketdesk/internal/store"
)

func TestSnapshotBackend_ListRefreshesCache(t *testing.T) {
	_, url := setup(t)
	ctx := context.Background()

	c, err := backend.New(url)
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	cache, err := store.OpenCache()
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	b := snapshotBackend{Client: c, cache: cache}

	recs, err := b.List(ctx, model.CollectionTickets)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	snap, err := cache.Load(ctx, string(model.CollectionTickets))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Count != len(recs) || snap.Server != c.Server() {
		t.Fatalf("unexpected snapshot: count=%d server=%q", snap.Count, snap.Server)
	}
}
