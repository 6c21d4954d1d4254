package eventstore

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, eventType := range []string{"page.content_updated", "page.deleted", "page.content_updated"} {
		err := store.Append(ctx, Delivery{
			EventID:    "e-" + string(rune('a'+i)),
			EventType:  eventType,
			PageID:     "page-1",
			ReceivedAt: time.Unix(int64(1700000000+i), 0),
			Payload:    []byte(`{"entity":{"id":"page-1"}}`),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(recent))
	}
	// Newest first.
	if recent[0].EventID != "e-c" || recent[1].EventID != "e-b" {
		t.Fatalf("unexpected order: %v", recent)
	}
	if recent[0].EventType != "page.content_updated" || recent[0].PageID != "page-1" {
		t.Fatalf("unexpected delivery: %+v", recent[0])
	}
}

func TestAppendDefaultsReceivedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, Delivery{EventID: "e", EventType: "t"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	recent, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if recent[0].ReceivedAt.IsZero() {
		t.Fatal("received_at must default to now")
	}
}

func TestCountByType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, eventType := range []string{"a", "a", "b"} {
		if err := store.Append(ctx, Delivery{EventID: "e", EventType: eventType}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	counts, err := store.CountByType(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store := newTestStore(t)
	recent, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no deliveries, got %v", recent)
	}
}
