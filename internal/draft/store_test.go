package draft

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, ok, err := s.Get(context.Background(), 1); err != nil || ok {
		t.Fatalf("expected (_, false, nil), got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStorePutGetRemove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := New()
	d.Title = "hello"
	if err := s.Put(ctx, 1, d); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != d {
		t.Fatalf("got %+v, want %+v", got, d)
	}

	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, 1); ok {
		t.Fatal("draft survived Remove")
	}
	// Removing an absent id is a no-op, not an error.
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestMemoryStoreUpdateCreatesFresh(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Update(context.Background(), 2, func(d *Draft) {
		d.Due = DueToday
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Due != DueToday || got.Priority != PriorityNormal {
		t.Fatalf("update on absent id must start from defaults: %+v", got)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Update(ctx, 1, func(d *Draft) { d.Title = "one" }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok, _ := s.Get(ctx, 2); ok {
		t.Fatal("chat 2 must not see chat 1's draft")
	}
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.Update(ctx, 1, func(d *Draft) { d.Priority = PriorityHigh })
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Update(ctx, 1, func(d *Draft) { d.Due = DueTomorrow })
		}()
	}
	wg.Wait()

	d, ok, err := s.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	// Both fields must survive: racing Updates may interleave but not lose writes.
	if d.Priority != PriorityHigh || d.Due != DueTomorrow {
		t.Fatalf("lost update: %+v", d)
	}
}
