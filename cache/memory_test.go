package cache

import (
	"context"
	"testing"
	"time"

	"venus-recipe/logger"
)

type payload struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func newTestMemory() (*Memory, *time.Time) {
	m := NewMemory(logger.Discard())
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory()

	var got payload
	if ok, err := m.Get(ctx, "missing", &got); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	if err := m.Set(ctx, "k", payload{Name: "大米", Total: 1.5}, time.Minute); err != nil {
		t.Fatal(err)
	}
	ok, err := m.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if got.Name != "大米" || got.Total != 1.5 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m, now := newTestMemory()

	_ = m.Set(ctx, "short", 1, time.Minute)
	_ = m.Set(ctx, "forever", 2, 0)

	*now = now.Add(2 * time.Minute)

	var v int
	if ok, _ := m.Get(ctx, "short", &v); ok {
		t.Error("expired entry was returned")
	}
	if ok, _ := m.Get(ctx, "forever", &v); !ok || v != 2 {
		t.Errorf("entry without ttl: ok=%v v=%d", ok, v)
	}
	if n := m.sweep(); n != 1 {
		t.Errorf("sweep removed %d, want 1", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMemoryDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory()

	_ = m.Set(ctx, StatisticsKey(1, "grains"), 1, time.Hour)
	_ = m.Set(ctx, StatisticsKey(1, "meat"), 1, time.Hour)
	_ = m.Set(ctx, StatisticsKey(12, "grains"), 1, time.Hour)
	_ = m.Set(ctx, CampusesKey, 1, time.Hour)

	n, err := m.DeleteByPattern(ctx, StatisticsPattern(1))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	var v int
	if ok, _ := m.Get(ctx, StatisticsKey(12, "grains"), &v); !ok {
		t.Error("generation 12 must survive invalidation of generation 1")
	}
	if ok, _ := m.Get(ctx, CampusesKey, &v); !ok {
		t.Error("campus list must survive statistics invalidation")
	}

	if _, err := m.DeleteByPattern(ctx, "statistics:["); err == nil {
		t.Error("malformed pattern should fail")
	}
}

func TestMemoryJanitorStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m, _ := newTestMemory()
	m.StartJanitor(ctx)
	cancel()
	if err := m.Delete(context.Background(), "anything"); err != nil {
		t.Fatal(err)
	}
}
