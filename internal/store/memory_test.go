package store

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.SetWithContext(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.GetWithContext(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v; want v", got, err)
	}

	// Returned slices are copies.
	got[0] = 'x'
	again, _ := m.GetWithContext(ctx, "k")
	if string(again) != "v" {
		t.Errorf("stored value changed to %q", again)
	}

	if err := m.DeleteWithContext(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := m.GetWithContext(ctx, "k"); got != nil {
		t.Errorf("Get() after delete = %q, want nil", got)
	}
}

func TestMemory_MissingKey(t *testing.T) {
	got, err := NewMemory().GetWithContext(context.Background(), "missing")
	if got != nil || err != nil {
		t.Errorf("Get(missing) = %q, %v; want nil, nil", got, err)
	}
}

func TestMemory_IgnoresEmptyKeyOrValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.SetWithContext(ctx, "", []byte("v"), 0)
	_ = m.SetWithContext(ctx, "k", nil, 0)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	_ = m.SetWithContext(ctx, "short", []byte("a"), time.Minute)
	_ = m.SetWithContext(ctx, "forever", []byte("b"), 0)

	now = now.Add(59 * time.Second)
	if got, _ := m.GetWithContext(ctx, "short"); string(got) != "a" {
		t.Errorf("Get(short) before expiry = %q, want a", got)
	}

	now = now.Add(time.Second)
	if got, _ := m.GetWithContext(ctx, "short"); got != nil {
		t.Errorf("Get(short) at expiry = %q, want nil", got)
	}
	if got, _ := m.GetWithContext(ctx, "forever"); string(got) != "b" {
		t.Errorf("Get(forever) = %q, want b", got)
	}

	if removed := m.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
