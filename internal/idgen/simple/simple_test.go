package simple

import (
	"context"
	"regexp"
	"testing"
	"time"
)

func TestGetIDUnique(t *testing.T) {
	g := New("booking")
	ctx := context.Background()
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id, err := g.GetID(ctx)
		if err != nil {
			t.Fatalf("GetID: %v", err)
		}

		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}

		seen[id] = struct{}{}
	}
}

func TestGetIDFormat(t *testing.T) {
	g := New("booking")

	id, err := g.GetID(context.Background())
	if err != nil {
		t.Fatalf("GetID: %v", err)
	}

	if !regexp.MustCompile(`^booking-\d+-[0-9a-f]{9}$`).MatchString(id) {
		t.Errorf("unexpected id format %q", id)
	}
}

func TestGetIDStalledClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := New("booking")
	g.now = func() time.Time { return fixed }

	first, _ := g.GetID(context.Background())

	g.now = func() time.Time { return fixed.Add(-time.Hour) }

	second, _ := g.GetID(context.Background())

	want := fixed.UnixMilli() + 1
	if g.last != want {
		t.Errorf("last = %d, want %d", g.last, want)
	}

	if first == second {
		t.Error("ids repeated with a clock stepping back")
	}
}
