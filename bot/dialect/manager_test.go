package dialect

import (
	"context"
	"testing"
)

type fakeMatch struct{ name string }

func (m fakeMatch) Dialect() string { return m.name }

type fakeDialect struct {
	name    string
	matches int
}

func (d *fakeDialect) Name() string { return d.name }

func (d *fakeDialect) Scan(content string) []Match {
	out := make([]Match, 0, d.matches)
	for i := 0; i < d.matches; i++ {
		out = append(out, fakeMatch{name: d.name})
	}
	return out
}

func (d *fakeDialect) Handle(ctx context.Context, trigger Trigger, match Match) (*Reply, error) {
	return nil, nil
}

func TestManagerKeepsRegistrationOrder(t *testing.T) {
	m := NewManager()
	if err := m.Register(&fakeDialect{name: "alpha", matches: 2}); err != nil {
		t.Fatalf("register alpha: %v", err)
	}
	if err := m.Register(&fakeDialect{name: "beta", matches: 1}); err != nil {
		t.Fatalf("register beta: %v", err)
	}

	dialects := m.Dialects()
	if len(dialects) != 2 {
		t.Fatalf("expected 2 dialects, got %d", len(dialects))
	}
	want := []string{"alpha", "beta"}
	for i, d := range dialects {
		if d.Name() != want[i] {
			t.Fatalf("dialect %d = %q, want %q", i, d.Name(), want[i])
		}
	}
}

func TestManagerDialectsReturnsCopy(t *testing.T) {
	m := NewManager()
	if err := m.Register(&fakeDialect{name: "alpha"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	dialects := m.Dialects()
	dialects[0] = &fakeDialect{name: "mutated"}
	if got := m.Dialects()[0].Name(); got != "alpha" {
		t.Fatalf("internal slice mutated through returned copy: %q", got)
	}
}

func TestManagerRejectsDuplicates(t *testing.T) {
	m := NewManager()
	if err := m.Register(&fakeDialect{name: "alpha"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register(&fakeDialect{name: "alpha"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
