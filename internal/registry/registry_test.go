package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/world"
)

type stubHazard struct {
	entity.Base
}

func (s *stubHazard) Update(float64, *world.World)                      {}
func (s *stubHazard) Render(entity.Canvas, entity.TextMeasurer, string) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-stub", "Stub", func(_ context.Context, s Spawn) (entity.Entity, error) {
		h := &stubHazard{Base: entity.NewBase("stub", 0)}
		h.X, h.Y = s.At.X, s.At.Y
		return h, nil
	})

	if !Exists("test-stub") {
		t.Fatal("registered kind should exist")
	}

	found := false
	for _, info := range List() {
		if info.Kind == "test-stub" {
			found = info.Title == "Stub"
		}
	}
	if !found {
		t.Error("List should include the registered kind with its title")
	}

	e, err := Create(context.Background(), "test-stub", Spawn{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Common().Name != "stub" {
		t.Errorf("unexpected entity %q", e.Common().Name)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create(context.Background(), "no-such-hazard", Spawn{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(context.Context, Spawn) (entity.Entity, error) { return nil, nil }
	Register("test-dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("test-dup", "Dup", f)
}

func TestListSorted(t *testing.T) {
	f := func(context.Context, Spawn) (entity.Entity, error) { return nil, nil }
	Register("test-zz", "Z", f)
	Register("test-aa", "A", f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Kind > list[i].Kind {
			t.Fatalf("List not sorted: %q before %q", list[i-1].Kind, list[i].Kind)
		}
	}
}
