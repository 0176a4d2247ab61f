package registry

import (
	"context"
	"testing"

	"github.com/vovakirdan/term-snake/internal/platform"
	"github.com/vovakirdan/term-snake/internal/render"
)

type stubBackend struct{ id string }

func (b stubBackend) ID() string    { return b.id }
func (b stubBackend) Title() string { return "Stub " + b.id }
func (b stubBackend) Run(context.Context, platform.Builder, render.Panels) error {
	return nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Backend { return stubBackend{id: "stub-b"} })
	Register("stub-a", func() Backend { return stubBackend{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Error("Exists(stub-a) = false, expected true")
	}
	if Exists("missing") {
		t.Error("Exists(missing) = true, expected false")
	}

	b, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if b.ID() != "stub-a" {
		t.Errorf("ID() = %q, expected stub-a", b.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	if len(list) < 2 || list[0].ID > list[1].ID {
		t.Errorf("List() not sorted: %v", ids)
	}
	for _, info := range list {
		if info.ID == "stub-b" && info.Title != "Stub stub-b" {
			t.Errorf("Title = %q, expected %q", info.Title, "Stub stub-b")
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Backend { return stubBackend{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Backend { return stubBackend{id: "stub-dup"} })
}
