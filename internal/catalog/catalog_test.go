package catalog

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 20 {
		t.Fatalf("expected 20 games, got %d", c.Len())
	}

	keys := c.Keys()
	if keys[0] != "flip" || keys[9] != "roulette" {
		t.Errorf("expected v1 keys first, got %v", keys[:10])
	}
	if keys[10] != "dice-v2" || keys[19] != "limbo-v2" {
		t.Errorf("expected v2 keys last, got %v", keys[10:])
	}

	if got := c.Lookup("roulette"); got != 0.973 {
		t.Errorf("expected roulette target 0.973, got %v", got)
	}
	if got := c.Lookup("doubleornothing-v2"); got != 0.94 {
		t.Errorf("expected doubleornothing-v2 target 0.94, got %v", got)
	}
}

func TestNewCollisionKeepsPositionTakesV2Target(t *testing.T) {
	c, err := New(
		[]GameDefinition{{Key: "a", TargetRTP: 0.9}, {Key: "b", TargetRTP: 0.9}},
		[]GameDefinition{{Key: "c", TargetRTP: 0.8}, {Key: "a", TargetRTP: 0.95}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c"}
	got := c.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if target := c.Lookup("a"); target != 0.95 {
		t.Errorf("expected v2 target 0.95 for colliding key, got %v", target)
	}
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  GameDefinition
	}{
		{"empty key", GameDefinition{Key: "", TargetRTP: 0.9}},
		{"zero target", GameDefinition{Key: "x", TargetRTP: 0}},
		{"negative target", GameDefinition{Key: "x", TargetRTP: -0.5}},
		{"target above one", GameDefinition{Key: "x", TargetRTP: 1.01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]GameDefinition{tt.def}, nil)
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown key")
		}
	}()
	Default().Lookup("baccarat")
}

func TestKeysReturnsCopy(t *testing.T) {
	c := Default()
	keys := c.Keys()
	keys[0] = "mutated"

	if !c.Has("flip") || c.Has("mutated") {
		t.Error("expected catalog to be unaffected by caller mutation")
	}
	if c.Keys()[0] != "flip" {
		t.Error("expected first key to remain flip")
	}
}
