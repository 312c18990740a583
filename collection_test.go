package snirf

import (
	"testing"

	"github.com/openfnirs/snirf/container"
)

func TestIndexedName(t *testing.T) {
	cases := []struct {
		child string
		want  int
		ok    bool
	}{
		{"nirs", 0, true},
		{"nirs1", 1, true},
		{"nirs12", 12, true},
		{"nirs0", 0, false},
		{"nirsX", 0, false},
		{"nir", 0, false},
		{"probe", 0, false},
	}
	for _, c := range cases {
		got, ok := indexedName(c.child, "nirs")
		if ok != c.ok || got != c.want {
			t.Fatalf("indexedName(%q) = (%d, %v), want (%d, %v)", c.child, got, ok, c.want, c.ok)
		}
	}
}

func TestCollectionAppendRemove(t *testing.T) {
	c := newCollection("stim", "/nirs1", newStim)
	a := c.Append()
	b := c.Append()
	a.SetName("left")
	b.SetName("right")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if a.Location() != "/nirs1/stim1" || b.Location() != "/nirs1/stim2" {
		t.Fatalf("locations %q, %q", a.Location(), b.Location())
	}

	if err := c.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() after remove = %d, want 1", c.Len())
	}
	if name, _ := c.At(0).Name(); name != "right" {
		t.Fatalf("survivor is %q, want right", name)
	}
	if err := c.Remove(5); err == nil {
		t.Fatal("out-of-range Remove should fail")
	}
}

func TestCollectionSaveRenumbers(t *testing.T) {
	f := container.Memory()
	g := f.Root()

	c := newCollection("stim", "", newStim)
	for _, name := range []string{"a", "b", "c"} {
		c.Append().SetName(name)
	}
	if err := c.saveTo(g, ""); err != nil {
		t.Fatalf("saveTo: %v", err)
	}
	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.saveTo(g, ""); err != nil {
		t.Fatalf("saveTo after remove: %v", err)
	}

	got := g.Children()
	if len(got) != 2 || got[0] != "stim1" || got[1] != "stim2" {
		t.Fatalf("store children = %v, want [stim1 stim2]", got)
	}

	// order is preserved relative to the survivors
	reloaded := newCollection("stim", "", newStim)
	reloaded.loadFrom(g, "", false)
	names := []string{}
	for _, item := range reloaded.Items() {
		name, _ := item.Name()
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("reloaded names = %v, want [a c]", names)
	}
}

func TestCollectionLoadsBareName(t *testing.T) {
	f := container.Memory()
	g := f.Root()
	bare, err := g.CreateChild("stim")
	if err != nil {
		t.Fatal(err)
	}
	if err := bare.SetValue("name", container.String("solo")); err != nil {
		t.Fatal(err)
	}

	c := newCollection("stim", "", newStim)
	c.loadFrom(g, "", false)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if name, _ := c.At(0).Name(); name != "solo" {
		t.Fatalf("name = %q, want solo", name)
	}

	// saving renumbers the bare group away
	if err := c.saveTo(g, ""); err != nil {
		t.Fatal(err)
	}
	children := g.Children()
	if len(children) != 1 || children[0] != "stim1" {
		t.Fatalf("store children = %v, want [stim1]", children)
	}
}
