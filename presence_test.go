package snirf

import "testing"

func TestFieldStates(t *testing.T) {
	var f field[string]
	if f.state != AbsentDataset {
		t.Fatalf("zero field should be absent-dataset, got %v", f.state)
	}
	if _, ok := f.get(); ok {
		t.Fatalf("absent field should not yield a value")
	}

	f.set("x")
	if v, ok := f.get(); !ok || v != "x" {
		t.Fatalf("got (%q, %v), want (x, true)", v, ok)
	}

	f.clear(AbsentGroup)
	if f.state != AbsentGroup {
		t.Fatalf("clear should settle the given state, got %v", f.state)
	}
	if _, ok := f.get(); ok {
		t.Fatalf("cleared field should not yield a value")
	}
}

func TestFieldLazyMaterialization(t *testing.T) {
	calls := 0
	var f field[int]
	f.deferLoad(func() (int, bool) {
		calls++
		return 42, true
	})

	if f.stateNow() != Present {
		t.Fatalf("lazy field with a successful loader should settle present")
	}
	for i := 0; i < 3; i++ {
		if v, ok := f.get(); !ok || v != 42 {
			t.Fatalf("got (%d, %v), want (42, true)", v, ok)
		}
	}
	if calls != 1 {
		t.Fatalf("loader ran %d times, want 1", calls)
	}
}

func TestFieldLazyFailureDegradesToAbsent(t *testing.T) {
	calls := 0
	var f field[int]
	f.deferLoad(func() (int, bool) {
		calls++
		return 0, false
	})

	if _, ok := f.get(); ok {
		t.Fatalf("failed materialization should read as absent")
	}
	if f.state != AbsentDataset {
		t.Fatalf("failed materialization should settle absent-dataset, got %v", f.state)
	}
	f.get()
	if calls != 1 {
		t.Fatalf("failed loader must not be retried, ran %d times", calls)
	}
}

func TestFieldSetOverridesLoader(t *testing.T) {
	var f field[int]
	f.deferLoad(func() (int, bool) {
		t.Fatal("loader should not run after set")
		return 0, false
	})
	f.set(7)
	if v, ok := f.get(); !ok || v != 7 {
		t.Fatalf("got (%d, %v), want (7, true)", v, ok)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		AbsentDataset: "absent-dataset",
		AbsentGroup:   "absent-group",
		Present:       "present",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
