package snirf

// State is the three-valued presence tag carried by every optional field and
// sub-tree: a thing can be absent where a dataset belongs, absent where a
// group belongs, or present with a value. Required fields use the same tag
// in memory; for them an absent final state is a validation finding, never a
// distinct type.
type State uint8

const (
	// AbsentDataset marks a missing entry whose location holds a dataset
	// when present.
	AbsentDataset State = iota
	// AbsentGroup marks a missing sub-tree whose location holds a group
	// when present.
	AbsentGroup
	// Present marks an entry that exists and carries a value.
	Present
)

func (s State) String() string {
	switch s {
	case AbsentDataset:
		return "absent-dataset"
	case AbsentGroup:
		return "absent-group"
	case Present:
		return "present"
	}
	return "unknown"
}

// field is one presence-tracked dataset slot of a schema node. Under lazy
// loading a field whose store entry exists holds a deferred loader instead
// of a value; the first read materializes it. Materialization is one-shot
// and idempotent: a loader that fails degrades the field to AbsentDataset
// (the problem then surfaces at validation time) and is never retried.
type field[T any] struct {
	state State
	value T
	load  func() (T, bool)
}

// get materializes and returns the value. ok is false when the field is in
// either absent state.
func (f *field[T]) get() (T, bool) {
	if f.load != nil {
		load := f.load
		f.load = nil
		if v, ok := load(); ok {
			f.value = v
			f.state = Present
		} else {
			var zero T
			f.value = zero
			f.state = AbsentDataset
		}
	}
	if f.state != Present {
		var zero T
		return zero, false
	}
	return f.value, true
}

// set stores a value, moving the field to Present regardless of prior state.
func (f *field[T]) set(v T) {
	f.value = v
	f.state = Present
	f.load = nil
}

// clear drops any value and loader and records the given absent state.
func (f *field[T]) clear(s State) {
	var zero T
	f.value = zero
	f.state = s
	f.load = nil
}

// deferLoad installs a lazy loader; the field reads as Present until the
// loader runs and reports otherwise.
func (f *field[T]) deferLoad(load func() (T, bool)) {
	f.state = Present
	f.load = load
}

// stateNow materializes a pending loader and returns the settled state.
func (f *field[T]) stateNow() State {
	f.get()
	return f.state
}
