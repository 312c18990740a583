package snirf

import "github.com/openfnirs/snirf/container"

// element is the embedded base of every schema node: its location within the
// document tree, its own presence state (meaningful for nodes backing an
// optional or required group), and a dirty flag set on every mutation.
type element struct {
	location string
	state    State
	dirty    bool
}

// Location returns the node's path within the document tree, for example
// /nirs1/data1/measurementList3.
func (e *element) Location() string { return e.location }

// markSet records a mutation: the node is dirty and, if it was an absent
// group placeholder, it now exists.
func (e *element) markSet() {
	e.dirty = true
	e.state = Present
}

func joinLoc(parent, name string) string {
	return parent + "/" + name
}

// fieldKind tells the structural pass how a declared field maps onto the
// store.
type fieldKind int

const (
	datasetField fieldKind = iota
	groupField
	indexedField
)

// fieldSpec is one row of a node's declared field table. The table order is
// the schema's declared order; validation and save walk it front to back so
// diagnostics and store writes are deterministic.
type fieldSpec struct {
	name     string
	kind     fieldKind
	required bool
	// state reports the field's settled presence (datasets and groups).
	state func() State
	// length reports the item count (indexed collections).
	length func() int
	// recurse validates the sub-tree (groups and indexed collections).
	recurse func(r *ValidationResult)
}

// validateFields is the shared structural pass: presence verdicts for every
// declared field in table order, then recursion into present sub-trees.
// Entity-specific rules run before this pass; because ValidationResult keeps
// the first verdict per location, those rules supersede the structural one.
func validateFields(loc string, specs []fieldSpec, r *ValidationResult) {
	for _, fs := range specs {
		floc := joinLoc(loc, fs.name)
		switch fs.kind {
		case datasetField:
			if fs.state() != Present {
				if fs.required {
					r.add(floc, CodeRequiredDatasetMissing)
				} else {
					r.add(floc, CodeOptionalDatasetMissing)
				}
			}
		case groupField:
			if fs.state() != Present {
				if fs.required {
					r.add(floc, CodeRequiredGroupMissing)
				} else {
					r.add(floc, CodeOptionalGroupMissing)
				}
			} else if fs.recurse != nil {
				fs.recurse(r)
			}
		case indexedField:
			if fs.length() == 0 {
				if fs.required {
					r.add(floc, CodeRequiredIndexedGroupEmpty)
				} else {
					r.add(floc, CodeOptionalIndexedGroupEmpty)
				}
			} else if fs.recurse != nil {
				fs.recurse(r)
			}
		}
	}
}

// loadDataset binds one dataset slot to its store entry. Eager loading reads
// and converts now; a conversion failure degrades to absent (surfaced later
// by validation, per the materialization-failure policy). Lazy loading only
// probes existence and defers the read to first access.
func loadDataset[T any](g container.Group, name string, f *field[T], conv func(container.Value) (T, bool), lazy bool) {
	v, ok := g.Value(name)
	if !ok {
		f.clear(AbsentDataset)
		return
	}
	if lazy {
		f.deferLoad(func() (T, bool) {
			v, ok := g.Value(name)
			if !ok {
				var zero T
				return zero, false
			}
			return conv(v)
		})
		return
	}
	if t, ok := conv(v); ok {
		f.set(t)
	} else {
		f.clear(AbsentDataset)
	}
}

// saveDataset reconciles one dataset slot into g: Present writes the entry,
// either absent state removes any stale entry at that name.
func saveDataset[T any](g container.Group, name string, f *field[T], conv func(T) container.Value) error {
	v, ok := f.get()
	if !ok {
		return g.Delete(name)
	}
	return g.SetValue(name, conv(v))
}

// Conversions between store values and field types. Mismatched store types
// fail the conversion and leave the field absent rather than guessing.

func asString(v container.Value) (string, bool)        { return v.AsString() }
func asInt(v container.Value) (int64, bool)            { return v.AsInt() }
func asFloat(v container.Value) (float64, bool)        { return v.AsFloat() }
func asFloatArray(v container.Value) ([]float64, bool) { return v.AsFloatArray() }
func asFloatMatrix(v container.Value) ([][]float64, bool) {
	return v.AsFloatMatrix()
}
func asStringArray(v container.Value) ([]string, bool) { return v.AsStringArray() }

func toString(s string) container.Value        { return container.String(s) }
func toInt(i int64) container.Value            { return container.Int(i) }
func toFloat(f float64) container.Value        { return container.Float(f) }
func toFloatArray(v []float64) container.Value { return container.FloatArray(v) }
func toFloatMatrix(m [][]float64) container.Value {
	rows := len(m)
	cols := 0
	if rows > 0 {
		cols = len(m[0])
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range m {
		for c := 0; c < cols; c++ {
			if c < len(row) {
				data = append(data, row[c])
			} else {
				data = append(data, 0)
			}
		}
	}
	return container.FloatMatrix(rows, cols, data)
}
func toStringArray(v []string) container.Value { return container.StringArray(v) }

// matrixCols returns the column count of a row-major matrix, 0 when the
// matrix has no rows or ragged empty rows.
func matrixCols(m [][]float64) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
