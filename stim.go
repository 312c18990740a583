package snirf

import "github.com/openfnirs/snirf/container"

// Stim is one stimulus block: a named event array plus optional labels for
// its columns.
type Stim struct {
	element
	name       field[string]
	data       field[[][]float64]
	dataLabels field[[]string]
}

func newStim(loc string) *Stim {
	return &Stim{element: element{location: loc, state: Present}}
}

func (s *Stim) Name() (string, bool) { return s.name.get() }
func (s *Stim) SetName(v string)     { s.name.set(v); s.markSet() }

func (s *Stim) Data() ([][]float64, bool) { return s.data.get() }
func (s *Stim) SetData(v [][]float64)     { s.data.set(v); s.markSet() }

func (s *Stim) DataLabels() ([]string, bool) { return s.dataLabels.get() }
func (s *Stim) SetDataLabels(v []string)     { s.dataLabels.set(v); s.markSet() }

func (s *Stim) specs() []fieldSpec {
	return []fieldSpec{
		{name: "name", kind: datasetField, required: true, state: s.name.stateNow},
		{name: "data", kind: datasetField, required: true, state: s.data.stateNow},
		{name: "dataLabels", kind: datasetField, state: s.dataLabels.stateNow},
	}
}

// validateInto checks that dataLabels spans the data columns; an event
// array with no columns at all is a shape violation of its own.
func (s *Stim) validateInto(r *ValidationResult) {
	data, dok := s.data.get()
	labels, lok := s.dataLabels.get()
	if dok && lok {
		if cols := matrixCols(data); cols == 0 {
			r.add(joinLoc(s.location, "data"), CodeInvalidDatasetShape)
		} else if cols != len(labels) {
			r.add(joinLoc(s.location, "dataLabels"), CodeInvalidStimDataLabels)
		}
	}
	validateFields(s.location, s.specs(), r)
}

func (s *Stim) loadFrom(g container.Group, lazy bool) {
	s.state = Present
	loadDataset(g, "name", &s.name, asString, lazy)
	loadDataset(g, "data", &s.data, asFloatMatrix, lazy)
	loadDataset(g, "dataLabels", &s.dataLabels, asStringArray, lazy)
}

func (s *Stim) saveTo(g container.Group) error {
	if err := saveDataset(g, "name", &s.name, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "data", &s.data, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "dataLabels", &s.dataLabels, toStringArray); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Stim) relocate(loc string) { s.location = loc }
