package snirf

import "github.com/openfnirs/snirf/container"

// Aux is one auxiliary channel: a named 1-D time series with its own time
// vector. Unlike Data there is no shape flexibility; the two vectors must
// match element for element.
type Aux struct {
	element
	name           field[string]
	dataTimeSeries field[[]float64]
	time           field[[]float64]
	timeOffset     field[float64]
}

func newAux(loc string) *Aux {
	return &Aux{element: element{location: loc, state: Present}}
}

func (a *Aux) Name() (string, bool) { return a.name.get() }
func (a *Aux) SetName(v string)     { a.name.set(v); a.markSet() }

func (a *Aux) DataTimeSeries() ([]float64, bool) { return a.dataTimeSeries.get() }
func (a *Aux) SetDataTimeSeries(v []float64)     { a.dataTimeSeries.set(v); a.markSet() }

func (a *Aux) Time() ([]float64, bool) { return a.time.get() }
func (a *Aux) SetTime(v []float64)     { a.time.set(v); a.markSet() }

func (a *Aux) TimeOffset() (float64, bool) { return a.timeOffset.get() }
func (a *Aux) SetTimeOffset(v float64)     { a.timeOffset.set(v); a.markSet() }

func (a *Aux) specs() []fieldSpec {
	return []fieldSpec{
		{name: "name", kind: datasetField, required: true, state: a.name.stateNow},
		{name: "dataTimeSeries", kind: datasetField, required: true, state: a.dataTimeSeries.stateNow},
		{name: "time", kind: datasetField, required: true, state: a.time.stateNow},
		{name: "timeOffset", kind: datasetField, state: a.timeOffset.stateNow},
	}
}

func (a *Aux) validateInto(r *ValidationResult) {
	t, tok := a.time.get()
	series, sok := a.dataTimeSeries.get()
	if tok && sok && len(t) != len(series) {
		r.add(joinLoc(a.location, "time"), CodeInvalidTime)
	}
	validateFields(a.location, a.specs(), r)
}

func (a *Aux) loadFrom(g container.Group, lazy bool) {
	a.state = Present
	loadDataset(g, "name", &a.name, asString, lazy)
	loadDataset(g, "dataTimeSeries", &a.dataTimeSeries, asFloatArray, lazy)
	loadDataset(g, "time", &a.time, asFloatArray, lazy)
	loadDataset(g, "timeOffset", &a.timeOffset, asFloat, lazy)
}

func (a *Aux) saveTo(g container.Group) error {
	if err := saveDataset(g, "name", &a.name, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "dataTimeSeries", &a.dataTimeSeries, toFloatArray); err != nil {
		return err
	}
	if err := saveDataset(g, "time", &a.time, toFloatArray); err != nil {
		return err
	}
	if err := saveDataset(g, "timeOffset", &a.timeOffset, toFloat); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

func (a *Aux) relocate(loc string) { a.location = loc }
