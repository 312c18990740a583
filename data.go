package snirf

import "github.com/openfnirs/snirf/container"

// Data is one data block of a recording: a time vector, the multichannel
// time series, and the measurementList describing each series column.
type Data struct {
	element
	time            field[[]float64]
	dataTimeSeries  field[[][]float64]
	measurementList *IndexedCollection[*Measurement]
}

func newData(loc string) *Data {
	d := &Data{element: element{location: loc, state: Present}}
	d.measurementList = newCollection(measurementListName, loc, newMeasurement)
	return d
}

const measurementListName = "measurementList"

func (d *Data) Time() ([]float64, bool) { return d.time.get() }
func (d *Data) SetTime(v []float64)     { d.time.set(v); d.markSet() }

func (d *Data) DataTimeSeries() ([][]float64, bool) { return d.dataTimeSeries.get() }
func (d *Data) SetDataTimeSeries(v [][]float64)     { d.dataTimeSeries.set(v); d.markSet() }

// MeasurementList returns the per-channel record collection.
func (d *Data) MeasurementList() *IndexedCollection[*Measurement] { return d.measurementList }

func (d *Data) specs() []fieldSpec {
	return []fieldSpec{
		{name: "dataTimeSeries", kind: datasetField, required: true, state: d.dataTimeSeries.stateNow},
		{name: "time", kind: datasetField, required: true, state: d.time.stateNow},
		{
			name: measurementListName, kind: indexedField, required: true,
			length:  d.measurementList.Len,
			recurse: d.measurementList.validateInto,
		},
	}
}

// validateInto checks the shape contract before the structural pass: the
// time vector spans the series rows, the measurementList spans its columns.
func (d *Data) validateInto(r *ValidationResult) {
	t, tok := d.time.get()
	series, sok := d.dataTimeSeries.get()
	if tok && sok {
		if len(t) != len(series) {
			r.add(joinLoc(d.location, "time"), CodeInvalidTime)
		}
		if d.measurementList.Len() != matrixCols(series) {
			r.add(d.location, CodeInvalidMeasurementList)
		}
	}
	validateFields(d.location, d.specs(), r)
}

func (d *Data) loadFrom(g container.Group, lazy bool) {
	d.state = Present
	loadDataset(g, "dataTimeSeries", &d.dataTimeSeries, asFloatMatrix, lazy)
	loadDataset(g, "time", &d.time, asFloatArray, lazy)
	d.measurementList.loadFrom(g, d.location, lazy)
}

func (d *Data) saveTo(g container.Group) error {
	if err := saveDataset(g, "dataTimeSeries", &d.dataTimeSeries, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "time", &d.time, toFloatArray); err != nil {
		return err
	}
	if err := d.measurementList.saveTo(g, d.location); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

func (d *Data) relocate(loc string) {
	d.location = loc
	d.measurementList.relocate(loc)
}
