package snirf

import "github.com/openfnirs/snirf/container"

// recognizedDataTypeLabels are the processed-data labels named by the SNIRF
// specification for measurementList.dataTypeLabel.
var recognizedDataTypeLabels = map[string]struct{}{
	"dOD": {}, "dMean": {}, "dVar": {}, "dSkew": {},
	"mua": {}, "musp": {},
	"HbO": {}, "HbR": {}, "HbT": {},
	"H2O": {}, "Lipid": {}, "StO2": {}, "BFi": {},
	"HRF dOD": {}, "HRF dMean": {}, "HRF dVar": {}, "HRF dSkew": {},
	"HRF HbO": {}, "HRF HbR": {}, "HRF HbT": {}, "HRF BFi": {},
}

// Measurement is one measurementList entry: the per-channel record linking a
// Data element's series column to source/detector/wavelength indices in the
// sibling Probe. All indices are 1-based.
type Measurement struct {
	element
	sourceIndex     field[int64]
	detectorIndex   field[int64]
	wavelengthIndex field[int64]
	dataType        field[int64]
	dataTypeIndex   field[int64]
	dataTypeLabel   field[string]
	sourcePower     field[float64]
	detectorGain    field[float64]
}

func newMeasurement(loc string) *Measurement {
	return &Measurement{element: element{location: loc, state: Present}}
}

func (m *Measurement) SourceIndex() (int64, bool) { return m.sourceIndex.get() }
func (m *Measurement) SetSourceIndex(v int64)     { m.sourceIndex.set(v); m.markSet() }

func (m *Measurement) DetectorIndex() (int64, bool) { return m.detectorIndex.get() }
func (m *Measurement) SetDetectorIndex(v int64)     { m.detectorIndex.set(v); m.markSet() }

func (m *Measurement) WavelengthIndex() (int64, bool) { return m.wavelengthIndex.get() }
func (m *Measurement) SetWavelengthIndex(v int64)     { m.wavelengthIndex.set(v); m.markSet() }

func (m *Measurement) DataType() (int64, bool) { return m.dataType.get() }
func (m *Measurement) SetDataType(v int64)     { m.dataType.set(v); m.markSet() }

func (m *Measurement) DataTypeIndex() (int64, bool) { return m.dataTypeIndex.get() }
func (m *Measurement) SetDataTypeIndex(v int64)     { m.dataTypeIndex.set(v); m.markSet() }

func (m *Measurement) DataTypeLabel() (string, bool) { return m.dataTypeLabel.get() }
func (m *Measurement) SetDataTypeLabel(v string)     { m.dataTypeLabel.set(v); m.markSet() }

func (m *Measurement) SourcePower() (float64, bool) { return m.sourcePower.get() }
func (m *Measurement) SetSourcePower(v float64)     { m.sourcePower.set(v); m.markSet() }

func (m *Measurement) DetectorGain() (float64, bool) { return m.detectorGain.get() }
func (m *Measurement) SetDetectorGain(v float64)     { m.detectorGain.set(v); m.markSet() }

func (m *Measurement) specs() []fieldSpec {
	return []fieldSpec{
		{name: "sourceIndex", kind: datasetField, required: true, state: m.sourceIndex.stateNow},
		{name: "detectorIndex", kind: datasetField, required: true, state: m.detectorIndex.stateNow},
		{name: "wavelengthIndex", kind: datasetField, required: true, state: m.wavelengthIndex.stateNow},
		{name: "dataType", kind: datasetField, required: true, state: m.dataType.stateNow},
		{name: "dataTypeIndex", kind: datasetField, required: true, state: m.dataTypeIndex.stateNow},
		{name: "dataTypeLabel", kind: datasetField, state: m.dataTypeLabel.stateNow},
		{name: "sourcePower", kind: datasetField, state: m.sourcePower.stateNow},
		{name: "detectorGain", kind: datasetField, state: m.detectorGain.stateNow},
	}
}

func (m *Measurement) validateInto(r *ValidationResult) {
	if label, ok := m.dataTypeLabel.get(); ok {
		if _, known := recognizedDataTypeLabels[label]; !known {
			r.add(joinLoc(m.location, "dataTypeLabel"), CodeUnrecognizedDataTypeLabel)
		}
	}
	validateFields(m.location, m.specs(), r)
}

func (m *Measurement) loadFrom(g container.Group, lazy bool) {
	m.state = Present
	loadDataset(g, "sourceIndex", &m.sourceIndex, asInt, lazy)
	loadDataset(g, "detectorIndex", &m.detectorIndex, asInt, lazy)
	loadDataset(g, "wavelengthIndex", &m.wavelengthIndex, asInt, lazy)
	loadDataset(g, "dataType", &m.dataType, asInt, lazy)
	loadDataset(g, "dataTypeIndex", &m.dataTypeIndex, asInt, lazy)
	loadDataset(g, "dataTypeLabel", &m.dataTypeLabel, asString, lazy)
	loadDataset(g, "sourcePower", &m.sourcePower, asFloat, lazy)
	loadDataset(g, "detectorGain", &m.detectorGain, asFloat, lazy)
}

func (m *Measurement) saveTo(g container.Group) error {
	if err := saveDataset(g, "sourceIndex", &m.sourceIndex, toInt); err != nil {
		return err
	}
	if err := saveDataset(g, "detectorIndex", &m.detectorIndex, toInt); err != nil {
		return err
	}
	if err := saveDataset(g, "wavelengthIndex", &m.wavelengthIndex, toInt); err != nil {
		return err
	}
	if err := saveDataset(g, "dataType", &m.dataType, toInt); err != nil {
		return err
	}
	if err := saveDataset(g, "dataTypeIndex", &m.dataTypeIndex, toInt); err != nil {
		return err
	}
	if err := saveDataset(g, "dataTypeLabel", &m.dataTypeLabel, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "sourcePower", &m.sourcePower, toFloat); err != nil {
		return err
	}
	if err := saveDataset(g, "detectorGain", &m.detectorGain, toFloat); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Measurement) relocate(loc string) { m.location = loc }
