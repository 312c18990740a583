package snirf

import "github.com/openfnirs/snirf/container"

// recognizedCoordinateSystems are the template space names listed in the
// SNIRF specification appendix. Any other coordinateSystem value must come
// with a free-text coordinateSystemDescription.
var recognizedCoordinateSystems = map[string]struct{}{
	"MNI152NLin2009bAsym": {}, "MNI152NLin2009cAsym": {},
	"MNI152NLin6Sym": {}, "MNI152NLin6ASym": {},
	"MNI152Lin": {}, "MNIColin27": {},
	"ICBM452AirSpace": {}, "ICBM452Warp5Space": {},
	"IXI549Space": {}, "UNCInfant": {},
	"fsaverage": {}, "fsaverageSym": {}, "fsLR": {},
	"Talairach": {}, "CapTrak": {}, "EEGLAB": {},
	"EEGLAB-HJ": {}, "Other": {},
}

// Probe describes the optode geometry of one recording: wavelengths, source
// and detector positions (2D or 3D), labels, and the coordinate system the
// positions are expressed in.
type Probe struct {
	element
	wavelengths                 field[[]float64]
	wavelengthsEmission         field[[]float64]
	sourcePos2D                 field[[][]float64]
	detectorPos2D               field[[][]float64]
	sourcePos3D                 field[[][]float64]
	detectorPos3D               field[[][]float64]
	sourceLabels                field[[]string]
	detectorLabels              field[[]string]
	coordinateSystem            field[string]
	coordinateSystemDescription field[string]
}

func newProbe(loc string) *Probe {
	return &Probe{element: element{location: loc, state: AbsentGroup}}
}

func (p *Probe) Wavelengths() ([]float64, bool) { return p.wavelengths.get() }
func (p *Probe) SetWavelengths(v []float64)     { p.wavelengths.set(v); p.markSet() }

func (p *Probe) WavelengthsEmission() ([]float64, bool) { return p.wavelengthsEmission.get() }
func (p *Probe) SetWavelengthsEmission(v []float64)     { p.wavelengthsEmission.set(v); p.markSet() }

func (p *Probe) SourcePos2D() ([][]float64, bool) { return p.sourcePos2D.get() }
func (p *Probe) SetSourcePos2D(v [][]float64)     { p.sourcePos2D.set(v); p.markSet() }
func (p *Probe) UnsetSourcePos2D()                { p.sourcePos2D.clear(AbsentDataset); p.markSet() }

func (p *Probe) DetectorPos2D() ([][]float64, bool) { return p.detectorPos2D.get() }
func (p *Probe) SetDetectorPos2D(v [][]float64)     { p.detectorPos2D.set(v); p.markSet() }
func (p *Probe) UnsetDetectorPos2D()                { p.detectorPos2D.clear(AbsentDataset); p.markSet() }

func (p *Probe) SourcePos3D() ([][]float64, bool) { return p.sourcePos3D.get() }
func (p *Probe) SetSourcePos3D(v [][]float64)     { p.sourcePos3D.set(v); p.markSet() }
func (p *Probe) UnsetSourcePos3D()                { p.sourcePos3D.clear(AbsentDataset); p.markSet() }

func (p *Probe) DetectorPos3D() ([][]float64, bool) { return p.detectorPos3D.get() }
func (p *Probe) SetDetectorPos3D(v [][]float64)     { p.detectorPos3D.set(v); p.markSet() }
func (p *Probe) UnsetDetectorPos3D()                { p.detectorPos3D.clear(AbsentDataset); p.markSet() }

func (p *Probe) SourceLabels() ([]string, bool) { return p.sourceLabels.get() }
func (p *Probe) SetSourceLabels(v []string)     { p.sourceLabels.set(v); p.markSet() }

func (p *Probe) DetectorLabels() ([]string, bool) { return p.detectorLabels.get() }
func (p *Probe) SetDetectorLabels(v []string)     { p.detectorLabels.set(v); p.markSet() }

func (p *Probe) CoordinateSystem() (string, bool) { return p.coordinateSystem.get() }
func (p *Probe) SetCoordinateSystem(v string)     { p.coordinateSystem.set(v); p.markSet() }
func (p *Probe) UnsetCoordinateSystem()           { p.coordinateSystem.clear(AbsentDataset); p.markSet() }

func (p *Probe) CoordinateSystemDescription() (string, bool) {
	return p.coordinateSystemDescription.get()
}
func (p *Probe) SetCoordinateSystemDescription(v string) {
	p.coordinateSystemDescription.set(v)
	p.markSet()
}

func (p *Probe) specs() []fieldSpec {
	return []fieldSpec{
		{name: "wavelengths", kind: datasetField, required: true, state: p.wavelengths.stateNow},
		{name: "wavelengthsEmission", kind: datasetField, state: p.wavelengthsEmission.stateNow},
		{name: "sourcePos2D", kind: datasetField, required: true, state: p.sourcePos2D.stateNow},
		{name: "detectorPos2D", kind: datasetField, required: true, state: p.detectorPos2D.stateNow},
		{name: "sourcePos3D", kind: datasetField, required: true, state: p.sourcePos3D.stateNow},
		{name: "detectorPos3D", kind: datasetField, required: true, state: p.detectorPos3D.stateNow},
		{name: "sourceLabels", kind: datasetField, state: p.sourceLabels.stateNow},
		{name: "detectorLabels", kind: datasetField, state: p.detectorLabels.stateNow},
		{name: "coordinateSystem", kind: datasetField, state: p.coordinateSystem.stateNow},
		{name: "coordinateSystemDescription", kind: datasetField, state: p.coordinateSystemDescription.stateNow},
	}
}

// validateInto applies the probe's own rules, then the structural pass. The
// position rule runs first so its per-location verdicts supersede the
// structural required-missing ones.
//
// Position rule: a probe needs one complete 2D pair or one complete 3D
// pair. A complete 2D pair wins even when 3D data is also present; only
// when neither pair is complete does each of the four arrays get an
// independent verdict from its own presence.
func (p *Probe) validateInto(r *ValidationResult) {
	_, s2 := p.sourcePos2D.get()
	_, d2 := p.detectorPos2D.get()
	_, s3 := p.sourcePos3D.get()
	_, d3 := p.detectorPos3D.get()

	verdict := func(name string, present bool) {
		code := CodeRequiredDatasetMissing
		if present {
			code = CodeOK
		}
		r.add(joinLoc(p.location, name), code)
	}

	switch {
	case s2 && d2:
		r.add(joinLoc(p.location, "sourcePos2D"), CodeOK)
		r.add(joinLoc(p.location, "detectorPos2D"), CodeOK)
		r.add(joinLoc(p.location, "sourcePos3D"), CodeOptionalDatasetMissing)
		r.add(joinLoc(p.location, "detectorPos3D"), CodeOptionalDatasetMissing)
	case s3 && d3:
		r.add(joinLoc(p.location, "sourcePos2D"), CodeOptionalDatasetMissing)
		r.add(joinLoc(p.location, "detectorPos2D"), CodeOptionalDatasetMissing)
		r.add(joinLoc(p.location, "sourcePos3D"), CodeOK)
		r.add(joinLoc(p.location, "detectorPos3D"), CodeOK)
	default:
		verdict("sourcePos2D", s2)
		verdict("detectorPos2D", d2)
		verdict("sourcePos3D", s3)
		verdict("detectorPos3D", d3)
	}

	if cs, ok := p.coordinateSystem.get(); ok {
		if _, known := recognizedCoordinateSystems[cs]; !known {
			r.add(joinLoc(p.location, "coordinateSystem"), CodeUnrecognizedCoordinateSystem)
			if desc, ok := p.coordinateSystemDescription.get(); !ok || desc == "" {
				r.add(joinLoc(p.location, "coordinateSystemDescription"), CodeNoCoordinateSystemDescription)
			}
		}
	}

	validateFields(p.location, p.specs(), r)
}

func (p *Probe) loadFrom(g container.Group, lazy bool) {
	p.state = Present
	loadDataset(g, "wavelengths", &p.wavelengths, asFloatArray, lazy)
	loadDataset(g, "wavelengthsEmission", &p.wavelengthsEmission, asFloatArray, lazy)
	loadDataset(g, "sourcePos2D", &p.sourcePos2D, asFloatMatrix, lazy)
	loadDataset(g, "detectorPos2D", &p.detectorPos2D, asFloatMatrix, lazy)
	loadDataset(g, "sourcePos3D", &p.sourcePos3D, asFloatMatrix, lazy)
	loadDataset(g, "detectorPos3D", &p.detectorPos3D, asFloatMatrix, lazy)
	loadDataset(g, "sourceLabels", &p.sourceLabels, asStringArray, lazy)
	loadDataset(g, "detectorLabels", &p.detectorLabels, asStringArray, lazy)
	loadDataset(g, "coordinateSystem", &p.coordinateSystem, asString, lazy)
	loadDataset(g, "coordinateSystemDescription", &p.coordinateSystemDescription, asString, lazy)
}

func (p *Probe) saveTo(g container.Group) error {
	if err := saveDataset(g, "wavelengths", &p.wavelengths, toFloatArray); err != nil {
		return err
	}
	if err := saveDataset(g, "wavelengthsEmission", &p.wavelengthsEmission, toFloatArray); err != nil {
		return err
	}
	if err := saveDataset(g, "sourcePos2D", &p.sourcePos2D, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "detectorPos2D", &p.detectorPos2D, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "sourcePos3D", &p.sourcePos3D, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "detectorPos3D", &p.detectorPos3D, toFloatMatrix); err != nil {
		return err
	}
	if err := saveDataset(g, "sourceLabels", &p.sourceLabels, toStringArray); err != nil {
		return err
	}
	if err := saveDataset(g, "detectorLabels", &p.detectorLabels, toStringArray); err != nil {
		return err
	}
	if err := saveDataset(g, "coordinateSystem", &p.coordinateSystem, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "coordinateSystemDescription", &p.coordinateSystemDescription, toString); err != nil {
		return err
	}
	p.dirty = false
	return nil
}

func (p *Probe) relocate(loc string) { p.location = loc }
