package snirf_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfnirs/snirf"
)

// validDocument builds a minimal document that passes validation: one
// recording with a two-source, two-detector 2D probe and one data block of
// two channels.
func validDocument(t *testing.T) *snirf.Snirf {
	t.Helper()
	doc := snirf.New()
	n := doc.Nirs().Append()

	md := n.MetaDataTags()
	md.SetSubjectID("subj01")
	md.SetMeasurementDate("2024-03-01")
	md.SetMeasurementTime("12:00:00")
	md.SetLengthUnit("m")
	md.SetTimeUnit("s")
	md.SetFrequencyUnit("Hz")

	p := n.Probe()
	p.SetWavelengths([]float64{690, 830})
	p.SetSourcePos2D([][]float64{{0, 0}, {0.03, 0}})
	p.SetDetectorPos2D([][]float64{{0, 0.03}, {0.03, 0.03}})
	p.SetSourceLabels([]string{"S1", "S2"})
	p.SetDetectorLabels([]string{"D1", "D2"})

	d := n.Data().Append()
	d.SetTime([]float64{0, 0.1, 0.2})
	d.SetDataTimeSeries([][]float64{{1, 2}, {3, 4}, {5, 6}})
	addChannel(d, 1, 1, 1)
	addChannel(d, 2, 2, 2)
	return doc
}

func addChannel(d *snirf.Data, src, det, wl int64) *snirf.Measurement {
	m := d.MeasurementList().Append()
	m.SetSourceIndex(src)
	m.SetDetectorIndex(det)
	m.SetWavelengthIndex(wl)
	m.SetDataType(1) // CW amplitude
	m.SetDataTypeIndex(1)
	return m
}

func mustValidate(t *testing.T, doc *snirf.Snirf) *snirf.ValidationResult {
	t.Helper()
	r, err := doc.Validate()
	require.NoError(t, err)
	return r
}

func TestValidDocumentPasses(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()
	r := mustValidate(t, doc)
	assert.True(t, r.Valid(), "unexpected findings:\n%s", r)

	// the 2D/3D choice reports explicit verdicts
	is, ok := r.At("/nirs1/probe/sourcePos2D")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeOK, is.Code)
	is, ok = r.At("/nirs1/probe/sourcePos3D")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeOptionalDatasetMissing, is.Code)
}

func TestEmptyDocumentFails(t *testing.T) {
	doc := snirf.New()
	defer doc.Close()
	r := mustValidate(t, doc)
	assert.False(t, r.Valid())
	is, ok := r.At("/nirs")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeRequiredIndexedGroupEmpty, is.Code)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan") // suffix appended by SaveAs

	doc := validDocument(t)
	doc.Nirs().At(0).MetaDataTags().SetSubjectID("subj02")
	require.NoError(t, doc.SaveAs(path))
	require.NoError(t, doc.Close())

	loaded, err := snirf.Load(path)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, path+snirf.Ext, loaded.Filename())

	r := mustValidate(t, loaded)
	assert.True(t, r.Valid(), "round-trip must preserve validity:\n%s", r)

	version, ok := loaded.FormatVersion()
	require.True(t, ok)
	assert.Equal(t, "1.0", version)
	id, ok := loaded.Nirs().At(0).MetaDataTags().SubjectID()
	require.True(t, ok)
	assert.Equal(t, "subj02", id)

	series, ok := loaded.Nirs().At(0).Data().At(0).DataTimeSeries()
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, series)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := snirf.Load(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, snirf.ErrNotFound)
}

func TestStreamRoundTrip(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()

	var buf bytes.Buffer
	require.NoError(t, doc.SaveTo(&buf))

	loaded, err := snirf.Read(&buf)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, "", loaded.Filename())
	r := mustValidate(t, loaded)
	assert.True(t, r.Valid())
}

func TestRemoveRenumbersOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.snirf")

	doc := validDocument(t)
	n := doc.Nirs().At(0)
	for _, name := range []string{"rest", "task", "recovery"} {
		s := n.Stim().Append()
		s.SetName(name)
		s.SetData([][]float64{{0, 1, 1}})
	}
	require.NoError(t, doc.SaveAs(path))

	require.NoError(t, n.Stim().Remove(1))
	require.NoError(t, doc.SaveAs(path))
	require.NoError(t, doc.Close())

	loaded, err := snirf.Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	stim := loaded.Nirs().At(0).Stim()
	require.Equal(t, 2, stim.Len())
	var names []string
	for _, s := range stim.Items() {
		name, _ := s.Name()
		names = append(names, name)
	}
	assert.Equal(t, []string{"rest", "recovery"}, names)
	assert.Equal(t, "/nirs1/stim1", stim.At(0).Location())
	assert.Equal(t, "/nirs1/stim2", stim.At(1).Location())
}

func TestCopyIsIndependent(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()

	dup, err := doc.Copy()
	require.NoError(t, err)
	defer dup.Close()

	dup.Nirs().At(0).MetaDataTags().SetSubjectID("changed")
	require.NoError(t, dup.Save())

	id, _ := doc.Nirs().At(0).MetaDataTags().SubjectID()
	assert.Equal(t, "subj01", id, "copy must not share backend state with the source")

	r := mustValidate(t, dup)
	assert.True(t, r.Valid())
}

func TestClosedDocumentFailsFast(t *testing.T) {
	doc := validDocument(t)
	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close()) // idempotent

	assert.ErrorIs(t, doc.Save(), snirf.ErrClosed)
	assert.ErrorIs(t, doc.SaveAs(filepath.Join(t.TempDir(), "x")), snirf.ErrClosed)
	_, err := doc.Validate()
	assert.ErrorIs(t, err, snirf.ErrClosed)
	_, err = doc.Copy()
	assert.ErrorIs(t, err, snirf.ErrClosed)
	var buf bytes.Buffer
	assert.ErrorIs(t, doc.SaveTo(&buf), snirf.ErrClosed)
}

func TestLazyLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.snirf")
	doc := validDocument(t)
	require.NoError(t, doc.SaveAs(path))
	require.NoError(t, doc.Close())

	lazy, err := snirf.Load(path, snirf.WithLazyLoading())
	require.NoError(t, err)

	series, ok := lazy.Nirs().At(0).Data().At(0).DataTimeSeries()
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, series)

	// a field first touched after close degrades to absent
	require.NoError(t, lazy.Close())
	_, ok = lazy.Nirs().At(0).Data().At(0).Time()
	assert.False(t, ok)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.snirf")
	doc := validDocument(t)
	require.NoError(t, doc.SaveAs(path))
	require.NoError(t, doc.Close())

	r, err := snirf.ValidateFile(path)
	require.NoError(t, err)
	assert.True(t, r.Valid())

	_, err = snirf.ValidateFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, snirf.ErrNotFound)
}

func TestMeasurementIndexBounds(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()
	d := doc.Nirs().At(0).Data().At(0)
	d.SetDataTimeSeries([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	addChannel(d, 3, 1, 1) // sourceIndex 3 exceeds the two source labels

	r := mustValidate(t, doc)
	assert.False(t, r.Valid())
	is, ok := r.At("/nirs1/data1/measurementList3/sourceIndex")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeInvalidSourceIndex, is.Code)

	// detector and wavelength indices at their exact bound stay legal
	_, ok = r.At("/nirs1/data1/measurementList2/detectorIndex")
	assert.False(t, ok)
}

func TestMeasurementIndexAgainstEmptyCollection(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()
	p := doc.Nirs().At(0).Probe()
	p.SetSourceLabels(nil)

	r := mustValidate(t, doc)
	// an empty collection counts as size zero, so every index overruns
	is, ok := r.At("/nirs1/data1/measurementList1/sourceIndex")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeInvalidSourceIndex, is.Code)
}
