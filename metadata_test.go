package snirf_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfnirs/snirf"
)

func TestMetaDataTagsAddRemove(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()
	md := doc.Nirs().At(0).MetaDataTags()

	// reserved and fixed names are rejected
	assert.Error(t, md.Add("location", "x"))
	assert.Error(t, md.Add("SubjectID", "x"))
	// non-identifier names are rejected
	assert.Error(t, md.Add("bad name", 1))
	assert.Error(t, md.Add("", 1))
	// unsupported value types are rejected
	assert.Error(t, md.Add("tag", struct{}{}))

	require.NoError(t, md.Add("customTag", 5))
	v, ok := md.Tag("customTag")
	require.True(t, ok)
	i, _ := v.AsInt()
	assert.Equal(t, int64(5), i)
	assert.Equal(t, []string{"customTag"}, md.ExtraNames())

	require.NoError(t, md.Remove("customTag"))
	assert.Error(t, md.Remove("customTag"), "removing twice must fail")
	assert.Error(t, md.Remove("SubjectID"), "fixed tags cannot be removed")
}

func TestMetaDataTagsExtraRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.snirf")

	doc := validDocument(t)
	md := doc.Nirs().At(0).MetaDataTags()
	require.NoError(t, md.Add("StudyID", "pilot-3"))
	require.NoError(t, md.Add("SamplingRate", 10.0))
	require.NoError(t, doc.SaveAs(path))
	require.NoError(t, doc.Close())

	loaded, err := snirf.Load(path)
	require.NoError(t, err)
	defer loaded.Close()
	md = loaded.Nirs().At(0).MetaDataTags()

	v, ok := md.Tag("StudyID")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "pilot-3", s)
	assert.ElementsMatch(t, []string{"StudyID", "SamplingRate"}, md.ExtraNames())

	// user tags stay distinguishable from the fixed schema
	assert.Error(t, loaded.Nirs().At(0).MetaDataTags().Remove("SubjectID"))
	require.NoError(t, md.Remove("SamplingRate"))
	require.NoError(t, loaded.Save())

	again, err := snirf.Load(path)
	require.NoError(t, err)
	defer again.Close()
	_, ok = again.Nirs().At(0).MetaDataTags().Tag("SamplingRate")
	assert.False(t, ok, "a removed tag must not survive the save")
	_, ok = again.Nirs().At(0).MetaDataTags().Tag("StudyID")
	assert.True(t, ok)
}

func TestMetaDataTagsMissingRequired(t *testing.T) {
	doc := validDocument(t)
	defer doc.Close()
	md := doc.Nirs().At(0).MetaDataTags()
	md.SetFrequencyUnit("") // present but empty is fine; absence is not
	r := mustValidate(t, doc)
	_, flagged := r.At("/nirs1/metaDataTags/FrequencyUnit")
	assert.False(t, flagged)

	doc2 := snirf.New()
	defer doc2.Close()
	n := doc2.Nirs().Append()
	n.MetaDataTags().SetSubjectID("s")
	r = mustValidate(t, doc2)
	is, ok := r.At("/nirs1/metaDataTags/MeasurementDate")
	require.True(t, ok)
	assert.Equal(t, snirf.CodeRequiredDatasetMissing, is.Code)
}
