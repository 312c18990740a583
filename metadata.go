package snirf

import (
	"fmt"
	"regexp"

	"github.com/openfnirs/snirf/container"
)

// metaDataFixedNames are the required tags every recording carries, in
// declared order.
var metaDataFixedNames = []string{
	"SubjectID",
	"MeasurementDate",
	"MeasurementTime",
	"LengthUnit",
	"TimeUnit",
	"FrequencyUnit",
}

// metaDataReservedNames are names Add must reject: the fixed tags plus
// identifiers the node itself uses.
var metaDataReservedNames = func() map[string]struct{} {
	m := map[string]struct{}{
		"location": {},
		"filename": {},
	}
	for _, name := range metaDataFixedNames {
		m[name] = struct{}{}
	}
	return m
}()

var tagNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MetaDataTags holds the required metadata of one recording plus any number
// of user-defined tags. User tags are tracked in an explicit extra-name
// registry so they stay distinguishable from the fixed schema during save
// and validation.
type MetaDataTags struct {
	element
	subjectID       field[string]
	measurementDate field[string]
	measurementTime field[string]
	lengthUnit      field[string]
	timeUnit        field[string]
	frequencyUnit   field[string]

	extraNames []string
	extras     map[string]container.Value
}

func newMetaDataTags(loc string) *MetaDataTags {
	return &MetaDataTags{
		element: element{location: loc, state: AbsentGroup},
		extras:  map[string]container.Value{},
	}
}

func (t *MetaDataTags) SubjectID() (string, bool) { return t.subjectID.get() }
func (t *MetaDataTags) SetSubjectID(v string)     { t.subjectID.set(v); t.markSet() }

func (t *MetaDataTags) MeasurementDate() (string, bool) { return t.measurementDate.get() }
func (t *MetaDataTags) SetMeasurementDate(v string)     { t.measurementDate.set(v); t.markSet() }

func (t *MetaDataTags) MeasurementTime() (string, bool) { return t.measurementTime.get() }
func (t *MetaDataTags) SetMeasurementTime(v string)     { t.measurementTime.set(v); t.markSet() }

func (t *MetaDataTags) LengthUnit() (string, bool) { return t.lengthUnit.get() }
func (t *MetaDataTags) SetLengthUnit(v string)     { t.lengthUnit.set(v); t.markSet() }

func (t *MetaDataTags) TimeUnit() (string, bool) { return t.timeUnit.get() }
func (t *MetaDataTags) SetTimeUnit(v string)     { t.timeUnit.set(v); t.markSet() }

func (t *MetaDataTags) FrequencyUnit() (string, bool) { return t.frequencyUnit.get() }
func (t *MetaDataTags) SetFrequencyUnit(v string)     { t.frequencyUnit.set(v); t.markSet() }

// Add registers a user-defined tag. The name must be a textual identifier
// and must not collide with a fixed or reserved tag name (case-sensitive).
// Accepted value types: string, int, int64, float64, []float64, []string,
// or a prepared container.Value.
func (t *MetaDataTags) Add(name string, value any) error {
	if !tagNameRe.MatchString(name) {
		return fmt.Errorf("snirf: tag name %q is not a valid identifier", name)
	}
	if _, reserved := metaDataReservedNames[name]; reserved {
		return fmt.Errorf("snirf: cannot add tag %q: the name is reserved for a required metaDataTags field", name)
	}
	v, err := tagValue(value)
	if err != nil {
		return err
	}
	if _, exists := t.extras[name]; !exists {
		t.extraNames = append(t.extraNames, name)
	}
	t.extras[name] = v
	t.markSet()
	return nil
}

// Remove deletes a user-defined tag. Fixed tags cannot be removed.
func (t *MetaDataTags) Remove(name string) error {
	if _, ok := t.extras[name]; !ok {
		return fmt.Errorf("snirf: no unspecified tag %q", name)
	}
	delete(t.extras, name)
	for i, n := range t.extraNames {
		if n == name {
			t.extraNames = append(t.extraNames[:i], t.extraNames[i+1:]...)
			break
		}
	}
	t.markSet()
	return nil
}

// Tag returns a user-defined tag's value.
func (t *MetaDataTags) Tag(name string) (container.Value, bool) {
	v, ok := t.extras[name]
	return v, ok
}

// ExtraNames returns the registered user-defined tag names in insertion
// order.
func (t *MetaDataTags) ExtraNames() []string {
	return append([]string(nil), t.extraNames...)
}

func tagValue(value any) (container.Value, error) {
	switch v := value.(type) {
	case string:
		return container.String(v), nil
	case int:
		return container.Int(int64(v)), nil
	case int64:
		return container.Int(v), nil
	case float64:
		return container.Float(v), nil
	case []float64:
		return container.FloatArray(v), nil
	case []string:
		return container.StringArray(v), nil
	case container.Value:
		return v, nil
	}
	return container.Value{}, fmt.Errorf("snirf: unsupported tag value type %T", value)
}

func (t *MetaDataTags) specs() []fieldSpec {
	return []fieldSpec{
		{name: "SubjectID", kind: datasetField, required: true, state: t.subjectID.stateNow},
		{name: "MeasurementDate", kind: datasetField, required: true, state: t.measurementDate.stateNow},
		{name: "MeasurementTime", kind: datasetField, required: true, state: t.measurementTime.stateNow},
		{name: "LengthUnit", kind: datasetField, required: true, state: t.lengthUnit.stateNow},
		{name: "TimeUnit", kind: datasetField, required: true, state: t.timeUnit.stateNow},
		{name: "FrequencyUnit", kind: datasetField, required: true, state: t.frequencyUnit.stateNow},
	}
}

func (t *MetaDataTags) validateInto(r *ValidationResult) {
	validateFields(t.location, t.specs(), r)
}

func (t *MetaDataTags) loadFrom(g container.Group, lazy bool) {
	t.state = Present
	loadDataset(g, "SubjectID", &t.subjectID, asString, lazy)
	loadDataset(g, "MeasurementDate", &t.measurementDate, asString, lazy)
	loadDataset(g, "MeasurementTime", &t.measurementTime, asString, lazy)
	loadDataset(g, "LengthUnit", &t.lengthUnit, asString, lazy)
	loadDataset(g, "TimeUnit", &t.timeUnit, asString, lazy)
	loadDataset(g, "FrequencyUnit", &t.frequencyUnit, asString, lazy)

	// User tags are not part of the declared schema, so they are read
	// eagerly even under lazy loading.
	t.extraNames = nil
	t.extras = map[string]container.Value{}
	fixed := metaDataReservedNames
	for _, name := range g.Values() {
		if _, ok := fixed[name]; ok {
			continue
		}
		if v, ok := g.Value(name); ok {
			t.extraNames = append(t.extraNames, name)
			t.extras[name] = v
		}
	}
}

func (t *MetaDataTags) saveTo(g container.Group) error {
	if err := saveDataset(g, "SubjectID", &t.subjectID, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "MeasurementDate", &t.measurementDate, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "MeasurementTime", &t.measurementTime, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "LengthUnit", &t.lengthUnit, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "TimeUnit", &t.timeUnit, toString); err != nil {
		return err
	}
	if err := saveDataset(g, "FrequencyUnit", &t.frequencyUnit, toString); err != nil {
		return err
	}
	for _, name := range t.extraNames {
		if err := g.SetValue(name, t.extras[name]); err != nil {
			return err
		}
	}
	// drop stale user tags removed since load
	keep := make(map[string]struct{}, len(t.extras))
	for name := range t.extras {
		keep[name] = struct{}{}
	}
	for _, name := range g.Values() {
		if _, reserved := metaDataReservedNames[name]; reserved {
			continue
		}
		if _, ok := keep[name]; !ok {
			if err := g.Delete(name); err != nil {
				return err
			}
		}
	}
	t.dirty = false
	return nil
}

func (t *MetaDataTags) relocate(loc string) { t.location = loc }
