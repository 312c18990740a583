package snirf

import "github.com/openfnirs/snirf/container"

// Nirs is one recording sub-tree: exactly one probe, one or more data
// blocks, optional stimulus and auxiliary channels, and the metadata tags.
type Nirs struct {
	element
	metaDataTags *MetaDataTags
	probe        *Probe
	data         *IndexedCollection[*Data]
	stim         *IndexedCollection[*Stim]
	aux          *IndexedCollection[*Aux]
}

func newNirs(loc string) *Nirs {
	n := &Nirs{element: element{location: loc, state: Present}}
	n.metaDataTags = newMetaDataTags(joinLoc(loc, "metaDataTags"))
	n.probe = newProbe(joinLoc(loc, "probe"))
	n.data = newCollection(dataName, loc, newData)
	n.stim = newCollection(stimName, loc, newStim)
	n.aux = newCollection(auxName, loc, newAux)
	return n
}

const (
	dataName = "data"
	stimName = "stim"
	auxName  = "aux"
)

// MetaDataTags returns the recording's metadata node. Setting any of its
// fields brings an absent group into existence.
func (n *Nirs) MetaDataTags() *MetaDataTags { return n.metaDataTags }

// Probe returns the recording's probe node. Setting any of its fields
// brings an absent group into existence.
func (n *Nirs) Probe() *Probe { return n.probe }

// Data returns the data block collection.
func (n *Nirs) Data() *IndexedCollection[*Data] { return n.data }

// Stim returns the stimulus collection.
func (n *Nirs) Stim() *IndexedCollection[*Stim] { return n.stim }

// Aux returns the auxiliary channel collection.
func (n *Nirs) Aux() *IndexedCollection[*Aux] { return n.aux }

func (n *Nirs) specs() []fieldSpec {
	return []fieldSpec{
		{
			name: "metaDataTags", kind: groupField, required: true,
			state:   func() State { return n.metaDataTags.state },
			recurse: n.metaDataTags.validateInto,
		},
		{
			name: dataName, kind: indexedField, required: true,
			length:  n.data.Len,
			recurse: n.data.validateInto,
		},
		{
			name: stimName, kind: indexedField,
			length:  n.stim.Len,
			recurse: n.stim.validateInto,
		},
		{
			name: "probe", kind: groupField, required: true,
			state:   func() State { return n.probe.state },
			recurse: n.probe.validateInto,
		},
		{
			name: auxName, kind: indexedField,
			length:  n.aux.Len,
			recurse: n.aux.validateInto,
		},
	}
}

func (n *Nirs) validateInto(r *ValidationResult) {
	validateFields(n.location, n.specs(), r)
}

func (n *Nirs) loadFrom(g container.Group, lazy bool) {
	n.state = Present
	if sub, ok := g.Child("metaDataTags"); ok {
		n.metaDataTags.loadFrom(sub, lazy)
	} else {
		n.metaDataTags.state = AbsentGroup
	}
	if sub, ok := g.Child("probe"); ok {
		n.probe.loadFrom(sub, lazy)
	} else {
		n.probe.state = AbsentGroup
	}
	n.data.loadFrom(g, n.location, lazy)
	n.stim.loadFrom(g, n.location, lazy)
	n.aux.loadFrom(g, n.location, lazy)
}

func (n *Nirs) saveTo(g container.Group) error {
	if err := saveGroup(g, "metaDataTags", n.metaDataTags.state, n.metaDataTags.saveTo); err != nil {
		return err
	}
	if err := saveGroup(g, "probe", n.probe.state, n.probe.saveTo); err != nil {
		return err
	}
	if err := n.data.saveTo(g, n.location); err != nil {
		return err
	}
	if err := n.stim.saveTo(g, n.location); err != nil {
		return err
	}
	if err := n.aux.saveTo(g, n.location); err != nil {
		return err
	}
	n.dirty = false
	return nil
}

// saveGroup reconciles one child group: Present writes the sub-tree, an
// absent state removes any stale entry at that name.
func saveGroup(g container.Group, name string, state State, save func(container.Group) error) error {
	if state != Present {
		return g.Delete(name)
	}
	sub, err := g.CreateChild(name)
	if err != nil {
		return err
	}
	return save(sub)
}

func (n *Nirs) relocate(loc string) {
	n.location = loc
	n.metaDataTags.relocate(joinLoc(loc, "metaDataTags"))
	n.probe.relocate(joinLoc(loc, "probe"))
	n.data.relocate(loc)
	n.stim.relocate(loc)
	n.aux.relocate(loc)
}
