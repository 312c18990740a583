package snirf

import (
	"errors"
	"fmt"
	"io"

	"github.com/openfnirs/snirf/container"
)

// Snirf is the document root: it owns the recording sub-trees and the single
// open handle to the backing store. A Snirf is not safe for concurrent use;
// callers needing that must serialize access or open independent documents.
type Snirf struct {
	element
	cfg    *config
	file   container.File
	closed bool

	formatVersion field[string]
	nirs          *IndexedCollection[*Nirs]
}

const nirsName = "nirs"

func newDocument(f container.File, cfg *config) *Snirf {
	s := &Snirf{
		element: element{location: "", state: Present},
		cfg:     cfg,
		file:    f,
	}
	s.nirs = newCollection(nirsName, "", newNirs)
	return s
}

// New creates an empty in-memory document with the current format version
// and no recordings.
func New(opts ...Option) *Snirf {
	s := newDocument(container.Memory(), newConfig(opts))
	s.formatVersion.set("1.0")
	return s
}

// Load opens the SNIRF file at path and constructs the document graph,
// eagerly unless WithLazyLoading is given. A missing file reports
// ErrNotFound. The canonical suffix is appended when path lacks it.
func Load(path string, opts ...Option) (*Snirf, error) {
	path = ensureExt(path)
	cfg := newConfig(opts)
	f, err := container.Open(path)
	if err != nil {
		if errors.Is(err, container.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	s := newDocument(f, cfg)
	s.loadFrom(f.Root(), cfg.lazy)
	cfg.logger.Info("loaded snirf file", "path", path, "lazy", cfg.lazy, "nirs", s.nirs.Len())
	return s, nil
}

// Read constructs a document from a container stream. The document has no
// backing path; Save reconciles into the in-memory copy only.
func Read(r io.Reader, opts ...Option) (*Snirf, error) {
	cfg := newConfig(opts)
	f, err := container.OpenReader(r)
	if err != nil {
		return nil, err
	}
	s := newDocument(f, cfg)
	s.loadFrom(f.Root(), cfg.lazy)
	cfg.logger.Info("loaded snirf stream", "lazy", cfg.lazy, "nirs", s.nirs.Len())
	return s, nil
}

// Filename returns the path the document was loaded from and saves to, or
// "" for in-memory and stream-backed documents.
func (s *Snirf) Filename() string {
	if s.closed {
		return ""
	}
	return s.file.Path()
}

// Location returns the document root location, "/".
func (s *Snirf) Location() string { return "/" }

// FormatVersion returns the file format version dataset.
func (s *Snirf) FormatVersion() (string, bool) { return s.formatVersion.get() }

// SetFormatVersion sets the file format version dataset.
func (s *Snirf) SetFormatVersion(v string) { s.formatVersion.set(v); s.markSet() }

// Nirs returns the recording collection.
func (s *Snirf) Nirs() *IndexedCollection[*Nirs] { return s.nirs }

// Save reconciles the document into the store it was opened from and
// flushes it.
func (s *Snirf) Save() error {
	if s.closed {
		return ErrClosed
	}
	if err := s.saveTo(s.file.Root()); err != nil {
		return err
	}
	if err := s.file.Flush(); err != nil {
		return err
	}
	s.cfg.logger.Info("saved snirf file", "path", s.file.Path())
	return nil
}

// SaveAs reconciles the document into a new container created at path,
// leaving the original store untouched. The canonical suffix is appended
// when path lacks it. The document stays bound to its original store.
func (s *Snirf) SaveAs(path string) error {
	if s.closed {
		return ErrClosed
	}
	path = ensureExt(path)
	f, err := container.Create(path)
	if err != nil {
		return err
	}
	if err := s.saveTo(f.Root()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.cfg.logger.Info("saved snirf file copy", "from", s.file.Path(), "to", path)
	return nil
}

// SaveTo reconciles the document into a container opened on w.
func (s *Snirf) SaveTo(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}
	f := container.Memory()
	if err := s.saveTo(f.Root()); err != nil {
		return err
	}
	if err := container.WriteTo(f, w); err != nil {
		return err
	}
	s.cfg.logger.Info("saved snirf file to stream")
	return nil
}

// Copy deep-reconciles the document, field by field and group by group,
// into a brand-new in-memory store and returns the resulting document. The
// copy shares no backend state with the source.
func (s *Snirf) Copy() (*Snirf, error) {
	if s.closed {
		return nil, ErrClosed
	}
	f := container.Memory()
	if err := s.saveTo(f.Root()); err != nil {
		return nil, err
	}
	out := newDocument(f, newConfig(nil))
	out.cfg.logger = s.cfg.logger
	out.loadFrom(f.Root(), false)
	s.cfg.logger.Info("copied snirf document", "nirs", out.nirs.Len())
	return out, nil
}

// Validate walks the whole document tree, applying each node's rules in
// declared order, then runs the document-level cross-reference pass over
// every measurementList. All findings accumulate into one result; there is
// no early exit.
func (s *Snirf) Validate() (*ValidationResult, error) {
	if s.closed {
		return nil, ErrClosed
	}
	r := NewValidationResult()
	s.validateInto(r)
	s.validateMeasurementIndices(r)
	s.cfg.logger.Debug("validated snirf document", "issues", len(r.issues), "valid", r.Valid())
	return r, nil
}

// Close releases the store handle. Close is idempotent; after it, field
// materialization degrades to absent and every document operation fails
// fast with ErrClosed.
func (s *Snirf) Close() error {
	if s.closed {
		return nil
	}
	s.cfg.logger.Info("closing snirf file", "path", s.file.Path())
	s.closed = true
	return s.file.Close()
}

func (s *Snirf) specs() []fieldSpec {
	return []fieldSpec{
		{name: "formatVersion", kind: datasetField, required: true, state: s.formatVersion.stateNow},
		{
			name: nirsName, kind: indexedField, required: true,
			length:  s.nirs.Len,
			recurse: s.nirs.validateInto,
		},
	}
}

func (s *Snirf) validateInto(r *ValidationResult) {
	validateFields("", s.specs(), r)
}

// validateMeasurementIndices is the second, document-level pass: every
// measurementList index must resolve within its sibling probe's collections.
// An absent collection counts as size 0, and only index > size is flagged;
// the valid range for these 1-based indices is 1..size inclusive.
func (s *Snirf) validateMeasurementIndices(r *ValidationResult) {
	for _, n := range s.nirs.Items() {
		if n.probe.state != Present {
			continue
		}
		var nSources, nDetectors, nWavelengths int64
		if labels, ok := n.probe.sourceLabels.get(); ok {
			nSources = int64(len(labels))
		}
		if labels, ok := n.probe.detectorLabels.get(); ok {
			nDetectors = int64(len(labels))
		}
		if wl, ok := n.probe.wavelengths.get(); ok {
			nWavelengths = int64(len(wl))
		}
		for _, d := range n.data.Items() {
			for _, m := range d.measurementList.Items() {
				if idx, ok := m.sourceIndex.get(); ok && idx > nSources {
					r.add(joinLoc(m.location, "sourceIndex"), CodeInvalidSourceIndex)
				}
				if idx, ok := m.detectorIndex.get(); ok && idx > nDetectors {
					r.add(joinLoc(m.location, "detectorIndex"), CodeInvalidDetectorIndex)
				}
				if idx, ok := m.wavelengthIndex.get(); ok && idx > nWavelengths {
					r.add(joinLoc(m.location, "wavelengthIndex"), CodeInvalidWavelengthIndex)
				}
			}
		}
	}
}

func (s *Snirf) loadFrom(g container.Group, lazy bool) {
	loadDataset(g, "formatVersion", &s.formatVersion, asString, lazy)
	s.nirs.loadFrom(g, "", lazy)
}

func (s *Snirf) saveTo(g container.Group) error {
	if err := saveDataset(g, "formatVersion", &s.formatVersion, toString); err != nil {
		return err
	}
	if err := s.nirs.saveTo(g, ""); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// ValidateFile validates the SNIRF file at path without keeping a document
// around. A missing file reports ErrNotFound; an unreadable container
// reports a single fatal INVALID_FILE finding instead of an error.
func ValidateFile(path string, opts ...Option) (*ValidationResult, error) {
	doc, err := Load(path, opts...)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		r := NewValidationResult()
		r.add("/", CodeInvalidFile)
		return r, nil
	}
	defer doc.Close()
	return doc.Validate()
}
