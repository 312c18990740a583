// Package container implements the hierarchical store a SNIRF document is
// bound to: nested named groups holding typed n-dimensional datasets, in the
// manner of an HDF5 file.
//
// The snirf package depends only on the Group/File capability surface defined
// here, never on a concrete backend. Two backends are provided: a pure
// in-memory store (Memory) and a gzip-compressed JSON encoding of the same
// tree for files and streams (Open/Create/OpenReader).
package container

import "errors"

var (
	// ErrNotFound reports a missing file, group or dataset.
	ErrNotFound = errors.New("container: not found")
	// ErrClosed reports an operation on a closed file.
	ErrClosed = errors.New("container: file is closed")
)

// Group is one node of the store hierarchy. Names are single path segments;
// nesting is expressed through child groups. A name refers to either a
// dataset or a child group, never both at once.
type Group interface {
	// Name returns the absolute path of this group within its file. The
	// root group's name is "/".
	Name() string

	// Value returns the dataset stored under name.
	Value(name string) (Value, bool)
	// SetValue stores a dataset under name, replacing any previous dataset
	// or child group with that name.
	SetValue(name string, v Value) error

	// Child returns the child group stored under name.
	Child(name string) (Group, bool)
	// CreateChild returns the child group stored under name, creating an
	// empty one if needed. An existing dataset with that name is replaced.
	CreateChild(name string) (Group, error)

	// Delete removes the dataset or child group stored under name. Deleting
	// a name that does not exist is not an error.
	Delete(name string) error

	// Values returns the names of all datasets in this group, sorted.
	Values() []string
	// Children returns the names of all child groups in this group, sorted.
	Children() []string
}

// File is an open container instance. A File owns its whole tree; closing it
// invalidates every Group obtained from it.
type File interface {
	// Root returns the root group.
	Root() Group
	// Path returns the file's path on disk, or "" for in-memory and
	// stream-backed files.
	Path() string
	// Flush writes the current tree to the backing medium. Flushing an
	// in-memory file is a no-op.
	Flush() error
	// Close flushes (when writable) and releases the file. Close is
	// idempotent; any other operation after Close fails with ErrClosed.
	Close() error
}
