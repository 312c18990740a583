package snirf

import "errors"

var (
	// ErrNotFound reports that no SNIRF file exists at the given path.
	ErrNotFound = errors.New("snirf: file not found")
	// ErrClosed reports an operation on a document whose store handle has
	// been closed.
	ErrClosed = errors.New("snirf: document is closed")
)

// Ext is the canonical SNIRF filename suffix. Paths passed to Load, SaveAs
// and ValidateFile get it appended when missing.
const Ext = ".snirf"

func ensureExt(path string) string {
	if len(path) < len(Ext) || path[len(path)-len(Ext):] != Ext {
		return path + Ext
	}
	return path
}
