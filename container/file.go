package container

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

// The on-disk encoding is a gzip stream holding one JSON document: a header
// with format name and version, then the group tree. The codec name is part
// of the header so future encodings can coexist (snapshot-style
// self-describing persistence).
const (
	formatName    = "snirf-container"
	formatVersion = 1
)

type encFile struct {
	Format  string   `json:"format"`
	Version int      `json:"version"`
	Root    *encNode `json:"root"`
}

type encNode struct {
	Values   map[string]Value    `json:"values,omitempty"`
	Children map[string]*encNode `json:"children,omitempty"`
}

func encodeTree(n *node) *encNode {
	out := &encNode{}
	if len(n.values) > 0 {
		out.Values = n.values
	}
	if len(n.children) > 0 {
		out.Children = make(map[string]*encNode, len(n.children))
		for name, c := range n.children {
			out.Children[name] = encodeTree(c)
		}
	}
	return out
}

func decodeTree(e *encNode) *node {
	n := newNode()
	if e == nil {
		return n
	}
	for name, v := range e.Values {
		n.values[name] = v
	}
	for name, c := range e.Children {
		n.children[name] = decodeTree(c)
	}
	return n
}

// Create makes a new writable file at path, truncating any existing file.
// The tree lives in memory until Flush or Close writes it out.
func Create(path string) (File, error) {
	f := &memFile{root: newNode(), path: path, flush: flushToPath}
	// fail now, not at Close, if the path is unwritable
	if err := f.flush(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Open reads the file at path into memory. The returned file is writable;
// Flush and Close rewrite path.
func Open(path string) (File, error) {
	r, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer r.Close()
	root, err := readTree(r)
	if err != nil {
		return nil, fmt.Errorf("container: reading %s: %w", path, err)
	}
	return &memFile{root: root, path: path, flush: flushToPath}, nil
}

// OpenReader reads a container stream into memory. The returned file has no
// path and is read-only from the medium's point of view: Flush is a no-op
// and the tree itself stays mutable.
func OpenReader(r io.Reader) (File, error) {
	root, err := readTree(r)
	if err != nil {
		return nil, fmt.Errorf("container: reading stream: %w", err)
	}
	return &memFile{root: root}, nil
}

// WriteTo encodes the file's current tree to w. The file must be open.
func WriteTo(f File, w io.Writer) error {
	mf, ok := f.(*memFile)
	if !ok {
		return fmt.Errorf("container: unsupported file implementation %T", f)
	}
	if mf.closed {
		return ErrClosed
	}
	return writeTree(w, mf.root)
}

func readTree(r io.Reader) (*node, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var doc encFile
	if err := gojson.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Format != formatName {
		return nil, fmt.Errorf("unexpected format %q", doc.Format)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", doc.Version)
	}
	return decodeTree(doc.Root), nil
}

func writeTree(w io.Writer, root *node) error {
	zw := gzip.NewWriter(w)
	doc := encFile{Format: formatName, Version: formatVersion, Root: encodeTree(root)}
	if err := gojson.NewEncoder(zw).Encode(&doc); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func flushToPath(f *memFile) error {
	w, err := os.Create(f.path)
	if err != nil {
		return err
	}
	if err := writeTree(w, f.root); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
