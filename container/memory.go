package container

import "sort"

// node is one group of the in-memory tree shared by the memory and file
// backends.
type node struct {
	values   map[string]Value
	children map[string]*node
}

func newNode() *node {
	return &node{values: map[string]Value{}, children: map[string]*node{}}
}

// memFile backs both Memory() files and the JSON file codec; the latter
// attaches a path and a flush target.
type memFile struct {
	root   *node
	path   string
	closed bool
	flush  func(*memFile) error
}

// Memory returns a new empty in-memory file. It has no path and never
// touches the filesystem; Flush is a no-op.
func Memory() File {
	return &memFile{root: newNode()}
}

func (f *memFile) Root() Group  { return &group{file: f, node: f.root, name: "/"} }
func (f *memFile) Path() string { return f.path }

func (f *memFile) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if f.flush == nil {
		return nil
	}
	return f.flush(f)
}

func (f *memFile) Close() error {
	if f.closed {
		return nil
	}
	var err error
	if f.flush != nil {
		err = f.flush(f)
	}
	f.closed = true
	return err
}

// group adapts one tree node to the Group interface, carrying its absolute
// name and the owning file for the closed check.
type group struct {
	file *memFile
	node *node
	name string
}

func (g *group) Name() string { return g.name }

func (g *group) childName(name string) string {
	if g.name == "/" {
		return "/" + name
	}
	return g.name + "/" + name
}

func (g *group) Value(name string) (Value, bool) {
	if g.file.closed {
		return Value{}, false
	}
	v, ok := g.node.values[name]
	if !ok {
		return Value{}, false
	}
	return v.clone(), true
}

func (g *group) SetValue(name string, v Value) error {
	if g.file.closed {
		return ErrClosed
	}
	delete(g.node.children, name)
	g.node.values[name] = v.clone()
	return nil
}

func (g *group) Child(name string) (Group, bool) {
	if g.file.closed {
		return nil, false
	}
	n, ok := g.node.children[name]
	if !ok {
		return nil, false
	}
	return &group{file: g.file, node: n, name: g.childName(name)}, true
}

func (g *group) CreateChild(name string) (Group, error) {
	if g.file.closed {
		return nil, ErrClosed
	}
	n, ok := g.node.children[name]
	if !ok {
		n = newNode()
		delete(g.node.values, name)
		g.node.children[name] = n
	}
	return &group{file: g.file, node: n, name: g.childName(name)}, nil
}

func (g *group) Delete(name string) error {
	if g.file.closed {
		return ErrClosed
	}
	delete(g.node.values, name)
	delete(g.node.children, name)
	return nil
}

func (g *group) Values() []string {
	if g.file.closed {
		return nil
	}
	return sortedKeys(g.node.values)
}

func (g *group) Children() []string {
	if g.file.closed {
		return nil
	}
	return sortedKeys(g.node.children)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
