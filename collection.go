package snirf

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/openfnirs/snirf/container"
)

// collectionItem is the contract an element type must satisfy to live inside
// an IndexedCollection.
type collectionItem interface {
	Location() string
	relocate(loc string)
	loadFrom(g container.Group, lazy bool)
	saveTo(g container.Group) error
	validateInto(r *ValidationResult)
}

// IndexedCollection is an ordered, dynamically numbered set of sibling
// sub-trees under one parent group: item i lives at <name><i+1>, e.g.
// /nirs1, /nirs2. In-memory order is insertion order and is authoritative;
// saving renumbers store locations to match it, so removing an item never
// leaves an index gap in the persisted store. A bare, unnumbered group
// (plain "nirs") is accepted on load as the single first item.
type IndexedCollection[T collectionItem] struct {
	name      string
	parentLoc string
	items     []T
	newItem   func(loc string) T
}

func newCollection[T collectionItem](name, parentLoc string, mk func(loc string) T) *IndexedCollection[T] {
	return &IndexedCollection[T]{name: name, parentLoc: parentLoc, newItem: mk}
}

// Len returns the number of items.
func (c *IndexedCollection[T]) Len() int { return len(c.items) }

// At returns item i (0-based). It panics when i is out of range, matching
// slice semantics.
func (c *IndexedCollection[T]) At(i int) T { return c.items[i] }

// Items returns a snapshot of the items in order.
func (c *IndexedCollection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// Append adds a new empty item at the end and returns it. The item's
// location uses the next 1-based index.
func (c *IndexedCollection[T]) Append() T {
	loc := joinLoc(c.parentLoc, c.name+strconv.Itoa(len(c.items)+1))
	item := c.newItem(loc)
	c.items = append(c.items, item)
	return item
}

// Remove deletes item i (0-based). Surviving items are renumbered in the
// store at the next save.
func (c *IndexedCollection[T]) Remove(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("snirf: index %d out of range for %s collection of length %d", i, c.name, len(c.items))
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// indexedName matches child against the collection's naming scheme and
// returns its ordering key: the bare name orders before every numbered one.
func indexedName(child, name string) (int, bool) {
	if child == name {
		return 0, true
	}
	if len(child) <= len(name) || child[:len(name)] != name {
		return 0, false
	}
	n, err := strconv.Atoi(child[len(name):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// loadFrom rebuilds the collection from the children of g that match the
// naming scheme, in index order.
func (c *IndexedCollection[T]) loadFrom(g container.Group, parentLoc string, lazy bool) {
	c.parentLoc = parentLoc
	c.items = nil
	type entry struct {
		child string
		order int
	}
	var found []entry
	for _, child := range g.Children() {
		if n, ok := indexedName(child, c.name); ok {
			found = append(found, entry{child: child, order: n})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].order < found[j].order })
	for _, e := range found {
		sub, ok := g.Child(e.child)
		if !ok {
			continue
		}
		item := c.newItem(joinLoc(parentLoc, e.child))
		item.loadFrom(sub, lazy)
		c.items = append(c.items, item)
	}
}

// saveTo reconciles the collection into g: every item is written at its
// renumbered 1-based location, then stale numbered siblings (and a stale
// bare-named one) are deleted.
func (c *IndexedCollection[T]) saveTo(g container.Group, parentLoc string) error {
	c.parentLoc = parentLoc
	written := make(map[string]struct{}, len(c.items))
	for i, item := range c.items {
		child := c.name + strconv.Itoa(i+1)
		item.relocate(joinLoc(parentLoc, child))
		sub, err := g.CreateChild(child)
		if err != nil {
			return err
		}
		if err := item.saveTo(sub); err != nil {
			return err
		}
		written[child] = struct{}{}
	}
	for _, child := range g.Children() {
		if _, ok := indexedName(child, c.name); !ok {
			continue
		}
		if _, ok := written[child]; !ok {
			if err := g.Delete(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// relocate renames the collection's items under a new parent location.
func (c *IndexedCollection[T]) relocate(parentLoc string) {
	c.parentLoc = parentLoc
	for i, item := range c.items {
		item.relocate(joinLoc(parentLoc, c.name+strconv.Itoa(i+1)))
	}
}

// validateInto validates every item in order.
func (c *IndexedCollection[T]) validateInto(r *ValidationResult) {
	for _, item := range c.items {
		item.validateInto(r)
	}
}
