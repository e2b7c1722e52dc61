package engine

import (
	"math"

	"github.com/google/uuid"
)

// Neighbor returns the logical neighbor of an index. The boolean is false at
// a boundary, where the window stops growing on that side.
type Neighbor[I comparable] func(I) (I, bool)

// Item is one materialized window entry. ID is generated per instance and
// never derived from Index, so two items with the same index never collide.
type Item[I comparable] struct {
	ID    uuid.UUID
	Index I
}

func newItem[I comparable](index I) Item[I] {
	return Item[I]{ID: uuid.New(), Index: index}
}

// WindowSize returns the bootstrap window length for a content multiplier:
// the multiplier rounded up, at least 3, bumped to the next odd number so the
// window always has a true center.
func WindowSize(multiplier float64) int {
	base := 3
	if !math.IsNaN(multiplier) && multiplier > 3 {
		base = int(math.Ceil(multiplier))
	}
	if base%2 == 0 {
		return base + 1
	}
	return base
}

// Bootstrap builds the initial window around an index. It walks decrease and
// increase up to count/2 steps each, stopping early at a boundary, so the
// result holds at most count items and always contains around.
func Bootstrap[I comparable](around I, count int, increase, decrease Neighbor[I]) []Item[I] {
	half := count / 2
	before := make([]I, 0, half)
	after := make([]I, 0, half)

	cursor := around
	for len(before) < half {
		previous, ok := decrease(cursor)
		if !ok {
			break
		}
		before = append(before, previous)
		cursor = previous
	}

	cursor = around
	for len(after) < half {
		next, ok := increase(cursor)
		if !ok {
			break
		}
		after = append(after, next)
		cursor = next
	}

	items := make([]Item[I], 0, len(before)+1+len(after))
	for i := len(before) - 1; i >= 0; i-- {
		items = append(items, newItem(before[i]))
	}
	items = append(items, newItem(around))
	for _, index := range after {
		items = append(items, newItem(index))
	}
	return items
}

// Window is the ordered sequence of materialized items. Order is ascending
// logical order: Prepend adds an earlier index, Append a later one.
type Window[I comparable] struct {
	items    []Item[I]
	revision uint64
}

// NewWindow returns a window holding items in the given order.
func NewWindow[I comparable](items []Item[I]) *Window[I] {
	w := &Window[I]{}
	w.Reset(items)
	return w
}

// Items returns a copy of the window's items in display order.
func (w *Window[I]) Items() []Item[I] {
	out := make([]Item[I], len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of materialized items.
func (w *Window[I]) Len() int {
	return len(w.items)
}

// Revision increases on every mutation.
func (w *Window[I]) Revision() uint64 {
	return w.revision
}

// First returns the leading item.
func (w *Window[I]) First() (Item[I], bool) {
	if len(w.items) == 0 {
		return Item[I]{}, false
	}
	return w.items[0], true
}

// Last returns the trailing item.
func (w *Window[I]) Last() (Item[I], bool) {
	if len(w.items) == 0 {
		return Item[I]{}, false
	}
	return w.items[len(w.items)-1], true
}

// Find returns the first item holding index.
func (w *Window[I]) Find(index I) (Item[I], bool) {
	for _, item := range w.items {
		if item.Index == index {
			return item, true
		}
	}
	return Item[I]{}, false
}

// Lookup returns the item with the given identity.
func (w *Window[I]) Lookup(id uuid.UUID) (Item[I], bool) {
	for _, item := range w.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item[I]{}, false
}

// Contains reports whether an item with the given identity is materialized.
func (w *Window[I]) Contains(id uuid.UUID) bool {
	_, ok := w.Lookup(id)
	return ok
}

// Append adds a new item after the last one.
func (w *Window[I]) Append(index I) Item[I] {
	item := newItem(index)
	w.items = append(w.items, item)
	w.revision++
	return item
}

// Prepend adds a new item before the first one.
func (w *Window[I]) Prepend(index I) Item[I] {
	item := newItem(index)
	w.items = append([]Item[I]{item}, w.items...)
	w.revision++
	return item
}

// DropFirst removes and returns the leading item.
func (w *Window[I]) DropFirst() (Item[I], bool) {
	if len(w.items) == 0 {
		return Item[I]{}, false
	}
	item := w.items[0]
	w.items = w.items[1:]
	w.revision++
	return item, true
}

// DropLast removes and returns the trailing item.
func (w *Window[I]) DropLast() (Item[I], bool) {
	if len(w.items) == 0 {
		return Item[I]{}, false
	}
	item := w.items[len(w.items)-1]
	w.items = w.items[:len(w.items)-1]
	w.revision++
	return item, true
}

// Reset replaces the window's contents.
func (w *Window[I]) Reset(items []Item[I]) {
	w.items = make([]Item[I], len(items))
	copy(w.items, items)
	w.revision++
}
