package retained

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when an identity is declared twice in one frame.
	ErrDuplicateID = errors.New("retained: duplicate element id")

	// ErrUnbalanced is returned by Close without a matching Open, and by
	// EndFrame when elements are still open.
	ErrUnbalanced = errors.New("retained: unbalanced open/close")
)

// ElementTree is the view of a declared element tree the registry walks.
// Elements are addressed by index; identities are stable across frames,
// indices are not.
type ElementTree interface {
	ElementID(index int) uint64
	ChildIndices(index int) []int
}

// LiveSet is the set of identities declared in a frame.
type LiveSet map[uint64]struct{}

// Has reports whether id is in the set.
func (s LiveSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

type element struct {
	id       uint64
	parent   int
	children []int
}

// Frame is the element tree declared during one frame. Reset keeps the
// backing storage, so a frame loop with a stable tree shape stops
// allocating after the first frame.
type Frame struct {
	elements []element
	roots    []int
	open     []int
	index    map[uint64]int
	live     LiveSet
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{
		index: make(map[uint64]int),
		live:  make(LiveSet),
	}
}

// Reset empties the frame for the next declaration pass.
func (f *Frame) Reset() {
	for i := range f.elements {
		f.elements[i].children = f.elements[i].children[:0]
	}
	f.elements = f.elements[:0]
	f.roots = f.roots[:0]
	f.open = f.open[:0]
	clear(f.index)
	clear(f.live)
}

// Open declares element id as a child of the innermost open element, or as
// a root when none is open, and makes it the innermost open element.
func (f *Frame) Open(id uint64) (int, error) {
	if _, dup := f.index[id]; dup {
		return -1, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	parent := -1
	if n := len(f.open); n > 0 {
		parent = f.open[n-1]
	}

	idx := len(f.elements)
	if idx < cap(f.elements) {
		f.elements = f.elements[:idx+1]
		e := &f.elements[idx]
		e.id, e.parent = id, parent
	} else {
		f.elements = append(f.elements, element{id: id, parent: parent})
	}

	if parent >= 0 {
		f.elements[parent].children = append(f.elements[parent].children, idx)
	} else {
		f.roots = append(f.roots, idx)
	}
	f.open = append(f.open, idx)
	f.index[id] = idx
	f.live[id] = struct{}{}
	return idx, nil
}

// Close ends the innermost open element.
func (f *Frame) Close() error {
	n := len(f.open)
	if n == 0 {
		return ErrUnbalanced
	}
	f.open = f.open[:n-1]
	return nil
}

// Depth returns the number of open elements.
func (f *Frame) Depth() int { return len(f.open) }

// Len returns the number of declared elements.
func (f *Frame) Len() int { return len(f.elements) }

// Roots returns the indices of top-level elements in declaration order.
func (f *Frame) Roots() []int { return f.roots }

// ElementID returns the identity of the element at index.
func (f *Frame) ElementID(index int) uint64 { return f.elements[index].id }

// ChildIndices returns the children of the element at index in declaration order.
func (f *Frame) ChildIndices(index int) []int { return f.elements[index].children }

// Parent returns the parent index of the element at index, or -1 for a root.
func (f *Frame) Parent(index int) int { return f.elements[index].parent }

// Lookup returns the index of id in this frame.
func (f *Frame) Lookup(id uint64) (int, bool) {
	idx, ok := f.index[id]
	return idx, ok
}

// Current returns the innermost open element, or -1.
func (f *Frame) Current() int {
	if n := len(f.open); n > 0 {
		return f.open[n-1]
	}
	return -1
}

// Live returns the identities declared this frame. The set is owned by the
// frame and is cleared by Reset.
func (f *Frame) Live() LiveSet { return f.live }
