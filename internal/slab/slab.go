// Package slab implements the slot storage underneath a rack: a fixed array
// of cells, each one either occupied by a live value or threaded onto an
// intrusive free list running through the vacant cells themselves. Vacancy
// costs no extra memory and finding a vacant cell costs no scan.
//
// A Slab is not safe for concurrent use on its own. The owning rack
// serializes every call through its mutex.
package slab

import "math"

// None terminates the free list and doubles as the "no slot" index.
const None uint32 = math.MaxUint32

// cell is one storage slot. A vacant cell stores the index of the next
// vacant cell in next; an occupied cell stores the live value. gen counts
// how many times the cell has been vacated, so a handle minted for an
// earlier occupancy can be told apart from the current one. borrows tracks
// outstanding views of the value: 0 none, n > 0 shared, -1 exclusive.
type cell[T any] struct {
	value    T
	next     uint32
	gen      uint32
	borrows  int32
	occupied bool
}

// Slab is a fixed block of cells plus the head of the vacancy list. All
// storage is allocated by New; no later operation allocates or moves cells.
type Slab[T any] struct {
	cells []cell[T]
	head  uint32
}

// New builds a slab of exactly capacity cells, all vacant, chained into the
// free list in index order so the first allocations come out as 0, 1, 2, ...
// capacity must be at least 1; the rack validates it before calling.
func New[T any](capacity int) *Slab[T] {
	s := &Slab[T]{cells: make([]cell[T], capacity)}
	for i := range s.cells {
		s.cells[i].next = uint32(i) + 1
	}
	s.cells[capacity-1].next = None
	return s
}

// Cap returns the number of cells.
func (s *Slab[T]) Cap() int { return len(s.cells) }

// Alloc pops the head of the free list, stores value there, and returns the
// cell's index and current generation. ok is false when every cell is
// occupied; the slab is unchanged in that case.
func (s *Slab[T]) Alloc(value T) (idx, gen uint32, ok bool) {
	idx = s.head
	if idx == None {
		return None, 0, false
	}
	c := &s.cells[idx]
	s.head = c.next
	c.value = value
	c.occupied = true
	return idx, c.gen, true
}

// Free vacates the cell: the value is overwritten with the zero value so the
// garbage collector can reclaim whatever it referenced, the generation is
// bumped to spend all handles minted for this occupancy, and the index is
// pushed onto the free-list head. Callers validate the handle first.
func (s *Slab[T]) Free(idx uint32) {
	c := &s.cells[idx]
	var zero T
	c.value = zero
	c.occupied = false
	c.gen++
	c.next = s.head
	s.head = idx
}

// Valid reports whether the cell at idx is occupied and still on the
// generation the handle was minted with.
func (s *Slab[T]) Valid(idx, gen uint32) bool {
	if idx >= uint32(len(s.cells)) {
		return false
	}
	c := &s.cells[idx]
	return c.occupied && c.gen == gen
}

// Occupied reports whether the cell at idx holds a live value.
func (s *Slab[T]) Occupied(idx uint32) bool {
	return s.cells[idx].occupied
}

// Value returns a pointer to the cell's payload. Call it only on a cell
// that Valid accepted; the pointer stays good until the cell is freed.
func (s *Slab[T]) Value(idx uint32) *T {
	return &s.cells[idx].value
}

// Borrowed reports whether any view of the cell's value is outstanding.
func (s *Slab[T]) Borrowed(idx uint32) bool {
	return s.cells[idx].borrows != 0
}

// BorrowShared registers one more shared view of the cell's value. It
// fails while the exclusive view is out.
func (s *Slab[T]) BorrowShared(idx uint32) bool {
	c := &s.cells[idx]
	if c.borrows < 0 {
		return false
	}
	c.borrows++
	return true
}

// ReturnShared drops one shared view.
func (s *Slab[T]) ReturnShared(idx uint32) {
	s.cells[idx].borrows--
}

// BorrowExclusive registers the exclusive view of the cell's value. It
// fails while any other view, shared or exclusive, is out.
func (s *Slab[T]) BorrowExclusive(idx uint32) bool {
	c := &s.cells[idx]
	if c.borrows != 0 {
		return false
	}
	c.borrows = -1
	return true
}

// ReturnExclusive drops the exclusive view.
func (s *Slab[T]) ReturnExclusive(idx uint32) {
	s.cells[idx].borrows = 0
}

// FreeList returns the vacant indices in list order, head first. The walk
// is bounded by the capacity, so a corrupted cycle cannot hang it; callers
// comparing the result against the expected vacancy count will notice the
// corruption instead. Diagnostic and test use only.
func (s *Slab[T]) FreeList() []uint32 {
	out := make([]uint32, 0, len(s.cells))
	for idx := s.head; idx != None && len(out) < len(s.cells); idx = s.cells[idx].next {
		out = append(out, idx)
	}
	return out
}
