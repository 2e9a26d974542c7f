// Package rack provides a fixed-capacity object pool that stores values in
// a block of slots allocated once up front and hands out exclusive,
// releasable handles to them. A rack never grows and never reallocates, so
// its memory use is decided at construction and its add and release paths
// stay off the heap, with vacant slots recycled through an intrusive free
// list.
//
// Each stored value is reached only through its Unit handle, which owns the
// slot until it is closed (dropping the value) or its value is taken back
// out. Reads and writes go through the handle and are checked: overlapping
// shared views are fine, a writer excludes everything else, and a handle
// whose slot was released fails loudly instead of touching recycled memory.
//
// Basic usage:
//
//	r := rack.New64[Session]()
//	defer r.Close()
//
//	unit, err := r.Add(session)
//	if err != nil {
//		// ErrRackFull: all 64 slots are occupied.
//		return err
//	}
//	defer unit.Close()
//
//	unit.Update(func(s *Session) { s.Touch() })
//	fmt.Printf("stored in slot %d\n", unit.Index())
//
// Units are plain values and may live inside stored values themselves,
// which turns a rack into the backing store for linked structures:
//
//	type node struct {
//		value int
//		next  rack.Unit[node]
//	}
//
//	r := rack.New64[node]()
//	list := node{value: 1, next: r.MustAdd(node{value: 2})}
//
// A rack may be shared by goroutines adding and releasing concurrently;
// a single unit belongs to one goroutine at a time.
package rack
