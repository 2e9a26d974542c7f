package rack

// Unit is the handle to one occupied slot of a Rack. Add mints it, and it
// owns the slot exclusively until it is ended exactly once: Close drops the
// value in place, Take moves the value back out. Either way the slot
// returns to the rack's free list and the handle is spent.
//
// Unit is a small comparable value. Copies alias the same slot, and the
// first copy to end it spends them all: Close on a spent unit reports
// ErrUnitSpent, every other operation panics with it. The zero Unit was
// never bound to a slot and counts as spent; IsZero distinguishes it from
// a live handle.
type Unit[T any] struct {
	rack  *Rack[T]
	index uint32
	gen   uint32
}

// Index returns the slot index the unit was bound to. It stays readable
// after the unit is spent.
func (u Unit[T]) Index() int {
	return int(u.index)
}

// IsZero reports whether u is the zero Unit, one never obtained from a
// rack. Storing units inside stored values makes linked structures out of
// slots, and the zero Unit is the natural end marker for those chains.
func (u Unit[T]) IsZero() bool {
	return u.rack == nil
}

// Get returns a copy of the slot's value. The copy is made under a
// momentary shared view, so Get panics with ErrUnitBorrowed while an
// Update is running and with ErrUnitSpent on a spent unit.
func (u Unit[T]) Get() T {
	return u.mustRack().getValue(u.index, u.gen)
}

// Set replaces the slot's value. The write happens under a momentary
// exclusive view, so Set panics with ErrUnitBorrowed while any view is out
// and with ErrUnitSpent on a spent unit.
func (u Unit[T]) Set(value T) {
	u.mustRack().setValue(u.index, u.gen, value)
}

// View calls fn with a pointer to the slot's value under a shared view.
// Any number of shared views may overlap, including nested Views from fn
// itself; Update, Set, Take, and Close are refused until they all return.
// fn must not write through the pointer and must not retain it. The rack
// lock is not held during fn, so fn may use the rack and other units
// freely.
func (u Unit[T]) View(fn func(value *T)) {
	p := u.mustRack().borrowShared(u.index, u.gen)
	defer u.rack.returnShared(u.index)
	fn(p)
}

// Update calls fn with a pointer to the slot's value under the exclusive
// view: no other view, shared or exclusive, may be out at the same time,
// and none may be opened until fn returns. fn must not retain the pointer.
// The rack lock is not held during fn, so fn may use the rack and other
// units freely.
func (u Unit[T]) Update(fn func(value *T)) {
	p := u.mustRack().borrowExclusive(u.index, u.gen)
	defer u.rack.returnExclusive(u.index)
	fn(p)
}

// Take moves the slot's value out: it returns the value, vacates the slot,
// and spends the handle along with every copy of it. Take panics with
// ErrUnitSpent on a spent unit and with ErrUnitBorrowed while a view is
// out.
func (u Unit[T]) Take() T {
	return u.mustRack().take(u.index, u.gen)
}

// Close drops the slot's value in place and vacates the slot. The first
// Close returns nil; any later end of the same slot handle, whether it was
// closed, taken, or swept by the rack's Close, returns ErrUnitSpent.
// Closing while a view is out panics with ErrUnitBorrowed. Close on the
// zero Unit returns ErrUnitSpent, which keeps it safe in defer chains.
func (u Unit[T]) Close() error {
	if u.rack == nil {
		return ErrUnitSpent
	}
	return u.rack.release(u.index, u.gen)
}

func (u Unit[T]) mustRack() *Rack[T] {
	if u.rack == nil {
		panic(ErrUnitSpent)
	}
	return u.rack
}
