package rack

import "errors"

var (
	// ErrRackFull is returned by Add when every slot is occupied. The rack
	// is left unchanged and the caller keeps its value.
	ErrRackFull = errors.New("rack: the rack is full")

	// ErrRackClosed is returned by Add once the rack has been closed, and
	// by Close itself on the second and later calls.
	ErrRackClosed = errors.New("rack: the rack is closed")

	// ErrUnitSpent reports use of a unit whose slot has already been
	// released, whether through this handle, a copy of it, or the rack's
	// own Close. Unit.Close returns it; every other unit operation treats
	// a spent handle as a programming error and panics with it.
	ErrUnitSpent = errors.New("rack: unit is spent")

	// ErrUnitBorrowed reports an operation that is illegal while a view of
	// a unit's value is outstanding: releasing the slot, taking the value,
	// or requesting a conflicting view. It is always delivered by panic
	// because only a programming error can produce it.
	ErrUnitBorrowed = errors.New("rack: unit value is borrowed")
)
