package rack

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rack/rack/internal/slab"
)

// Rack is a fixed-capacity pool of slots for values of type T. Add stores a
// value in a vacant slot and hands back a Unit that owns the slot until the
// unit is closed or its value is taken out. All slot storage is allocated
// once in New; afterwards nothing grows, shrinks, or moves, and the add and
// release paths do not touch the heap.
//
// A Rack may be shared between goroutines: the free-list head, the
// occupancy count, and every slot state transition are serialized by one
// mutex. Individual units are a different matter; each one owns its slot
// exclusively, so a unit and the value behind it belong to one goroutine
// at a time.
type Rack[T any] struct {
	name  string
	slots *slab.Slab[T]

	// mu is the single point of mutual exclusion for the free-list head,
	// the used count, and all cell state. View and Update callbacks run
	// outside of it, so they may call back into the rack.
	mu     sync.Mutex
	used   int
	closed bool
	stats  Stats

	logger  *slog.Logger
	verbose bool // caches logger.Enabled so disabled logging costs nothing
}

// New creates a rack with the given number of slots. The capacity is fixed
// for the rack's whole life. New panics if capacity is less than 1.
func New[T any](capacity int, opts ...Option) *Rack[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("rack: capacity must be at least 1, got %d", capacity))
	}
	o := applyOptions(opts)
	r := &Rack[T]{
		name:   o.name,
		slots:  slab.New[T](capacity),
		logger: o.logger,
	}
	if r.logger != nil {
		r.verbose = r.logger.Enabled(context.Background(), slog.LevelDebug)
	}
	return r
}

// Add stores value in a vacant slot and returns the Unit owning that slot.
// It fails with ErrRackFull while every slot is occupied and with
// ErrRackClosed after Close. On failure the rack is unchanged and the
// caller keeps its value.
func (r *Rack[T]) Add(value T) (Unit[T], error) {
	r.mu.Lock()
	if r.closed {
		r.stats.AddFailures++
		r.mu.Unlock()
		if r.verbose {
			r.logger.Debug("add refused", "rack", r.name, "err", ErrRackClosed)
		}
		return Unit[T]{}, ErrRackClosed
	}
	idx, gen, ok := r.slots.Alloc(value)
	if !ok {
		r.stats.AddFailures++
		r.mu.Unlock()
		if r.verbose {
			r.logger.Debug("add refused", "rack", r.name, "err", ErrRackFull)
		}
		return Unit[T]{}, ErrRackFull
	}
	r.used++
	r.stats.Adds++
	if uint64(r.used) > r.stats.HighWater {
		r.stats.HighWater = uint64(r.used)
	}
	used := r.used
	r.mu.Unlock()

	if r.verbose {
		r.logger.Debug("unit added", "rack", r.name, "slot", idx, "used", used)
	}
	return Unit[T]{rack: r, index: idx, gen: gen}, nil
}

// MustAdd is Add for call sites that know a slot is vacant, typically
// because they sized the rack for a known worst case. It panics with the
// error Add would have returned instead of failing.
func (r *Rack[T]) MustAdd(value T) Unit[T] {
	u, err := r.Add(value)
	if err != nil {
		panic(err)
	}
	return u
}

// Used returns the number of occupied slots.
func (r *Rack[T]) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Capacity returns the total number of slots.
func (r *Rack[T]) Capacity() int {
	return r.slots.Cap()
}

// Available returns the number of vacant slots.
func (r *Rack[T]) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots.Cap() - r.used
}

// Name returns the rack's name, either the WithName value or the generated
// default.
func (r *Rack[T]) Name() string {
	return r.name
}

// Closed reports whether Close has been called.
func (r *Rack[T]) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// String renders the rack's occupancy for debugging.
func (r *Rack[T]) String() string {
	r.mu.Lock()
	used := r.used
	r.mu.Unlock()
	return fmt.Sprintf("rack(%s): %d/%d units", r.name, used, r.slots.Cap())
}

// Close marks the rack closed and vacates every slot still occupied,
// spending all outstanding units. Units are expected to be closed before
// their rack, so Close reports slots it had to sweep as an error; it is the
// safety net, not the disposal path. After Close, Add fails with
// ErrRackClosed, and so does a second Close. Closing while a View or
// Update is running panics with ErrUnitBorrowed.
func (r *Rack[T]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRackClosed
	}
	r.closed = true

	swept := 0
	for idx := uint32(0); idx < uint32(r.slots.Cap()); idx++ {
		if !r.slots.Occupied(idx) {
			continue
		}
		if r.slots.Borrowed(idx) {
			panic(ErrUnitBorrowed)
		}
		r.slots.Free(idx)
		r.used--
		r.stats.Releases++
		swept++
	}

	if r.verbose {
		r.logger.Debug("rack closed", "rack", r.name, "swept", swept)
	}
	if swept > 0 {
		return fmt.Errorf("rack: %d units still live at close", swept)
	}
	return nil
}

// release vacates the unit's slot with the value dropped in place. It is
// the only path that may report a spent handle as an error instead of a
// panic, so Close on a unit stays usable in defer chains.
func (r *Rack[T]) release(idx, gen uint32) error {
	r.mu.Lock()
	if !r.slots.Valid(idx, gen) {
		r.mu.Unlock()
		return ErrUnitSpent
	}
	if r.slots.Borrowed(idx) {
		r.mu.Unlock()
		panic(ErrUnitBorrowed)
	}
	r.slots.Free(idx)
	r.used--
	r.stats.Releases++
	used := r.used
	r.mu.Unlock()

	if r.verbose {
		r.logger.Debug("unit released", "rack", r.name, "slot", idx, "used", used)
	}
	return nil
}

// take moves the value out of the unit's slot and vacates it.
func (r *Rack[T]) take(idx, gen uint32) T {
	r.mu.Lock()
	if !r.slots.Valid(idx, gen) {
		r.mu.Unlock()
		panic(ErrUnitSpent)
	}
	if r.slots.Borrowed(idx) {
		r.mu.Unlock()
		panic(ErrUnitBorrowed)
	}
	value := *r.slots.Value(idx)
	r.slots.Free(idx)
	r.used--
	r.stats.MoveOuts++
	used := r.used
	r.mu.Unlock()

	if r.verbose {
		r.logger.Debug("unit taken", "rack", r.name, "slot", idx, "used", used)
	}
	return value
}

// getValue copies the slot's value under a momentary shared view, held only
// for the duration of the copy.
func (r *Rack[T]) getValue(idx, gen uint32) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.slots.Valid(idx, gen) {
		panic(ErrUnitSpent)
	}
	if !r.slots.BorrowShared(idx) {
		panic(ErrUnitBorrowed)
	}
	value := *r.slots.Value(idx)
	r.slots.ReturnShared(idx)
	return value
}

// setValue overwrites the slot's value under a momentary exclusive view,
// held only for the duration of the write.
func (r *Rack[T]) setValue(idx, gen uint32, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.slots.Valid(idx, gen) {
		panic(ErrUnitSpent)
	}
	if !r.slots.BorrowExclusive(idx) {
		panic(ErrUnitBorrowed)
	}
	*r.slots.Value(idx) = value
	r.slots.ReturnExclusive(idx)
}

// borrowShared opens a shared view of the slot's value and returns the
// value pointer. The caller must pair it with returnShared.
func (r *Rack[T]) borrowShared(idx, gen uint32) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.slots.Valid(idx, gen) {
		panic(ErrUnitSpent)
	}
	if !r.slots.BorrowShared(idx) {
		panic(ErrUnitBorrowed)
	}
	return r.slots.Value(idx)
}

func (r *Rack[T]) returnShared(idx uint32) {
	r.mu.Lock()
	r.slots.ReturnShared(idx)
	r.mu.Unlock()
}

// borrowExclusive opens the exclusive view of the slot's value and returns
// the value pointer. The caller must pair it with returnExclusive.
func (r *Rack[T]) borrowExclusive(idx, gen uint32) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.slots.Valid(idx, gen) {
		panic(ErrUnitSpent)
	}
	if !r.slots.BorrowExclusive(idx) {
		panic(ErrUnitBorrowed)
	}
	return r.slots.Value(idx)
}

func (r *Rack[T]) returnExclusive(idx uint32) {
	r.mu.Lock()
	r.slots.ReturnExclusive(idx)
	r.mu.Unlock()
}
