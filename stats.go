package rack

// Stats is a snapshot of a rack's lifetime counters.
type Stats struct {
	// Adds counts slots handed out by Add and MustAdd.
	Adds uint64

	// AddFailures counts Add calls rejected with ErrRackFull or
	// ErrRackClosed.
	AddFailures uint64

	// Releases counts slots vacated with their value dropped in place:
	// unit Close calls plus the rack's own closing sweep.
	Releases uint64

	// MoveOuts counts slots vacated by Take, with the value handed back
	// to the caller.
	MoveOuts uint64

	// HighWater is the largest number of simultaneously occupied slots
	// the rack has seen.
	HighWater uint64
}

// Stats returns a snapshot of the rack's counters.
func (r *Rack[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
