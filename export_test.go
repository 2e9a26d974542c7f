package rack

// FreeIndices returns the rack's current free list, head first, for
// integrity checks in tests.
func FreeIndices[T any](r *Rack[T]) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots.FreeList()
}
