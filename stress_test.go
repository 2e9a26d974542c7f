package rack_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/go-rack/rack"
)

// TestStress_ConcurrentAddAndRelease hammers one rack from several
// goroutines and checks that no slot is ever shared and nothing leaks.
func TestStress_ConcurrentAddAndRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const (
		capacity   = 16
		goroutines = 8
		iterations = 2000
	)

	r := rack.New[uint64](capacity, rack.WithName("stress"))

	var g errgroup.Group
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < iterations; i++ {
				want := uint64(w)<<32 | uint64(i)
				u, err := r.Add(want)
				if errors.Is(err, rack.ErrRackFull) {
					continue
				}
				if err != nil {
					return fmt.Errorf("worker %d: unexpected add failure: %w", w, err)
				}
				if got := u.Get(); got != want {
					return fmt.Errorf("worker %d: slot %d holds %d, want %d", w, u.Index(), got, want)
				}
				if rng.Intn(2) == 0 {
					if got := u.Take(); got != want {
						return fmt.Errorf("worker %d: take from slot %d returned %d, want %d", w, u.Index(), got, want)
					}
				} else if err := u.Close(); err != nil {
					return fmt.Errorf("worker %d: close of slot %d failed: %w", w, u.Index(), err)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait(), "no worker should observe an inconsistency")

	assert.Equal(t, 0, r.Used(), "every slot should be vacant after the churn")
	assert.Len(t, rack.FreeIndices(r), capacity, "the free list should hold the whole rack again")

	stats := r.Stats()
	assert.Equal(t, stats.Adds, stats.Releases+stats.MoveOuts, "every add should have been returned")
	assert.LessOrEqual(t, stats.HighWater, uint64(capacity))

	require.NoError(t, r.Close(), "nothing should be live at the end")
}

// TestStress_SingleSlotContention funnels every goroutine through a
// one-slot rack so the mutual exclusion around the free-list head gets no
// slack at all.
func TestStress_SingleSlotContention(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const (
		goroutines = 8
		iterations = 1000
	)

	r := rack.New1[int]()

	var g errgroup.Group
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				u, err := r.Add(w)
				if errors.Is(err, rack.ErrRackFull) {
					continue
				}
				if err != nil {
					return fmt.Errorf("worker %d: unexpected add failure: %w", w, err)
				}
				if u.Index() != 0 {
					return fmt.Errorf("worker %d: one-slot rack handed out slot %d", w, u.Index())
				}
				if err := u.Close(); err != nil {
					return fmt.Errorf("worker %d: close failed: %w", w, err)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, r.Used())
	require.NoError(t, r.Close())
}
