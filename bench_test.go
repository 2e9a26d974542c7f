package rack_test

import (
	"testing"

	"github.com/go-rack/rack"
)

var sink int

func BenchmarkAddClose(b *testing.B) {
	r := rack.New[int](1024)
	defer r.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := r.MustAdd(i)
		_ = u.Close()
	}
}

func BenchmarkAddTake(b *testing.B) {
	r := rack.New[int](1024)
	defer r.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := r.MustAdd(i)
		sink = u.Take()
	}
}

func BenchmarkGetSet(b *testing.B) {
	r := rack.New1[int]()
	defer r.Close()
	u := r.MustAdd(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Set(i)
		sink = u.Get()
	}
}

func BenchmarkViewUpdate(b *testing.B) {
	r := rack.New1[int]()
	defer r.Close()
	u := r.MustAdd(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Update(func(v *int) { *v++ })
		u.View(func(v *int) { sink = *v })
	}
}

func BenchmarkParallelAddClose(b *testing.B) {
	r := rack.New[int](1024)
	defer r.Close()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			u, err := r.Add(0)
			if err != nil {
				continue
			}
			_ = u.Close()
		}
	})
}
