package rack

// Constructors for the conventional power-of-two capacities. They are plain
// shorthands for New with the capacity spelled out at the call site.

// New1 creates a rack with a single slot.
func New1[T any](opts ...Option) *Rack[T] { return New[T](1, opts...) }

// New2 creates a rack with 2 slots.
func New2[T any](opts ...Option) *Rack[T] { return New[T](2, opts...) }

// New4 creates a rack with 4 slots.
func New4[T any](opts ...Option) *Rack[T] { return New[T](4, opts...) }

// New8 creates a rack with 8 slots.
func New8[T any](opts ...Option) *Rack[T] { return New[T](8, opts...) }

// New16 creates a rack with 16 slots.
func New16[T any](opts ...Option) *Rack[T] { return New[T](16, opts...) }

// New32 creates a rack with 32 slots.
func New32[T any](opts ...Option) *Rack[T] { return New[T](32, opts...) }

// New64 creates a rack with 64 slots.
func New64[T any](opts ...Option) *Rack[T] { return New[T](64, opts...) }

// New128 creates a rack with 128 slots.
func New128[T any](opts ...Option) *Rack[T] { return New[T](128, opts...) }

// New256 creates a rack with 256 slots.
func New256[T any](opts ...Option) *Rack[T] { return New[T](256, opts...) }

// New512 creates a rack with 512 slots.
func New512[T any](opts ...Option) *Rack[T] { return New[T](512, opts...) }

// New1024 creates a rack with 1024 slots.
func New1024[T any](opts ...Option) *Rack[T] { return New[T](1024, opts...) }
