package rack

import (
	"log/slog"

	"github.com/google/uuid"
)

type options struct {
	name   string
	logger *slog.Logger
}

// Option configures a rack at construction time.
type Option func(*options)

// WithName sets the name used in logs and in String. Racks without an
// explicit name get a generated "rack-<uuid>" one.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger enables debug logging of slot traffic on the given logger.
// Without it the rack does not log at all, and the add and release paths
// stay allocation free.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.name == "" {
		o.name = "rack-" + uuid.NewString()
	}
	return o
}
