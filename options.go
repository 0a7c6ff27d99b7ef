package tilefrag

import "github.com/go-kit/log"

// Option configures a ReadState at construction. Global toggles like
// mmap usage are configuration, not module state, so they are pinned
// once here rather than mutated later (spec.md §9).
type Option func(*options)

type options struct {
	useMmap bool
	logger  log.Logger
}

func defaultOptions() options {
	return options{
		useMmap: false,
		logger:  log.NewNopLogger(),
	}
}

// WithMmap selects the memory-map tile I/O path over read-into-buffer
// (spec.md §4.4).
func WithMmap(enabled bool) Option {
	return func(o *options) { o.useMmap = enabled }
}

// WithLogger attaches a structured logger. Each Read logs one debug-level
// entry per attribute with the bytes written and the overflow flag;
// failures are returned as errors and are not logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
