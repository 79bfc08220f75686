package registry

const defaultSizeHint = 1024

type options struct {
	sizeHint int
}

// Option configures a Registry.
type Option func(*options)

// WithSizeHint pre-sizes the tables for roughly n records.
func WithSizeHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sizeHint = n
		}
	}
}
