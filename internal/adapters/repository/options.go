package repository

// Option applies a configuration option to the TreapIndex.
type Option func(*TreapIndex)

// WithSizeHint pre-sizes the ID table for roughly n records.
func WithSizeHint(n int) Option {
	return func(s *TreapIndex) {
		if n > 0 {
			s.sizeHint = n
		}
	}
}
