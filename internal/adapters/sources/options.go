package sources

import "github.com/dcf21/star-charter/pkg/logger"

const defaultParallaxErrorLimit = 0.3

// Option configures the decoders returned by Default.
type Option func(*settings)

type settings struct {
	parallaxErrorLimit float64
	logger             logger.Logger
}

// WithParallaxErrorLimit sets the largest accepted parallax error as a
// fraction of the parallax.
func WithParallaxErrorLimit(limit float64) Option {
	return func(s *settings) {
		if limit > 0 {
			s.parallaxErrorLimit = limit
		}
	}
}

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
