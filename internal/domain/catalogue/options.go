package catalogue

import "github.com/dcf21/star-charter/pkg/logger"

type options struct {
	limit    *float64
	sizeHint int
	logger   logger.Logger
}

// Option configures a Catalogue.
type Option func(*options)

// WithMagnitudeLimit admits only records with some band at or brighter than limit.
func WithMagnitudeLimit(limit float64) Option {
	return func(o *options) {
		o.limit = &limit
	}
}

// WithSizeHint pre-sizes storage for roughly n records.
func WithSizeHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sizeHint = n
		}
	}
}

// WithLogger sets the logger used for advisory warnings.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
