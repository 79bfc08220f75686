package sqlitestore

import "github.com/dcf21/star-charter/pkg/logger"

const defaultBatchSize = 500

// Option configures a Store.
type Option func(*Store)

// WithBatchSize sets the number of rows per insert statement.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithLogger sets the logger for export progress.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
