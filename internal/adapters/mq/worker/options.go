package worker

import (
	"github.com/dcf21/star-charter/pkg/logger"
)

// Option applies a configuration option to the Merger.
type Option func(*Merger)

// WithName sets the merger name used in logs.
func WithName(name string) Option {
	return func(m *Merger) {
		if name != "" {
			m.name = name
		}
	}
}

// WithLogger sets a custom logger for the merger.
func WithLogger(l logger.Logger) Option {
	return func(m *Merger) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStageHook registers a callback run after each catalogue is merged.
func WithStageHook(h StageHook) Option {
	return func(m *Merger) {
		m.onStage = h
	}
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithPoolLogger sets a custom logger for the pool.
func WithPoolLogger(l logger.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
