// Package worker runs the two halves of the merge pipeline: a pool of
// catalogue decoders working in parallel, and a single merger that applies
// their observations one catalogue at a time, in order.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Observation is what the merger reads off a queue.
type Observation = model.Observation

// Applier folds one observation into the catalogue.
type Applier interface {
	Apply(ctx context.Context, o *Observation) error
}

// Queue defines how the merger receives a catalogue's observations.
type Queue interface {
	Name() string
	Dequeue(ctx context.Context) <-chan Observation
}

// StageHook is called after a catalogue has been fully merged.
type StageHook func(ctx context.Context, catalogue string, merged int, elapsed time.Duration)

// Merger drains queues strictly in the order given. It is the only goroutine
// that touches the Applier.
type Merger struct {
	applier Applier
	name    string
	onStage StageHook
	logger  logger.Logger
}

// NewMerger creates a merger with configuration options.
func NewMerger(applier Applier, opts ...Option) *Merger {
	m := &Merger{
		applier: applier,
		name:    "merger",
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logger.Named(m.name)
	}

	return m
}

// Run consumes every queue to completion, one after another. It stops at the
// first Apply error or when ctx ends.
func (m *Merger) Run(ctx context.Context, queues []Queue) error {
	for _, q := range queues {
		start := time.Now()
		merged := 0
		for o := range q.Dequeue(ctx) {
			if err := m.applier.Apply(ctx, &o); err != nil {
				metrics.RecordErrorByComponent("merger", "apply")
				m.logger.Error(ctx, "merge failed",
					logger.String("catalogue", q.Name()),
					logger.Int("line", o.Line),
					logger.Error(err))
				return fmt.Errorf("merge %s line %d: %w", q.Name(), o.Line, err)
			}
			merged++
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.onStage != nil {
			m.onStage(ctx, q.Name(), merged, time.Since(start))
		}
	}
	return nil
}
