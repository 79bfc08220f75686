package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Sink receives a decoder's observations.
type Sink interface {
	Enqueue(ctx context.Context, o Observation) error
	Close() error
}

// Emit hands one observation to the pipeline.
type Emit func(o Observation) error

// Job decodes one catalogue into its sink.
type Job struct {
	Name   string
	Sink   Sink
	Decode func(ctx context.Context, emit Emit) error
}

// Pool runs decoding jobs with bounded parallelism.
//
// Slots are taken in job order, so the earliest unfinished job always holds
// one. Combined with a merger that consumes in the same order this keeps
// bounded queues from deadlocking.
type Pool struct {
	size   int
	logger logger.Logger
}

// NewPool creates a pool running at most size jobs at once.
func NewPool(size int, opts ...PoolOption) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{size: size}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Named("decode-pool")
	}
	return p
}

// Size returns the parallelism limit.
func (p *Pool) Size() int { return p.size }

// Run starts every job and waits for all of them. Each job's sink is closed
// when the job ends, including jobs never started because ctx ended first.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	sem := semaphore.NewWeighted(int64(p.size))
	g, gctx := errgroup.WithContext(ctx)

	started := 0
	for _, job := range jobs {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		started++
		g.Go(func() error {
			defer sem.Release(1)
			defer func() {
				if err := job.Sink.Close(); err != nil {
					p.logger.Warn(gctx, "closing sink failed", logger.String("catalogue", job.Name), logger.Error(err))
				}
			}()

			start := time.Now()
			emit := func(o Observation) error { return job.Sink.Enqueue(gctx, o) }
			if err := job.Decode(gctx, emit); err != nil {
				metrics.RecordErrorByComponent("decoder", job.Name)
				return fmt.Errorf("decode %s: %w", job.Name, err)
			}
			elapsed := time.Since(start)
			metrics.ObserveDecodeDuration(job.Name, elapsed)
			p.logger.Debug(gctx, "catalogue decoded", logger.String("catalogue", job.Name), logger.Duration("elapsed", elapsed))
			return nil
		})
	}
	for _, job := range jobs[started:] {
		_ = job.Sink.Close()
	}
	return g.Wait()
}
