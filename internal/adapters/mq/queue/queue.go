// Package queue carries decoded observations from a catalogue decoder to the
// merger. Each catalogue gets its own bounded queue so that decoders can run
// ahead while the merger consumes catalogues strictly in order.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 4096
)

// Observation is the payload type flowing through the queue.
type Observation = model.Observation

// Queue provides blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an observation, waiting while the queue is full.
	// Returns ErrClosed after Close, or the context error if ctx ends first.
	Enqueue(ctx context.Context, o Observation) error

	// Dequeue returns a channel that receives observations in enqueue order.
	// The channel is closed once the queue is closed and drained, or when ctx ends.
	Dequeue(ctx context.Context) <-chan Observation

	// Len returns the current number of queued observations.
	Len(ctx context.Context) int

	// Close marks the end of the stream. Queued observations remain readable.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	name     string
	items    chan Observation
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue for the named catalogue.
func NewInMemoryQueue(name string, opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		name:     name,
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.items = make(chan Observation, q.capacity)
	metrics.SetQueueDepth(q.name, 0)

	return q
}

// Name returns the catalogue the queue serves.
func (q *InMemoryQueue) Name() string { return q.name }

// Enqueue adds an observation, blocking while the queue is full.
func (q *InMemoryQueue) Enqueue(ctx context.Context, o Observation) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByComponent("queue", "closed")
		return fmt.Errorf("%s: %w", q.name, ErrClosed)
	}

	select {
	case q.items <- o:
		metrics.RecordQueueEnqueue(q.name)
		metrics.SetQueueDepth(q.name, len(q.items))
		return nil
	case <-ctx.Done():
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return ctx.Err()
	}
}

// Dequeue returns a channel that will receive observations as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Observation {
	out := make(chan Observation)
	go func() {
		defer close(out)
		for {
			select {
			case o, ok := <-q.items:
				if !ok {
					return
				}
				select {
				case out <- o:
					metrics.RecordQueueDequeue(q.name)
					metrics.SetQueueDepth(q.name, len(q.items))
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued observations.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.items)
}

// Close marks the end of the stream.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.items)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
