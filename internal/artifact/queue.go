// Package artifact dispatches document-generation jobs to a worker pool.
//
// The queue is the explicit form of the task queue the engine's async
// operations resolve on: nothing blocks the caller while a card or a
// confirmation is being rendered.
package artifact

import (
	"context"
	"sync"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/metrics"
)

const defaultCapacity = 256

// Kind discriminates the artifact types the pipeline can produce.
type Kind string

// Artifact kinds.
const (
	KindCard         Kind = "card"
	KindConfirmation Kind = "confirmation"
)

// Job is one artifact request flowing through the queue.
type Job struct {
	Kind         Kind
	EventID      int
	Title        string
	Registration model.Registration // set for confirmation jobs
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns a channel that receives jobs as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close shuts the queue down; no new jobs can be enqueued after.
	Close() error
}

// MemoryQueue implements Queue using a buffered channel.
type MemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// QueueOption applies a configuration option to the MemoryQueue.
type QueueOption func(*MemoryQueue)

// WithCapacity sets the maximum number of queued jobs.
func WithCapacity(capacity int) QueueOption {
	return func(q *MemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// NewMemoryQueue creates an in-memory job queue with configuration options.
func NewMemoryQueue(opts ...QueueOption) *MemoryQueue {
	q := &MemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a job to the queue.
func (q *MemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.jobs <- j:
		size := len(q.jobs)
		metrics.UpdateQueueSize(size)
		metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that receives jobs as they become available.
func (q *MemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				size := len(q.jobs)
				metrics.UpdateQueueSize(size)
				metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *MemoryQueue) Len(ctx context.Context) int {
	return len(q.jobs)
}

// Close shuts the queue down.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}
