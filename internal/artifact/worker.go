package artifact

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/logger"
	"github.com/evento-hq/evento/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 2
	workerShutdownTimeout = 5 * time.Second
)

// Rasterizer produces the card image for an event.
type Rasterizer interface {
	Render(ctx context.Context, eventID int) ([]byte, error)
}

// DocWriter persists finished documents.
type DocWriter interface {
	WriteConfirmation(ctx context.Context, reg model.Registration) (string, error)
	WriteCard(ctx context.Context, title string, cardPNG []byte) (string, error)
}

// Notifier receives completion messages.
type Notifier interface {
	Push(ctx context.Context, text string) model.Notification
}

// Worker drains the job queue and runs the rendering collaborators.
type Worker struct {
	queue  Queue
	raster Rasterizer
	writer DocWriter
	feed   Notifier
	name   string

	shutdown chan struct{}
	done     chan struct{}

	log logger.Logger
}

// WorkerOption applies a configuration option to the Worker.
type WorkerOption func(*Worker)

// WithName sets the worker name for logging.
func WithName(name string) WorkerOption {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// NewWorker creates a render worker with configuration options.
func NewWorker(queue Queue, raster Rasterizer, writer DocWriter, feed Notifier, opts ...WorkerOption) *Worker {
	w := &Worker{
		queue:    queue,
		raster:   raster,
		writer:   writer,
		feed:     feed,
		name:     "render-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		log:      logger.Get().Named("artifact"),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run drains jobs until ctx is cancelled, shutdown is signalled, or the
// queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				metrics.RecordArtifactError(string(j.Kind))
				w.log.Error(ctx, "artifact generation failed",
					logger.String("kind", string(j.Kind)),
					logger.Int("eventID", j.EventID),
					logger.Error(err),
				)
			}
		}
	}
}

// process renders one job and emits the completion notification.
func (w *Worker) process(ctx context.Context, j Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordRenderLatency(float64(time.Since(start).Milliseconds()))
	}()

	switch j.Kind {
	case KindCard:
		png, err := w.raster.Render(ctx, j.EventID)
		if err != nil {
			return fmt.Errorf("render card: %w", err)
		}
		path, err := w.writer.WriteCard(ctx, j.Title, png)
		if err != nil {
			return err
		}
		metrics.RecordArtifactGenerated(string(KindCard))
		w.feed.Push(ctx, "IC Card downloaded successfully!")
		w.log.Info(ctx, "card written", logger.String("path", path))
		return nil

	case KindConfirmation:
		path, err := w.writer.WriteConfirmation(ctx, j.Registration)
		if err != nil {
			return err
		}
		metrics.RecordArtifactGenerated(string(KindConfirmation))
		w.feed.Push(ctx, "PDF confirmation downloaded successfully!")
		w.log.Info(ctx, "confirmation written", logger.String("path", path))
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, j.Kind)
	}
}

// Pool manages a fixed set of render workers.
type Pool struct {
	workers []*Worker
}

// NewPool creates workerCount render workers on the shared queue.
func NewPool(workerCount int, queue Queue, raster Rasterizer, writer DocWriter, feed Notifier) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	p := &Pool{workers: make([]*Worker, workerCount)}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(queue, raster, writer, feed,
			WithName("render-worker-"+strconv.Itoa(i)),
		)
	}
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for them to drain.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}
