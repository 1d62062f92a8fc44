// Package notify delivers best-effort side-channel notifications: an email
// relay message to the shop owner and a row appended to a bookkeeping
// spreadsheet webhook. Deliveries run in the background and failures are
// logged but never surfaced to the customer flow.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-faster/sdk/zctx"
)

// Sink delivers one notification payload somewhere external.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, subject string, payload map[string]any) error
}

type task struct {
	subject string
	payload map[string]any
}

// Queue fans notification tasks out to its sinks from background workers.
// Enqueue never blocks the caller: when the queue is full the task is
// dropped with a log line.
type Queue struct {
	sinks []Sink
	tasks chan task
	lg    *zap.Logger
	opts  QueueOptions

	grp    *errgroup.Group
	cancel context.CancelFunc
}

// QueueOptions tune the queue. Zero values fall back to defaults.
type QueueOptions struct {
	Workers    int
	Buffer     int
	Timeout    time.Duration
	RetryPause time.Duration
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.Buffer <= 0 {
		o.Buffer = 64
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.RetryPause <= 0 {
		o.RetryPause = time.Second
	}
	return o
}

// NewQueue starts the delivery workers. Close must be called to drain them.
func NewQueue(lg *zap.Logger, opts QueueOptions, sinks ...Sink) *Queue {
	opts = opts.withDefaults()

	ctx, cancel := context.WithCancel(zctx.Base(context.Background(), lg))
	grp, ctx := errgroup.WithContext(ctx)

	q := &Queue{
		sinks:  sinks,
		tasks:  make(chan task, opts.Buffer),
		lg:     lg,
		opts:   opts,
		grp:    grp,
		cancel: cancel,
	}
	for i := 0; i < opts.Workers; i++ {
		grp.Go(func() error {
			q.worker(ctx)
			return nil
		})
	}
	return q
}

// Enqueue schedules a notification for delivery to every sink.
func (q *Queue) Enqueue(subject string, payload map[string]any) {
	select {
	case q.tasks <- task{subject: subject, payload: payload}:
	default:
		q.lg.Warn("Notification queue full, dropping task",
			zap.String("subject", subject))
	}
}

// Close stops accepting tasks, drains what is already queued, and waits for
// the workers to finish.
func (q *Queue) Close() {
	close(q.tasks)
	if err := q.grp.Wait(); err != nil {
		q.lg.Warn("Notification workers exited with error", zap.Error(err))
	}
	q.cancel()
}

func (q *Queue) worker(ctx context.Context) {
	for t := range q.tasks {
		for _, sink := range q.sinks {
			q.deliver(ctx, sink, t)
		}
	}
}

// deliver tries a sink once and retries once more after a short pause.
// A sink that still fails is logged and skipped.
func (q *Queue) deliver(ctx context.Context, sink Sink, t task) {
	lg := zctx.From(ctx).With(
		zap.String("sink", sink.Name()),
		zap.String("subject", t.subject),
	)
	for attempt := 0; attempt < 2; attempt++ {
		dctx, cancel := context.WithTimeout(ctx, q.opts.Timeout)
		err := sink.Deliver(dctx, t.subject, t.payload)
		cancel()
		if err == nil {
			return
		}
		lg.Warn("Notification delivery failed",
			zap.Int("attempt", attempt+1), zap.Error(err))
		if attempt == 0 {
			select {
			case <-time.After(q.opts.RetryPause):
			case <-ctx.Done():
				return
			}
		}
	}
}
