package para

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/parakit/parakit/errors"
	"github.com/parakit/parakit/logger"
	"github.com/parakit/parakit/observability"
	"github.com/parakit/parakit/util"
)

// Map fans items out across a pool of worker goroutines and returns a
// lazy iterator over every value the process function produces. Values
// arrive in completion order, not input order.
//
// The items slice is fully materialized before any processing begins;
// streaming inputs are not supported. A single-item input bypasses the
// pool entirely and preserves order.
//
// The first item failure is delivered through the iterator's Next as a
// PROCESSING_FAILED error wrapping the original; values dequeued before
// it remain valid. Cancelling the ctx passed to Next stops consumption
// early without an error. Callers must Close the iterator (Collect and
// ForEach do) to release workers still running behind an abandoned or
// aborted drain.
func Map[I, V any](ctx context.Context, process Process[I, V], items []I, opts ...Option) (Iterator[V], error) {
	if process == nil {
		return nil, errors.Validation("process function is required")
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled("map").WithCause(err)
	}

	switch len(items) {
	case 0:
		return Values[V](), nil
	case 1:
		// Fast path: no queues, no workers, no relay.
		return &fastPathIter[I, V]{process: process, item: items[0]}, nil
	}

	runID := uuid.NewString()[:8]
	log := o.log.WithFields(logger.Fields(logger.FieldRunID, runID))

	var span trace.Span
	if o.tracing {
		ctx, span = observability.StartSpan(ctx, observability.SpanMap)
		observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	}

	// Load every item into the work queue up front and close it; a
	// closed, drained queue is the exhaustion signal workers act on.
	queue := make(chan I, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	out := make(chan envelope[V], o.cfg.OutputCapacity)

	// Workers and the relay run on their own context, detached from the
	// caller's: cancelling the drain must not kill in-flight workers.
	// Close() on the returned iterator is what releases them.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	rel := newRelay(runCtx, log, o.cfg.RelayCapacity)

	workerCount := resolveWorkerCount(o.cfg.Workers, len(items))
	var wg sync.WaitGroup
	for i := range workerCount {
		w := &worker[I, V]{
			name:    fmt.Sprintf("mapper-%d", i),
			process: process,
			queue:   queue,
			out:     out,
			relay:   rel,
			metrics: o.metrics,
			tracing: o.tracing,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(runCtx)
		}()
	}

	// The output channel closes only when every worker has finished, so
	// a drained channel with live workers never reads as termination.
	go func() {
		wg.Wait()
		close(out)
	}()

	log.Info("engine started", logger.Fields(
		"workers", workerCount,
		"items", len(items),
		"output_capacity", o.cfg.OutputCapacity,
	))

	return &drainIter[V]{
		out:    out,
		cancel: cancel,
		log:    log,
		span:   span,
	}, nil
}

// fastPathIter lazily produces process(item) in the calling context.
type fastPathIter[I, V any] struct {
	process Process[I, V]
	item    I
	inner   Iterator[V]
	started bool
	done    bool
}

func (it *fastPathIter[I, V]) Next(ctx context.Context) (V, bool, error) {
	var zero V
	if it.done {
		return zero, false, nil
	}
	if !it.started {
		it.started = true
		inner, err := it.process(ctx, it.item)
		if err != nil {
			it.done = true
			return zero, false, it.wrap(err)
		}
		it.inner = inner
	}
	if it.inner == nil {
		it.done = true
		return zero, false, nil
	}
	v, ok, err := it.inner.Next(ctx)
	if err != nil {
		it.done = true
		return zero, false, it.wrap(err)
	}
	if !ok {
		it.done = true
	}
	return v, ok, nil
}

func (it *fastPathIter[I, V]) wrap(err error) error {
	label := util.Truncate(fmt.Sprint(it.item), itemLabelLen)
	return errors.Processing(label).WithCause(err)
}

func (it *fastPathIter[I, V]) Close() error {
	it.done = true
	if it.inner != nil {
		return it.inner.Close()
	}
	return nil
}

// drainIter is the consuming side of a multi-item run. It pulls
// envelopes off the output channel until the channel is closed (all
// workers finished), the first error envelope arrives, or the caller's
// context is canceled.
type drainIter[V any] struct {
	out    <-chan envelope[V]
	cancel context.CancelFunc
	log    *logger.Logger
	span   trace.Span
	done   bool
}

func (it *drainIter[V]) Next(ctx context.Context) (V, bool, error) {
	var zero V
	if it.done {
		return zero, false, nil
	}
	select {
	case env, open := <-it.out:
		if !open {
			it.finish()
			return zero, false, nil
		}
		if env.err != nil {
			if it.span != nil {
				it.span.RecordError(env.err)
			}
			it.finish()
			return zero, false, env.err
		}
		return env.val, true, nil
	case <-ctx.Done():
		// Soft stop: keep values already delivered, raise nothing.
		// Workers stay alive until Close.
		it.log.Warn("interrupt detected, finishing early")
		it.done = true
		return zero, false, nil
	}
}

func (it *drainIter[V]) finish() {
	it.done = true
	if it.span != nil {
		it.span.End()
		it.span = nil
	}
}

// Close cancels the run context, releasing workers parked on a full
// output channel and stopping the log relay. It never blocks.
func (it *drainIter[V]) Close() error {
	it.finish()
	it.cancel()
	return nil
}
