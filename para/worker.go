package para

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/parakit/parakit/errors"
	"github.com/parakit/parakit/logger"
	"github.com/parakit/parakit/observability"
	"github.com/parakit/parakit/util"
)

// envelope carries a value or a terminal error from a worker to the
// drain loop. Exactly one variant is populated.
type envelope[V any] struct {
	val V
	err error
}

// itemStat records per-item accounting, retained for the end-of-run
// summary a worker logs when the queue is exhausted.
type itemStat struct {
	item    string
	values  int
	elapsed time.Duration
}

// worker drains the shared work queue until it is exhausted or an item
// fails. One failed item terminates only the worker that drew it.
type worker[I, V any] struct {
	name    string
	process Process[I, V]
	queue   <-chan I
	out     chan<- envelope[V]
	relay   *relay
	metrics *observability.Metrics
	tracing bool
	stats   []itemStat
}

// run executes the worker loop on the engine's run context. Cancellation
// of that context abandons the worker silently; it is how a closed or
// discarded run releases workers parked on a full output channel.
func (w *worker[I, V]) run(ctx context.Context) {
	w.relay.Info("starting up", logger.Fields(logger.FieldWorker, w.name))
	if w.metrics != nil {
		w.metrics.RecordWorkerStart(ctx)
		defer w.metrics.RecordWorkerStop(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-w.queue:
			if !ok {
				w.finish()
				return
			}
			if !w.processItem(ctx, item) {
				return
			}
		}
	}
}

// processItem runs the process function for one item and pushes every
// produced value onto the output channel. It returns false when the
// worker must stop: after an item failure or when the run is abandoned.
func (w *worker[I, V]) processItem(ctx context.Context, item I) bool {
	label := util.Truncate(fmt.Sprint(item), itemLabelLen)
	w.relay.Info("processing item", logger.Fields(
		logger.FieldWorker, w.name,
		logger.FieldItem, label,
	))

	if w.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, observability.SpanItem)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrWorker, w.name)
		observability.SetSpanAttribute(ctx, observability.AttrItem, label)
	}

	start := time.Now()
	count := 0
	err := w.yield(ctx, item, &count)
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
			// Run abandoned mid-item; nobody is draining the output.
			return false
		}
		w.fail(ctx, label, count, elapsed, err)
		return false
	}
	if ctx.Err() != nil {
		return false
	}

	w.stats = append(w.stats, itemStat{item: label, values: count, elapsed: elapsed})
	if w.metrics != nil {
		w.metrics.RecordItem(ctx, "ok", count, elapsed)
	}
	if w.tracing {
		observability.SetSpanAttribute(ctx, observability.AttrValues, count)
	}
	return true
}

// yield pulls every value the process function produces for item and
// pushes it onto the output channel, blocking when the channel is full.
// A non-nil return is either the item's failure or ctx's error when the
// run was abandoned mid-push.
func (w *worker[I, V]) yield(ctx context.Context, item I, count *int) error {
	it, err := w.process(ctx, item)
	if err != nil {
		return err
	}
	if it == nil {
		return nil
	}
	defer it.Close()

	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		select {
		case w.out <- envelope[V]{val: v}:
			*count++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// fail reports an item failure: exactly one error envelope, an error
// log line with the worker's stack, and error metrics. The caller
// terminates the worker immediately afterwards.
func (w *worker[I, V]) fail(ctx context.Context, label string, count int, elapsed time.Duration, err error) {
	w.relay.Error("item processing failed", logger.Fields(
		logger.FieldWorker, w.name,
		logger.FieldItem, label,
		logger.FieldError, err.Error(),
		logger.FieldStack, string(debug.Stack()),
	))
	if w.metrics != nil {
		w.metrics.RecordItem(ctx, "error", count, elapsed)
		w.metrics.RecordError(ctx, "worker")
	}
	if w.tracing {
		observability.SetSpanError(ctx, err)
	}

	wrapped := errors.Processing(label).WithCause(err)
	select {
	case w.out <- envelope[V]{err: wrapped}:
	case <-ctx.Done():
	}
}

// finish logs the completion summary once the queue is exhausted.
func (w *worker[I, V]) finish() {
	w.relay.Info("no more items to process", logger.Fields(logger.FieldWorker, w.name))
	for _, s := range w.stats {
		w.relay.Info("extracted values", logger.Fields(
			logger.FieldWorker, w.name,
			logger.FieldItem, s.item,
			logger.FieldValues, s.values,
			logger.FieldDuration, s.elapsed.Milliseconds(),
		))
	}
}
