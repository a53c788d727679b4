// Package para provides a bounded, fault-tolerant parallel-map engine
// for CPU-intensive tasks.
//
// Given a processing function and a finite collection of work items,
// Map fans the items out across a fixed pool of worker goroutines, each
// of which may emit zero or more values per item, and fans the values
// back into a single lazy stream for the caller. The output channel is
// bounded, so a slow consumer applies backpressure to fast producers.
//
// Values arrive in completion order, not input order. A single-item
// input takes a fast path that bypasses all concurrency machinery and
// preserves order.
//
// The first processing error terminates the worker that drew the item
// and aborts delivery to the caller; other workers are unaffected.
// There is no retry.
//
// # Usage
//
//	process := func(_ context.Context, path string) (para.Iterator[Line], error) {
//	    return scanLongLines(path), nil
//	}
//	it, err := para.Map(ctx, process, paths, para.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	lines, err := para.Collect(ctx, it)
//
// Log output from concurrent workers is serialized through a single
// relay goroutine, so lines from different workers never interleave.
package para
