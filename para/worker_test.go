package para

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/parakit/parakit/errors"
	"github.com/parakit/parakit/logger"
)

// newTestWorker builds a worker reading from a pre-filled, closed queue
// and writing to an output channel large enough to never block. The
// relay's log output lands in the returned buffer once cancel is called
// and the relay's done channel is closed.
func newTestWorker(t *testing.T, process Process[int, int], items ...int) (*worker[int, int], chan envelope[int], *bytes.Buffer, *relay, context.CancelFunc) {
	t.Helper()

	queue := make(chan int, len(items)+1)
	for _, item := range items {
		queue <- item
	}
	close(queue)

	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rel := newRelay(ctx, logger.NewWithWriter(&buf, "test"), DefaultRelayCapacity)

	out := make(chan envelope[int], 64)
	w := &worker[int, int]{
		name:    "mapper-0",
		process: process,
		queue:   queue,
		out:     out,
		relay:   rel,
	}
	return w, out, &buf, rel, cancel
}

func TestWorker_DrainsQueue(t *testing.T) {
	process := func(_ context.Context, n int) (Iterator[int], error) {
		return Values(n, n*10), nil
	}
	w, out, buf, rel, cancel := newTestWorker(t, process, 1, 2, 3)

	w.run(context.Background())
	close(out)

	var got []int
	for env := range out {
		if env.err != nil {
			t.Fatalf("unexpected error envelope: %v", env.err)
		}
		got = append(got, env.val)
	}
	want := []int{1, 10, 2, 20, 3, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if len(w.stats) != 3 {
		t.Errorf("recorded %d item stats, want 3", len(w.stats))
	}

	cancel()
	<-rel.done
	log := buf.String()
	for _, want := range []string{"starting up", "processing item", "no more items to process", "extracted values"} {
		if !strings.Contains(log, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestWorker_StopsOnItemFailure(t *testing.T) {
	process := func(_ context.Context, n int) (Iterator[int], error) {
		if n == 2 {
			return nil, errBadItem
		}
		return Values(n), nil
	}
	w, out, buf, rel, cancel := newTestWorker(t, process, 1, 2, 3)

	w.run(context.Background())
	close(out)

	var envs []envelope[int]
	for env := range out {
		envs = append(envs, env)
	}
	if len(envs) != 2 {
		t.Fatalf("got %d envelopes, want a value then an error", len(envs))
	}
	if envs[0].err != nil || envs[0].val != 1 {
		t.Errorf("first envelope = %+v, want value 1", envs[0])
	}
	err := envs[1].err
	if err == nil {
		t.Fatal("expected an error envelope after the failing item")
	}
	if !stderrors.Is(err, errBadItem) {
		t.Errorf("expected errors.Is to reach the original error, got %v", err)
	}
	if !errors.IsCode(err, errors.ErrCodeProcessingFailed) {
		t.Errorf("expected PROCESSING_FAILED, got %v", err)
	}

	// Fail-fast per worker: the item after the failure stays queued.
	if _, open := <-w.queue; !open {
		t.Error("expected item 3 to remain in the queue")
	}

	cancel()
	<-rel.done
	log := buf.String()
	if !strings.Contains(log, "item processing failed") {
		t.Errorf("log output missing failure line: %q", log)
	}
	if !strings.Contains(log, logger.FieldStack) {
		t.Errorf("failure line missing the worker stack")
	}
}

func TestWorker_AbandonedMidPush(t *testing.T) {
	process := func(_ context.Context, n int) (Iterator[int], error) {
		return Values(n, n+1, n+2), nil
	}

	queue := make(chan int, 1)
	queue <- 7
	close(queue)

	ctx, cancel := context.WithCancel(context.Background())
	rel := newRelay(ctx, logger.NewWithWriter(&bytes.Buffer{}, "test"), 8)

	// Capacity one: the worker parks on the second value.
	out := make(chan envelope[int], 1)
	w := &worker[int, int]{
		name:    "mapper-0",
		process: process,
		queue:   queue,
		out:     out,
		relay:   rel,
	}

	done := make(chan struct{})
	go func() {
		w.run(ctx)
		close(done)
	}()

	<-out // first value is through, the worker is parked
	cancel()
	<-done

	// Abandonment is silent: no error envelope for the in-flight item.
	select {
	case env := <-out:
		if env.err != nil {
			t.Errorf("expected no error envelope on abandonment, got %v", env.err)
		}
	default:
	}
}

func TestWorker_NilIterator(t *testing.T) {
	process := func(_ context.Context, _ int) (Iterator[int], error) {
		return nil, nil
	}
	w, out, _, _, _ := newTestWorker(t, process, 1)

	w.run(context.Background())
	close(out)

	if env, open := <-out; open {
		t.Errorf("expected no envelopes for a nil iterator, got %+v", env)
	}
	if len(w.stats) != 1 {
		t.Errorf("nil iterator still counts as a processed item")
	}
}
