package para

import (
	"context"

	"github.com/parakit/parakit/logger"
)

// relayLevel identifies the severity of a relayed log message.
type relayLevel int8

const (
	relayDebug relayLevel = iota
	relayInfo
	relayWarn
	relayError
)

// logMessage is one entry on the relay's inbound queue.
type logMessage struct {
	level  relayLevel
	text   string
	fields []map[string]interface{}
}

// relay serializes log messages produced concurrently by all workers
// into one ordered stream on a single logger. Enqueueing never blocks
// the caller: when the inbox is full the message is dropped, which
// keeps logging from ever gating item throughput.
type relay struct {
	ch   chan logMessage
	log  *logger.Logger
	done chan struct{}
}

// newRelay starts the relay goroutine. It runs until ctx is canceled,
// then flushes whatever is already queued and exits; messages enqueued
// after that point are lost, which is acceptable for a terminating run.
func newRelay(ctx context.Context, log *logger.Logger, capacity int) *relay {
	r := &relay{
		ch:   make(chan logMessage, capacity),
		log:  log,
		done: make(chan struct{}),
	}
	go r.loop(ctx)
	return r
}

func (r *relay) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case m := <-r.ch:
			r.emit(m)
		case <-ctx.Done():
			for {
				select {
				case m := <-r.ch:
					r.emit(m)
				default:
					return
				}
			}
		}
	}
}

func (r *relay) emit(m logMessage) {
	switch m.level {
	case relayDebug:
		r.log.Debug(m.text, m.fields...)
	case relayInfo:
		r.log.Info(m.text, m.fields...)
	case relayWarn:
		r.log.Warn(m.text, m.fields...)
	case relayError:
		r.log.Error(m.text, m.fields...)
	}
}

func (r *relay) send(level relayLevel, text string, fields []map[string]interface{}) {
	select {
	case r.ch <- logMessage{level: level, text: text, fields: fields}:
	default:
	}
}

// Debug enqueues a debug message without blocking.
func (r *relay) Debug(text string, fields ...map[string]interface{}) {
	r.send(relayDebug, text, fields)
}

// Info enqueues an info message without blocking.
func (r *relay) Info(text string, fields ...map[string]interface{}) {
	r.send(relayInfo, text, fields)
}

// Warn enqueues a warning message without blocking.
func (r *relay) Warn(text string, fields ...map[string]interface{}) {
	r.send(relayWarn, text, fields)
}

// Error enqueues an error message without blocking.
func (r *relay) Error(text string, fields ...map[string]interface{}) {
	r.send(relayError, text, fields)
}
