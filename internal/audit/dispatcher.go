package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	// DropIfFull makes Emit count and discard an event instead of blocking the
	// request when the buffer is full.
	DropIfFull bool
}

type queued struct {
	ctx   context.Context
	event Event
}

// Dispatcher forwards audit events to a sink from a single goroutine so access
// decisions never wait on audit I/O. A nil *Dispatcher is valid and discards
// everything.
type Dispatcher struct {
	cfg  Config
	sink Sink
	ch   chan queued
	done chan struct{}
	wg   sync.WaitGroup

	dropped   atomic.Uint64
	delivered atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher returns nil when cfg.Enabled is false.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan queued, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case q := <-d.ch:
			d.deliver(q)
		case <-d.done:
			for {
				select {
				case q := <-d.ch:
					d.deliver(q)
				default:
					return
				}
			}
		}
	}
}

// deliver hands one event to the sink. A panicking sink loses that event only.
func (d *Dispatcher) deliver(q queued) {
	defer func() {
		if recover() != nil {
			d.dropped.Add(1)
		}
	}()
	d.sink.Emit(q.ctx, q.event)
	d.delivered.Add(1)
}

// Emit queues event. The request context's values travel with the event but its
// cancellation does not, so a finished request does not lose its audit record.
// Events emitted after Close are counted as dropped.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil {
		return
	}
	if d.closed.Load() {
		d.dropped.Add(1)
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	q := queued{ctx: context.WithoutCancel(ctx), event: event}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- q:
		case <-d.done:
			d.dropped.Add(1)
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- q:
	case <-ctx.Done():
		d.dropped.Add(1)
	case <-d.done:
		d.dropped.Add(1)
	}
}

// Close stops accepting events and waits until the queue is drained.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}

// Delivered counts events the sink accepted.
func (d *Dispatcher) Delivered() uint64 {
	if d == nil {
		return 0
	}
	return d.delivered.Load()
}
