package reactive

import "time"

// Runtime holds all mutable engine state for one reactive graph: the
// current owner, the currently tracking computation, the batch depth and
// the pending effect queue. Cells created from different runtimes never
// interact, so independent graphs can coexist in one process.
//
// A Runtime is not safe for concurrent use; confine it, and every cell
// created from it, to a single goroutine.
type Runtime struct {
	// owner is the Owner that newly created computations attach to.
	owner *Owner

	// listener is the computation currently tracking reads, or nil when
	// reads should not register dependencies.
	listener computation

	// batchDepth counts nested Batch calls plus the implicit unit batch
	// a top-level write opens. Flushes happen only at depth zero.
	batchDepth int

	// pending are the effects queued during the current batch, in
	// insertion order. Each effect appears at most once.
	pending []*Effect

	// obs receives lifecycle events; nil disables instrumentation.
	obs Observer

	// idc is the source of unique IDs for cells, computations and owners.
	idc uint64
}

// RuntimeOption configures a Runtime at construction.
type RuntimeOption func(*Runtime)

// WithObserver installs an instrumentation observer on the runtime.
func WithObserver(o Observer) RuntimeOption {
	return func(rt *Runtime) {
		rt.obs = o
	}
}

// NewRuntime creates an empty reactive graph.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// nextID returns the next unique ID. IDs are monotonically increasing
// within a runtime and never reused.
func (rt *Runtime) nextID() uint64 {
	rt.idc++
	return rt.idc
}

// track registers the bidirectional dependency edge between the cell being
// read and the computation currently tracking, if any. Both sides
// deduplicate, so a cell read N times in one run contributes one edge.
func (rt *Runtime) track(b *signalBase) {
	if rt.listener == nil {
		return
	}
	b.subscribe(rt.listener)
	rt.listener.addSource(b)
}

// setListener swaps the tracking computation and returns the previous one
// so it can be restored.
func (rt *Runtime) setListener(c computation) computation {
	old := rt.listener
	rt.listener = c
	return old
}

// setOwner swaps the current owner and returns the previous one.
func (rt *Runtime) setOwner(o *Owner) *Owner {
	old := rt.owner
	rt.owner = o
	return old
}

// enqueue adds a stale effect to the pending queue. The queued flag keeps
// an effect from appearing more than once per flush however many of its
// dependencies changed.
func (rt *Runtime) enqueue(e *Effect) {
	if e.queued {
		return
	}
	e.queued = true
	rt.pending = append(rt.pending, e)
}

// propagate walks b's subscribers as an implicit unit batch: the whole
// walk completes, marking memos and queueing effects, before any effect
// runs. Inside an explicit Batch (or an ongoing flush) the final flush is
// deferred to the outermost level; a panicking walk skips it entirely.
func (rt *Runtime) propagate(b *signalBase) {
	rt.batchDepth++
	completed := false
	defer func() {
		rt.batchDepth--
		if completed && rt.batchDepth == 0 {
			rt.flush()
		}
	}()
	b.notify()
	completed = true
}

// flush drains the pending effect queue in insertion order. Every drained
// effect is unqueued up front: if one body panics, the rest stay stale
// and re-run on the next write to any of their dependencies instead of
// this flush.
//
// A maybe-stale effect settles its memo sources first and is skipped when
// none of them actually changed value.
//
// Flush order is insertion order, not a topological sort.
func (rt *Runtime) flush() {
	if len(rt.pending) == 0 {
		return
	}
	queued := len(rt.pending)
	var start time.Time
	if rt.obs != nil {
		start = time.Now()
	}
	// Writes made while draining enqueue for a later pass of this loop,
	// so each effect runs at most once per pass.
	rt.batchDepth++
	defer func() { rt.batchDepth-- }()
	for len(rt.pending) > 0 {
		drained := rt.pending
		rt.pending = nil
		for _, e := range drained {
			e.queued = false
		}
		for _, e := range drained {
			if e.disposed {
				continue
			}
			if e.state == stateMaybeStale {
				e.validate()
			}
			if e.state != stateStale {
				continue
			}
			e.run()
		}
	}
	if rt.obs != nil {
		rt.obs.BatchFlush(queued, time.Since(start))
	}
}
