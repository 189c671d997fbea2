package reactive

import "time"

// Effect is an eager computation run for its side effects. It runs once
// at creation and again whenever a signal or memo it read during its last
// run changes. The body may return a Cleanup, which runs before the next
// re-run and when the effect is disposed.
type Effect struct {
	compCore

	// fn is the effect body.
	fn func() Cleanup

	// queued marks the effect as already present in the runtime's pending
	// queue, so it appears at most once per flush.
	queued bool

	// name is an optional label for instrumentation.
	name string
}

// EffectOption configures an Effect at creation.
type EffectOption interface {
	isEffectOption()
	applyEffect(e *Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) isEffectOption()       {}
func (f effectOptionFunc) applyEffect(e *Effect) { f(e) }

// EffectName labels the effect for observers (metric labels, span names).
// Keep the set of names small; instrumentation backends turn them into
// label values.
func EffectName(name string) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.name = name
	})
}

// CreateEffect creates an effect under the current owner and runs it
// immediately with tracking enabled. The cells read during the run become
// its dependency set, rebuilt from scratch on every re-run.
//
// The returned effect's Dispose detaches it early; otherwise it is
// disposed with its owner.
//
// Example:
//
//	CreateEffect(rt, func() Cleanup {
//	    fmt.Println("count is:", count.Get())
//	    return func() { fmt.Println("cleanup") }
//	})
func CreateEffect(rt *Runtime, fn func() Cleanup, opts ...EffectOption) *Effect {
	e := &Effect{
		compCore: compCore{rt: rt, cid: rt.nextID()},
		fn:       fn,
	}
	for _, opt := range opts {
		opt.applyEffect(e)
	}

	e.scope = newOwner(rt, rt.owner)
	e.scope.comp = e

	e.run()

	return e
}

// markStale implements subscriber. The effect never runs during the
// notification walk; it queues and runs when the write's unit batch (or
// the enclosing explicit Batch) flushes. A notification arriving while
// the effect is running is the self-reentrancy loop and fails fast.
func (e *Effect) markStale() {
	if e.disposed {
		return
	}
	if e.state == stateRunning {
		panic(&CycleError{ComputationID: e.cid})
	}
	e.state = stateStale
	e.rt.enqueue(e)
}

// markMaybeStale implements subscriber. The effect queues for validation;
// a definite mark arriving later upgrades it in place.
func (e *Effect) markMaybeStale() {
	if e.disposed {
		return
	}
	if e.state == stateRunning {
		panic(&CycleError{ComputationID: e.cid})
	}
	if e.state == stateClean {
		e.state = stateMaybeStale
	}
	e.rt.enqueue(e)
}

// validate resolves a maybe-stale effect at flush time: memo sources are
// settled, and any of them recomputing to a changed value marks this
// effect definitely stale. If none did, the effect returns to Clean and
// the flush skips it.
func (e *Effect) validate() {
	e.settleSources()
	if e.state == stateMaybeStale {
		e.state = stateClean
	}
}

// run executes the effect body: scope teardown (cleanups in reverse,
// nested scopes disposed), old dependency edges removed, then the body
// with this effect tracking. A panicking body leaves the effect stale,
// keeps the edges registered so far, and propagates as *ComputationError.
func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.queued = false

	e.scope.reset()
	e.clearSources(e)
	e.state = stateRunning

	var start time.Time
	if e.rt.obs != nil {
		start = time.Now()
	}

	prevOwner := e.rt.setOwner(e.scope)
	prevListener := e.rt.setListener(e)
	defer func() {
		e.rt.setListener(prevListener)
		e.rt.setOwner(prevOwner)
		if r := recover(); r != nil {
			e.state = stateStale
			if obs := e.rt.obs; obs != nil {
				obs.ComputationPanic(e.cid)
			}
			panic(wrapRunPanic(e.cid, r))
		}
	}()

	cleanup := e.fn()
	if cleanup != nil {
		e.scope.OnCleanup(cleanup)
	}
	e.state = stateClean

	if obs := e.rt.obs; obs != nil {
		obs.EffectRun(e.cid, e.name, time.Since(start))
	}
}

// Dispose detaches the effect: its cleanups run, it is removed from every
// cell's subscriber set, and a pending flush will skip it. Idempotent.
func (e *Effect) Dispose() {
	e.scope.Dispose()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.cid
}

// detach is called by the scope owner during disposal, before cleanups
// run, so a cleanup writing signals cannot re-trigger this effect.
func (e *Effect) detach() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.clearSources(e)
}

// OnMount runs fn once, untracked, inside a fresh effect. Equivalent to
// an effect with no reactive dependencies.
func OnMount(rt *Runtime, fn func()) {
	CreateEffect(rt, func() Cleanup {
		Untracked(rt, fn)
		return nil
	})
}

// OnUpdate creates an effect that skips its callback on the first run.
// deps is always called, so it establishes the dependency set; callback
// fires only on subsequent runs.
//
// Example:
//
//	OnUpdate(rt,
//	    func() { _ = count.Get() },         // deps: reads to track
//	    func() { fmt.Println("updated") },  // only on changes
//	)
func OnUpdate(rt *Runtime, deps func(), callback func()) {
	first := true
	CreateEffect(rt, func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}

var _ computation = (*Effect)(nil)
