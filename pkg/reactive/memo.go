package reactive

import "time"

// Memo is a cached derived value. Like a signal, other computations can
// read and subscribe to it; like an effect, it tracks the signals its
// function reads and goes stale when they change. Unlike an effect, a
// stale memo recomputes lazily on the next read rather than eagerly.
//
// When a recompute produces a value equal to the cached one, downstream
// subscribers are not notified. That makes memos cut off propagation in
// diamond-shaped graphs.
type Memo[T any] struct {
	compCore
	base signalBase

	fn    func() T
	value T
	equal func(T, T) bool
}

// NewMemo creates a memoized computation under the current owner. The
// function runs once immediately to produce the initial value and
// establish the dependency set.
func NewMemo[T any](rt *Runtime, fn func() T) *Memo[T] {
	m := &Memo[T]{
		compCore: compCore{rt: rt, cid: rt.nextID()},
		fn:       fn,
	}
	// The memo's signal side shares the computation's identifier.
	m.base = signalBase{rt: rt, id: m.cid}

	m.base.settle = m.settle

	m.scope = newOwner(rt, rt.owner)
	m.scope.comp = m

	m.recompute()

	return m
}

// WithEquals replaces the change-detection predicate. Returns the memo
// for chaining at construction time.
func (m *Memo[T]) WithEquals(fn func(a, b T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// Get returns the memo's value, recomputing first if a dependency changed
// since the last read. Reading inside a tracking computation subscribes
// it to this memo. After disposal, Get returns the last cached value
// without recomputing and without registering a dependency.
func (m *Memo[T]) Get() T {
	if m.state == stateRunning {
		panic(&CycleError{ComputationID: m.cid})
	}
	if m.disposed {
		return m.value
	}
	m.settle()
	// Track after recomputing so the recompute's own reads do not
	// preempt the caller's edge.
	m.base.rt.track(&m.base)
	return m.value
}

// Peek returns the current cached value without tracking and without
// forcing a recompute of a stale memo.
func (m *Memo[T]) Peek() T {
	return m.value
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.cid
}

// markStale implements subscriber. The memo does not recompute here; it
// records definite staleness and forwards a maybe-stale mark downstream
// the first time it leaves Clean. Whether subscribers actually re-run is
// decided by the recompute's equality comparison, not here.
func (m *Memo[T]) markStale() {
	if m.disposed {
		return
	}
	if m.state == stateRunning {
		panic(&CycleError{ComputationID: m.cid})
	}
	if m.state == stateStale {
		return
	}
	prev := m.state
	m.state = stateStale
	if prev == stateClean {
		m.base.notifyMaybe()
	}
}

// markMaybeStale implements subscriber. Forwarded once per Clean period;
// an upgrade to definite staleness does not re-notify because downstream
// already carries the maybe mark.
func (m *Memo[T]) markMaybeStale() {
	if m.disposed {
		return
	}
	if m.state == stateRunning {
		panic(&CycleError{ComputationID: m.cid})
	}
	if m.state != stateClean {
		return
	}
	m.state = stateMaybeStale
	m.base.notifyMaybe()
}

// settle brings the memo up to date: a maybe-stale memo first settles its
// own sources, which either upgrades it to definitely stale or proves it
// untouched; a definitely stale memo recomputes. Clean and disposed memos
// are left alone.
func (m *Memo[T]) settle() {
	if m.disposed {
		return
	}
	// Settling a memo that is mid-recompute means a dependent is being
	// brought up to date inside this memo's own run: a cycle.
	if m.state == stateRunning {
		panic(&CycleError{ComputationID: m.cid})
	}
	if m.state == stateMaybeStale {
		m.settleSources()
		if m.state == stateMaybeStale {
			m.state = stateClean
		}
	}
	if m.state == stateStale {
		m.recompute()
	}
}

// recompute runs the memo function with tracking, compares the result
// against the cached value, and commits it. Subscribers are re-notified
// only when the value actually changed. A panicking function leaves the
// memo stale with its old value.
func (m *Memo[T]) recompute() {
	m.scope.reset()
	m.clearSources(m)
	m.state = stateRunning

	var start time.Time
	if m.rt.obs != nil {
		start = time.Now()
	}

	var next T
	func() {
		prevOwner := m.rt.setOwner(m.scope)
		prevListener := m.rt.setListener(m)
		defer func() {
			m.rt.setListener(prevListener)
			m.rt.setOwner(prevOwner)
			if r := recover(); r != nil {
				m.state = stateStale
				if obs := m.rt.obs; obs != nil {
					obs.ComputationPanic(m.cid)
				}
				panic(wrapRunPanic(m.cid, r))
			}
		}()
		next = m.fn()
	}()

	changed := !m.equals(m.value, next)
	m.value = next
	m.state = stateClean

	if obs := m.rt.obs; obs != nil {
		obs.MemoRecompute(m.cid, time.Since(start))
	}

	if changed {
		// Definite staleness: subscribers that were only maybe-stale
		// are upgraded and will run when the current flush (or write
		// walk) reaches them.
		m.rt.propagate(&m.base)
	}
}

func (m *Memo[T]) equals(a, b T) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			panic(&EqualityError{SignalID: m.cid, Recovered: r})
		}
	}()
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

// detach is called by the scope owner during disposal. Reads after
// disposal return the last cached value without recomputing.
func (m *Memo[T]) detach() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.clearSources(m)
	m.base.subs = nil
}

var _ computation = (*Memo[int])(nil)
