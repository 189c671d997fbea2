package reactive

// Batch runs fn with effect execution deferred. Signal writes inside fn
// mark their subscribers stale and queue effects instead of running them;
// when the outermost batch returns, the queue flushes once in first-queued
// order with each effect running at most one time.
//
// Batches nest: only the outermost one flushes. If fn panics, the queue
// is left pending rather than flushed mid-unwind; the panic propagates.
//
// Example:
//
//	Batch(rt, func() {
//	    first.Set("Jane")
//	    last.Set("Doe")
//	}) // dependent effects run once here
func Batch(rt *Runtime, fn func()) {
	rt.batchDepth++
	completed := false
	defer func() {
		rt.batchDepth--
		if completed && rt.batchDepth == 0 {
			rt.flush()
		}
	}()
	fn()
	completed = true
}

// Untracked runs fn with dependency tracking suspended: signal and memo
// reads inside fn do not subscribe the enclosing computation. Writes
// inside fn behave normally.
func Untracked(rt *Runtime, fn func()) {
	prev := rt.setListener(nil)
	defer rt.setListener(prev)
	fn()
}

// UntrackedGet reads a value with tracking suspended.
//
//	latest := UntrackedGet(rt, other.Get)
func UntrackedGet[T any](rt *Runtime, fn func() T) T {
	prev := rt.setListener(nil)
	defer rt.setListener(prev)
	return fn()
}
