// Package reactive provides a fine-grained dependency-tracking engine:
// signals notify dependent computations when they change, without those
// computations declaring their dependencies up front.
//
// All state lives on an explicit Runtime instance, so independent graphs
// can coexist (one per test, one per session, ...). A Runtime and every
// cell created from it are confined to a single goroutine; the engine is
// synchronous and runs every operation to completion on the calling
// goroutine.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	rt := reactive.NewRuntime()
//	count := reactive.NewSignal(rt, 0)
//	value := count.Get()  // read (subscribes the current computation)
//	count.Set(5)          // write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a cached derived computation, itself trackable:
//
//	doubled := reactive.NewMemo(rt, func() int { return count.Get() * 2 })
//	value := doubled.Get()  // recomputes only if a dependency changed
//
// Effect runs side effects eagerly when dependencies change:
//
//	reactive.CreateEffect(rt, func() reactive.Cleanup {
//	    fmt.Println("count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// # Ownership
//
// Owners form a disposal tree. CreateRoot opens a top-level scope;
// computations created while an owner is current belong to it, and one
// Dispose tears the whole subtree down, cleanups included:
//
//	reactive.CreateRoot(rt, func(dispose func()) struct{} {
//	    reactive.CreateEffect(rt, render)
//	    defer dispose()
//	    return struct{}{}
//	})
//
// # Batching
//
// Batch coalesces effect flushing; nested batches flush once, when the
// outermost one returns:
//
//	reactive.Batch(rt, func() {
//	    first.Set("John")
//	    last.Set("Doe")
//	})  // dependents run once, seeing both writes
//
// # Errors
//
// User functions fail by panicking. The engine restores its bookkeeping,
// leaves the failed computation stale, and re-panics with a typed error
// value (*ComputationError, *EqualityError, *CycleError) that the caller
// of Set, Batch or Get may recover and inspect with errors.As. Nothing is
// retried automatically; the next write or read runs the computation
// again.
package reactive
