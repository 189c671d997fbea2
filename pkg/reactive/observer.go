package reactive

import "time"

// Observer receives engine lifecycle events for instrumentation.
// Implementations are installed with WithObserver and called synchronously
// on the runtime's goroutine; they must not call back into the runtime.
//
// See the instrument package for Prometheus and OpenTelemetry adapters.
type Observer interface {
	// SignalWrite fires after a signal stores a changed value, before its
	// subscribers are notified. Equal writes never fire it.
	SignalWrite(signalID uint64)

	// EffectRun fires after an effect body completes. name is the label
	// set with EffectName, empty otherwise.
	EffectRun(effectID uint64, name string, d time.Duration)

	// MemoRecompute fires after a memo recomputes its cached value.
	MemoRecompute(memoID uint64, d time.Duration)

	// BatchFlush fires after the pending effect set of an outermost batch
	// is drained, whether the batch was an explicit Batch call or the
	// implicit one a bare write opens. queued is the number of effects
	// that were pending when the flush began.
	BatchFlush(queued int, d time.Duration)

	// OwnerDisposed fires after an owner finished disposing.
	OwnerDisposed(ownerID uint64)

	// ComputationPanic fires when an effect body or memo computation
	// panics, before the panic propagates to the caller.
	ComputationPanic(computationID uint64)
}
