package reactive

// compState is the lifecycle position of a computation.
//
// Clean -> (dependency write) -> Stale -> (run) -> Clean, with Running as
// a transient re-entrancy guard while the body executes. MaybeStale is
// the in-between mark a memo forwards downstream before it has recomputed:
// the subscriber might be affected, but only the memo's equality check can
// tell. A maybe-stale computation validates its sources before running and
// returns to Clean when nothing actually changed.
type compState uint8

const (
	stateClean compState = iota
	stateMaybeStale
	stateStale
	stateRunning
)

// subscriber is anything a cell notifies when its value changes.
type subscriber interface {
	// markStale tells the subscriber a dependency definitely changed:
	// a signal stored a new value, or a memo recomputed to a different
	// one. Memos go stale and forward a maybe-stale mark; effects queue.
	markStale()

	// markMaybeStale tells the subscriber a transitive dependency
	// changed, but the memo in between has not recomputed yet, so the
	// subscriber's own inputs may turn out untouched.
	markMaybeStale()

	// id is a unique identifier, used to deduplicate edges.
	id() uint64
}

// computation is a subscriber that also tracks its own reads: an Effect
// or a Memo.
type computation interface {
	subscriber

	// addSource records a cell this computation read during its current
	// run.
	addSource(*signalBase)
}

// Cleanup is a function returned by an effect body to release resources.
// It runs before the effect re-runs and when the effect is disposed.
type Cleanup func()

// compCore carries the state shared by Effect and Memo: identity, the
// dependency set of the current run, and the owner scope the computation
// runs under.
type compCore struct {
	rt  *Runtime
	cid uint64

	state compState

	// sources are the cells read during the most recent run. Rebuilt from
	// scratch on every run: old edges are removed before the body
	// executes, so an untaken branch leaves no stale edges.
	sources []*signalBase

	// scope is the owner this computation runs under. Cleanups and nested
	// computations registered during a run attach here and are torn down
	// before the next run and on disposal.
	scope *Owner

	disposed bool
}

func (c *compCore) id() uint64 {
	return c.cid
}

// addSource records a dependency edge, deduplicating by identity.
func (c *compCore) addSource(b *signalBase) {
	for _, s := range c.sources {
		if s == b {
			return
		}
	}
	c.sources = append(c.sources, b)
}

// clearSources removes this computation from every dependency's
// subscriber set and empties the dependency set.
func (c *compCore) clearSources(self subscriber) {
	for _, src := range c.sources {
		src.unsubscribe(self)
	}
	c.sources = c.sources[:0]
}

// settleSources brings every memo dependency up to date while this
// computation is maybe-stale. A source that recomputes to a changed value
// notifies its subscribers, upgrading this computation to Stale; the walk
// stops as soon as that happens. Plain signal sources have nothing to
// settle: their writes mark definitely-stale in the first place.
func (c *compCore) settleSources() {
	for _, src := range c.sources {
		if src.settle != nil {
			src.settle()
		}
		if c.state == stateStale {
			return
		}
	}
}
