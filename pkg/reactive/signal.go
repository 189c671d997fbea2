package reactive

import "reflect"

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] and Memo[T] to share subscription logic.
type signalBase struct {
	rt *Runtime
	id uint64

	// subs are the computations subscribed to this cell. A computation is
	// in this set iff this cell is in its current dependency set.
	subs []subscriber

	// settle, set only by memos, recomputes the owning memo if it is
	// stale so a maybe-stale subscriber can learn whether this source
	// actually changed. nil for plain signals, whose writes are definite.
	settle func()
}

// subscribe adds a subscriber, deduplicating by ID.
func (s *signalBase) subscribe(sub subscriber) {
	sid := sub.id()
	for _, existing := range s.subs {
		if existing.id() == sid {
			return
		}
	}
	s.subs = append(s.subs, sub)
}

// unsubscribe removes a subscriber from this cell.
func (s *signalBase) unsubscribe(sub subscriber) {
	sid := sub.id()
	for i, existing := range s.subs {
		if existing.id() == sid {
			// Remove by swapping with last element (order doesn't matter)
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notify marks every subscriber definitely stale: memos go stale and
// forward maybe-stale marks, effects queue. No effect runs during the
// walk; the runtime flushes once the walk (and any enclosing batch) has
// completed, so every subscriber sees the write before the first re-run.
// The walk uses a snapshot because marking subscribers mutates the set.
func (s *signalBase) notify() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.markStale()
	}
}

// notifyMaybe forwards a maybe-stale mark downstream.
func (s *signalBase) notifyMaybe() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.markMaybeStale()
	}
}

// Signal is a reactive value container. Reading a Signal while a
// computation is tracking (an effect body or memo computation) registers
// the dependency edge automatically; writing a changed value notifies the
// subscribers.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// equal decides whether a write changed the value. If nil, uses
	// default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal on rt with the given initial value.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{rt: rt, id: rt.nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current computation,
// if one is tracking. Under Untracked, it is equivalent to Peek.
func (s *Signal[T]) Get() T {
	s.base.rt.track(&s.base)
	return s.value
}

// Peek returns the current value without registering a dependency.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores a new value and notifies subscribers if it differs from the
// current one per the equality predicate. An equal write is a complete
// no-op: nothing is stored and nobody is notified.
//
// Outside a Batch, a write is its own unit batch: the subscriber walk
// completes, then the affected effects run once each before Set returns.
//
// If a subscribing effect's body panics, the panic propagates from Set
// (wrapped in *ComputationError); see the package documentation.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	if obs := s.base.rt.obs; obs != nil {
		obs.SignalWrite(s.base.id)
	}
	s.base.rt.propagate(&s.base)
}

// Update computes the new value from the current one and calls Set.
// fn should not itself perform tracked reads.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals configures the signal with a custom equality predicate and
// returns it. Useful for types where reflect.DeepEqual is too expensive
// or has the wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// equals runs the configured predicate; a panicking predicate aborts the
// write and surfaces as *EqualityError with the old value retained.
func (s *Signal[T]) equals(a, b T) (eq bool) {
	if s.equal == nil {
		return defaultEquals(a, b)
	}
	defer func() {
		if r := recover(); r != nil {
			panic(&EqualityError{SignalID: s.base.id, Recovered: r})
		}
	}()
	return s.equal(a, b)
}

// defaultEquals provides type-appropriate equality checking: == for the
// common comparable kinds, reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Slices, maps, structs, pointers.
		return reflect.DeepEqual(a, b)
	}
}
