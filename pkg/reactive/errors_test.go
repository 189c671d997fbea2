package reactive

import (
	"errors"
	"testing"
)

func TestCycleErrorSelfWrite(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		CreateEffect(rt, func() Cleanup {
			// Reads s, then writes it: the write notifies the running
			// effect itself.
			s.Set(s.Get() + 1)
			return nil
		})
	}()

	var cerr *CycleError
	err, ok := recovered.(error)
	if !ok || !errors.As(err, &cerr) {
		t.Fatalf("expected *CycleError, got %v", recovered)
	}
}

func TestCycleErrorMutualMemos(t *testing.T) {
	rt := NewRuntime()

	var a, b *Memo[int]
	trigger := NewSignal(rt, false)
	a = NewMemo(rt, func() int {
		if trigger.Get() {
			return b.Get()
		}
		return 0
	})
	b = NewMemo(rt, func() int { return a.Get() })

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		trigger.Set(true)
		_ = a.Get()
	}()

	var cerr *CycleError
	err, ok := recovered.(error)
	if !ok || !errors.As(err, &cerr) {
		t.Fatalf("expected *CycleError, got %v", recovered)
	}
}

func TestComputationErrorWrapsPanic(t *testing.T) {
	rt := NewRuntime()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		CreateEffect(rt, func() Cleanup {
			panic("user failure")
		})
	}()

	cerr, ok := recovered.(*ComputationError)
	if !ok {
		t.Fatalf("expected *ComputationError, got %v", recovered)
	}
	if cerr.Recovered != "user failure" {
		t.Errorf("expected original panic value preserved, got %v", cerr.Recovered)
	}
}

func TestComputationErrorNotDoubleWrapped(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	// Inner effect panic propagates through the outer effect unwrapped.
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		CreateEffect(rt, func() Cleanup {
			_ = s.Get()
			CreateEffect(rt, func() Cleanup {
				panic("inner")
			})
			return nil
		})
	}()

	cerr, ok := recovered.(*ComputationError)
	if !ok {
		t.Fatalf("expected *ComputationError, got %v", recovered)
	}
	if inner, isWrapped := cerr.Recovered.(*ComputationError); isWrapped {
		t.Errorf("expected single wrap, found nested %v", inner)
	}
	if cerr.Recovered != "inner" {
		t.Errorf("expected inner panic value, got %v", cerr.Recovered)
	}
}

func TestEffectPanicLeavesEffectRunnable(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	runs := 0
	func() {
		defer func() { _ = recover() }()
		CreateEffect(rt, func() Cleanup {
			runs++
			if s.Get() == 0 {
				panic("transient")
			}
			return nil
		})
	}()

	if runs != 1 {
		t.Fatalf("expected 1 failed run, got %d", runs)
	}

	// The dependency edge to s was registered before the panic, so a
	// write re-runs the effect and it succeeds this time.
	func() {
		defer func() { _ = recover() }()
		s.Set(1)
	}()
	if runs != 2 {
		t.Errorf("expected failed effect to re-run on next write, got %d", runs)
	}
}

func TestMemoPanicKeepsOldValue(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 1)

	m := NewMemo(rt, func() int {
		v := s.Get()
		if v < 0 {
			panic("negative")
		}
		return v * 10
	})

	if m.Get() != 10 {
		t.Fatalf("expected 10, got %d", m.Get())
	}

	s.Set(-1)
	func() {
		defer func() { _ = recover() }()
		_ = m.Get()
	}()

	// The failed recompute must not commit a value.
	if m.Peek() != 10 {
		t.Errorf("expected old value 10 retained, got %d", m.Peek())
	}

	// Recovery: a good write recomputes normally.
	s.Set(3)
	if m.Get() != 30 {
		t.Errorf("expected 30 after recovery, got %d", m.Get())
	}
}

func TestEqualityErrorFromPanickingPredicate(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 1).WithEquals(func(a, b int) bool {
		panic("bad predicate")
	})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		s.Set(2)
	}()

	eerr, ok := recovered.(*EqualityError)
	if !ok {
		t.Fatalf("expected *EqualityError, got %v", recovered)
	}
	if eerr.Recovered != "bad predicate" {
		t.Errorf("expected predicate panic preserved, got %v", eerr.Recovered)
	}

	// The write was rejected.
	if s.Peek() != 1 {
		t.Errorf("expected value unchanged after predicate panic, got %d", s.Peek())
	}
}

func TestErrorMessages(t *testing.T) {
	cerr := &CycleError{ComputationID: 7}
	if cerr.Error() == "" {
		t.Errorf("expected non-empty cycle error message")
	}

	inner := errors.New("inner")
	comp := &ComputationError{ComputationID: 3, Recovered: inner}
	if comp.Error() == "" {
		t.Errorf("expected non-empty computation error message")
	}
	if !errors.Is(comp, inner) {
		t.Errorf("expected Unwrap to expose wrapped error")
	}
}
