package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	rt := NewRuntime()
	runs := 0
	CreateEffect(rt, func() Cleanup {
		runs++
		return nil
	})
	if runs != 1 {
		t.Errorf("expected effect to run once at creation, got %d", runs)
	}
}

func TestEffectRerunsOnWrite(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	var seen []int
	CreateEffect(rt, func() Cleanup {
		seen = append(seen, s.Get())
		return nil
	})

	s.Set(1)
	s.Set(2)

	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", seen)
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	rt := NewRuntime()
	cond := NewSignal(rt, true)
	a := NewSignal(rt, "a")
	b := NewSignal(rt, "b")

	runs := 0
	CreateEffect(rt, func() Cleanup {
		runs++
		if cond.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
		return nil
	})

	if runs != 1 {
		t.Fatalf("expected 1 initial run, got %d", runs)
	}

	// While cond is true, b is not a dependency.
	b.Set("b2")
	if runs != 1 {
		t.Errorf("expected untracked write to be ignored, got %d runs", runs)
	}

	// Flip the branch: now a is dropped and b is tracked.
	cond.Set(false)
	if runs != 2 {
		t.Fatalf("expected 2 runs after branch flip, got %d", runs)
	}

	a.Set("a2")
	if runs != 2 {
		t.Errorf("expected write to dropped dependency to be ignored, got %d runs", runs)
	}

	b.Set("b3")
	if runs != 3 {
		t.Errorf("expected write to new dependency to re-run, got %d runs", runs)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	var order []string
	CreateEffect(rt, func() Cleanup {
		v := s.Get()
		order = append(order, "run")
		return func() {
			order = append(order, "cleanup")
			_ = v
		}
	})

	s.Set(1)

	want := []string{"run", "cleanup", "run"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEffectOnCleanupReverseOrder(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	var order []string
	CreateEffect(rt, func() Cleanup {
		_ = s.Get()
		OnCleanup(rt, func() { order = append(order, "first") })
		OnCleanup(rt, func() { order = append(order, "second") })
		return nil
	})

	s.Set(1)

	// Registered first, second; should run second, first.
	if len(order) < 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("expected reverse cleanup order [second first], got %v", order)
	}
}

func TestEffectDispose(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	runs := 0
	cleanups := 0
	e := CreateEffect(rt, func() Cleanup {
		_ = s.Get()
		runs++
		return func() { cleanups++ }
	})

	e.Dispose()
	if cleanups != 1 {
		t.Errorf("expected cleanup on dispose, got %d", cleanups)
	}

	s.Set(1)
	if runs != 1 {
		t.Errorf("expected no runs after dispose, got %d", runs)
	}

	// Dispose is idempotent.
	e.Dispose()
	if cleanups != 1 {
		t.Errorf("expected single cleanup after double dispose, got %d", cleanups)
	}
}

func TestEffectNestedDisposedOnRerun(t *testing.T) {
	rt := NewRuntime()
	outer := NewSignal(rt, 0)
	inner := NewSignal(rt, 0)

	innerRuns := 0
	CreateEffect(rt, func() Cleanup {
		_ = outer.Get()
		CreateEffect(rt, func() Cleanup {
			_ = inner.Get()
			innerRuns++
			return nil
		})
		return nil
	})

	if innerRuns != 1 {
		t.Fatalf("expected 1 inner run, got %d", innerRuns)
	}

	// Outer re-run disposes the old inner effect and creates a new one.
	outer.Set(1)
	if innerRuns != 2 {
		t.Fatalf("expected 2 inner runs, got %d", innerRuns)
	}

	// Only the current inner effect responds.
	inner.Set(1)
	if innerRuns != 3 {
		t.Errorf("expected 3 inner runs, got %d", innerRuns)
	}
}

func TestEffectUntrackedRead(t *testing.T) {
	rt := NewRuntime()
	tracked := NewSignal(rt, 0)
	peeked := NewSignal(rt, 0)

	runs := 0
	CreateEffect(rt, func() Cleanup {
		_ = tracked.Get()
		Untracked(rt, func() {
			_ = peeked.Get()
		})
		runs++
		return nil
	})

	peeked.Set(1)
	if runs != 1 {
		t.Errorf("expected untracked read not to subscribe, got %d runs", runs)
	}

	tracked.Set(1)
	if runs != 2 {
		t.Errorf("expected tracked read to subscribe, got %d runs", runs)
	}
}

func TestUntrackedGet(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 7)

	runs := 0
	CreateEffect(rt, func() Cleanup {
		runs++
		if got := UntrackedGet(rt, s.Get); got != 7 && got != 8 {
			t.Errorf("unexpected value %d", got)
		}
		return nil
	})

	s.Set(8)
	if runs != 1 {
		t.Errorf("expected no re-run from untracked read, got %d runs", runs)
	}
}

func TestOnMountRunsOnce(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	runs := 0
	OnMount(rt, func() {
		_ = s.Get()
		runs++
	})

	s.Set(1)
	if runs != 1 {
		t.Errorf("expected OnMount to run exactly once, got %d", runs)
	}
}

func TestOnUpdateSkipsFirstRun(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)

	calls := 0
	OnUpdate(rt,
		func() { _ = s.Get() },
		func() { calls++ },
	)

	if calls != 0 {
		t.Fatalf("expected callback skipped on first run, got %d", calls)
	}

	s.Set(1)
	if calls != 1 {
		t.Errorf("expected callback on update, got %d", calls)
	}
}

func TestEffectWriteInsideEffect(t *testing.T) {
	rt := NewRuntime()
	source := NewSignal(rt, 1)
	derived := NewSignal(rt, 0)

	CreateEffect(rt, func() Cleanup {
		derived.Set(source.Get() * 10)
		return nil
	})

	if derived.Get() != 10 {
		t.Fatalf("expected 10, got %d", derived.Get())
	}

	source.Set(3)
	if derived.Get() != 30 {
		t.Errorf("expected 30, got %d", derived.Get())
	}
}
