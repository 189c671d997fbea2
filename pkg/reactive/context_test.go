package reactive

import "testing"

func TestContextDefaultOutsideProvider(t *testing.T) {
	rt := NewRuntime()
	theme := CreateContext("light")

	if got := theme.UseContext(rt); got != "light" {
		t.Errorf("expected default %q, got %q", "light", got)
	}
}

func TestContextProvide(t *testing.T) {
	rt := NewRuntime()
	theme := CreateContext("light")

	CreateRoot(rt, func(dispose func()) any {
		defer dispose()
		theme.Provide(rt, "dark", func() {
			if got := theme.UseContext(rt); got != "dark" {
				t.Errorf("expected %q, got %q", "dark", got)
			}
		})
		// Outside the provider the default is back.
		if got := theme.UseContext(rt); got != "light" {
			t.Errorf("expected %q after provider, got %q", "light", got)
		}
		return nil
	})
}

func TestContextNestedProvidersShadow(t *testing.T) {
	rt := NewRuntime()
	level := CreateContext(0)

	CreateRoot(rt, func(dispose func()) any {
		defer dispose()
		level.Provide(rt, 1, func() {
			level.Provide(rt, 2, func() {
				if got := level.UseContext(rt); got != 2 {
					t.Errorf("expected inner value 2, got %d", got)
				}
			})
			if got := level.UseContext(rt); got != 1 {
				t.Errorf("expected outer value 1, got %d", got)
			}
		})
		return nil
	})
}

func TestContextVisibleToNestedComputations(t *testing.T) {
	rt := NewRuntime()
	user := CreateContext("anonymous")

	var seen string
	CreateRoot(rt, func(dispose func()) any {
		defer dispose()
		user.Provide(rt, "alice", func() {
			CreateEffect(rt, func() Cleanup {
				seen = user.UseContext(rt)
				return nil
			})
		})
		return nil
	})

	if seen != "alice" {
		t.Errorf("expected effect to see provided value, got %q", seen)
	}
}

func TestContextDistinctContextsIndependent(t *testing.T) {
	rt := NewRuntime()
	a := CreateContext("a-default")
	b := CreateContext("b-default")

	CreateRoot(rt, func(dispose func()) any {
		defer dispose()
		a.Provide(rt, "a-value", func() {
			if got := b.UseContext(rt); got != "b-default" {
				t.Errorf("expected b untouched by a's provider, got %q", got)
			}
		})
		return nil
	})
}

func TestContextProvideWithoutOwnerPanics(t *testing.T) {
	rt := NewRuntime()
	c := CreateContext(0)

	defer func() {
		if r := recover(); r != ErrNoOwner {
			t.Errorf("expected ErrNoOwner, got %v", r)
		}
	}()
	c.Provide(rt, 1, func() {})
}
