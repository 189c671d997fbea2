package reactive

// Context carries a typed value down the owner tree without threading it
// through every constructor. Provide binds a value in a new child scope;
// UseContext reads the nearest binding above the current owner, falling
// back to the context's default.
//
// A Context is identified by its own pointer, so contexts work across
// runtimes and need no registration.
type Context[T any] struct {
	def T
}

// CreateContext defines a new context with a default value. Contexts are
// typically package-level variables shared between providers and
// consumers.
func CreateContext[T any](def T) *Context[T] {
	return &Context[T]{def: def}
}

// Provide binds value for the duration of fn. The binding lives in a
// child owner of the current one, so computations created inside fn see
// it and computations outside do not. Panics with ErrNoOwner when no
// owner scope is active.
func (c *Context[T]) Provide(rt *Runtime, value T, fn func()) {
	if rt.owner == nil {
		panic(ErrNoOwner)
	}
	scope := newOwner(rt, rt.owner)
	scope.setValue(c, value)
	prev := rt.setOwner(scope)
	defer rt.setOwner(prev)
	fn()
}

// UseContext returns the nearest provided value, walking up from the
// current owner. Outside any provider, or outside any owner at all, it
// returns the context's default.
func (c *Context[T]) UseContext(rt *Runtime) T {
	if rt.owner == nil {
		return c.def
	}
	if v, ok := rt.owner.lookup(c); ok {
		return v.(T)
	}
	return c.def
}
