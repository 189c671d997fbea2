package reactive

// detachable is the hook an owner uses to sever its computation from the
// dependency graph before cleanups run.
type detachable interface {
	detach()
}

// Owner is a disposal scope. Computations created while an owner is
// current register with it and are torn down when it is disposed. Owners
// form a tree: disposing a parent disposes its children first, depth
// first, in reverse creation order.
//
// Effects and memos each carry their own owner, which is also where the
// body's cleanups and nested computations live; that scope is emptied
// before every re-run.
type Owner struct {
	rt  *Runtime
	oid uint64

	parent   *Owner
	children []*Owner
	cleanups []Cleanup

	// values holds context bindings for UseContext lookups, keyed by
	// the Context pointer.
	values map[any]any

	// comp, when set, is the computation whose scope this owner is.
	comp detachable

	disposed bool
}

func newOwner(rt *Runtime, parent *Owner) *Owner {
	o := &Owner{rt: rt, oid: rt.nextID(), parent: parent}
	if parent != nil {
		parent.children = append(parent.children, o)
	}
	return o
}

// NewOwner creates a standalone owner parented to the current one. Most
// code should use CreateRoot instead; NewOwner is for callers managing
// scope lifetimes by hand.
func NewOwner(rt *Runtime) *Owner {
	return newOwner(rt, rt.owner)
}

// ID returns the unique identifier for this owner.
func (o *Owner) ID() uint64 {
	return o.oid
}

// OnCleanup registers fn to run when the owner is disposed or, for a
// computation scope, before the next re-run. Cleanups run in reverse
// registration order. Registering on an already disposed owner runs fn
// immediately.
func (o *Owner) OnCleanup(fn Cleanup) {
	if o.disposed {
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
}

// reset empties the scope without disposing it: child owners are
// disposed in reverse order, then cleanups run in reverse order. Used
// before a computation re-runs its body.
func (o *Owner) reset() {
	children := o.children
	o.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	cleanups := o.cleanups
	o.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Dispose tears the owner down: its computation is detached from the
// graph, children are disposed in reverse creation order, then cleanups
// run in reverse registration order. Idempotent.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	// Detach before cleanups so a cleanup writing signals cannot
	// re-trigger the computation being torn down.
	if o.comp != nil {
		o.comp.detach()
	}

	children := o.children
	o.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	cleanups := o.cleanups
	o.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.values = nil

	if obs := o.rt.obs; obs != nil {
		obs.OwnerDisposed(o.oid)
	}
}

// removeChild unlinks a child without disposing it, preserving the
// creation order of the remaining children.
func (o *Owner) removeChild(child *Owner) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) setValue(key, v any) {
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = v
}

func (o *Owner) lookup(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// CreateRoot runs fn under a fresh parentless owner that is NOT disposed
// when fn returns. The root is detached: disposing whatever scope
// surrounded the CreateRoot call does not touch it. fn receives a dispose
// function for tearing the scope down later; it is the caller's
// responsibility to call it, directly or by wiring it into a longer-lived
// lifecycle.
//
// Example:
//
//	result := CreateRoot(rt, func(dispose func()) string {
//	    CreateEffect(rt, func() Cleanup { ... })
//	    defer dispose() // or keep it for later
//	    return "done"
//	})
func CreateRoot[R any](rt *Runtime, fn func(dispose func()) R) R {
	root := newOwner(rt, nil)
	prev := rt.setOwner(root)
	defer rt.setOwner(prev)
	return fn(root.Dispose)
}

// OnCleanup registers fn on the current owner. Panics with ErrNoOwner
// when called outside any owner scope.
func OnCleanup(rt *Runtime, fn Cleanup) {
	if rt.owner == nil {
		panic(ErrNoOwner)
	}
	rt.owner.OnCleanup(fn)
}

// WithOwner runs fn with o as the current owner, restoring the previous
// owner afterwards. Used to attach late work to a scope captured
// earlier, e.g. from an event callback.
func WithOwner(o *Owner, fn func()) {
	prev := o.rt.setOwner(o)
	defer o.rt.setOwner(prev)
	fn()
}
