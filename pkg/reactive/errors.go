package reactive

import (
	"errors"
	"fmt"
)

// ErrNoOwner is the panic value raised when Provide or OnCleanup is
// called while no owner scope is active. Open a scope with CreateRoot
// (or WithOwner) first.
var ErrNoOwner = errors.New("reactive: no owner scope is active")

// CycleError is the panic value raised when a notification reaches a
// computation that is currently running, meaning a computation wrote to
// a signal it already depends on during its own run. The engine fails
// fast instead of looping; there is no automatic retry.
type CycleError struct {
	// ComputationID identifies the computation that would have re-entered
	// itself.
	ComputationID uint64
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("reactive: computation %d notified during its own run (cyclic dependency)", e.ComputationID)
}

// EqualityError is the panic value raised when a custom equality
// predicate panics during a write. The write is aborted and the old value
// retained; no subscriber is notified.
type EqualityError struct {
	// SignalID identifies the cell whose predicate failed.
	SignalID uint64

	// Recovered is the original panic value.
	Recovered any
}

// Error implements the error interface.
func (e *EqualityError) Error() string {
	return fmt.Sprintf("reactive: equality predicate for signal %d panicked: %v", e.SignalID, e.Recovered)
}

// Unwrap returns the underlying error when the predicate panicked with
// one, for errors.Is/As support.
func (e *EqualityError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// ComputationError is the panic value raised when a user function (an
// effect body or memo computation) panics. The computation is left stale
// with whatever dependency edges it registered before failing, and the
// panic propagates synchronously to whoever triggered the run: the Set
// caller, the Batch caller, or the memo's Get caller.
type ComputationError struct {
	// ComputationID identifies the failed effect or memo.
	ComputationID uint64

	// Recovered is the original panic value.
	Recovered any
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("reactive: computation %d panicked: %v", e.ComputationID, e.Recovered)
}

// Unwrap returns the underlying error when the body panicked with one,
// for errors.Is/As support.
func (e *ComputationError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// wrapRunPanic converts a recovered panic from a computation body into a
// *ComputationError. Engine errors already carry their origin and pass
// through unchanged so the innermost failure reaches the caller.
func wrapRunPanic(id uint64, r any) any {
	switch r.(type) {
	case *ComputationError, *CycleError, *EqualityError:
		return r
	}
	return &ComputationError{ComputationID: id, Recovered: r}
}
