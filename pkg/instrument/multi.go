package instrument

import (
	"time"

	"github.com/vango-dev/reactive/pkg/reactive"
)

// Multi fans observer callbacks out to several observers, in order.
//
//	rt := reactive.NewRuntime(reactive.WithObserver(instrument.Multi(
//	    instrument.Prometheus(),
//	    instrument.OpenTelemetry(),
//	)))
func Multi(observers ...reactive.Observer) reactive.Observer {
	return multi(observers)
}

type multi []reactive.Observer

func (m multi) SignalWrite(signalID uint64) {
	for _, o := range m {
		o.SignalWrite(signalID)
	}
}

func (m multi) EffectRun(effectID uint64, name string, d time.Duration) {
	for _, o := range m {
		o.EffectRun(effectID, name, d)
	}
}

func (m multi) MemoRecompute(memoID uint64, d time.Duration) {
	for _, o := range m {
		o.MemoRecompute(memoID, d)
	}
}

func (m multi) BatchFlush(queued int, d time.Duration) {
	for _, o := range m {
		o.BatchFlush(queued, d)
	}
}

func (m multi) OwnerDisposed(ownerID uint64) {
	for _, o := range m {
		o.OwnerDisposed(ownerID)
	}
}

func (m multi) ComputationPanic(computationID uint64) {
	for _, o := range m {
		o.ComputationPanic(computationID)
	}
}

var (
	_ reactive.Observer = (*Metrics)(nil)
	_ reactive.Observer = (*Tracing)(nil)
	_ reactive.Observer = multi(nil)
)
