package aio

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/haloaudio/aio/internal/backend"
)

type periodState int32

const (
	stateUnconfigured periodState = iota
	stateIdle
	stateInFlight
	stateRecovering
	stateFailed
)

// PeriodDriver runs one endpoint's per-period state machine: wait for
// readiness, attempt exactly one Read or Write, classify the result, and
// recover transient failures without surfacing them to the caller. Only
// one Await may be in flight per endpoint at a time; mu enforces that the
// same way the teacher serializes Start/Stop with ae.mu.
type PeriodDriver struct {
	ep *endpoint

	state atomic.Int32
	mu    sync.Mutex
}

func newPeriodDriver(ep *endpoint) *PeriodDriver {
	return &PeriodDriver{ep: ep}
}

func (d *PeriodDriver) isFailed() bool {
	return periodState(d.state.Load()) == stateFailed
}

// Await blocks until one period has been transferred, returning the number
// of frames transferred (0, nil on the fused-failed path: the endpoint is
// dead but Await keeps resolving immediately rather than hanging the
// caller forever).
func (d *PeriodDriver) Await(ctx context.Context) (int, error) {
	if d.isFailed() {
		return 0, nil
	}
	if periodState(d.state.Load()) == stateUnconfigured {
		d.state.Store(int32(stateIdle))
		return 0, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		if err := d.ep.conn.Readiness().Wait(ctx); err != nil {
			return 0, err
		}

		d.state.Store(int32(stateInFlight))
		n, err := d.transfer()
		if err == nil {
			d.state.Store(int32(stateIdle))
			return n, nil
		}

		switch backend.Classify(err) {
		case backend.ClassAgain:
			d.state.Store(int32(stateIdle))
			continue

		case backend.ClassXRun:
			d.state.Store(int32(stateRecovering))
			if perr := d.ep.conn.Prepare(); perr == nil {
				if n2, err2 := d.transfer(); err2 == nil {
					d.state.Store(int32(stateIdle))
					return n2, nil
				}
			}
			d.logTransient("xrun", err)
			d.state.Store(int32(stateIdle))
			return 0, nil

		case backend.ClassSuspended:
			d.state.Store(int32(stateRecovering))
			d.ep.conn.Resume()
			if perr := d.ep.conn.Prepare(); perr == nil {
				if n2, err2 := d.transfer(); err2 == nil {
					d.state.Store(int32(stateIdle))
					return n2, nil
				}
			}
			d.logTransient("suspended", err)
			d.state.Store(int32(stateIdle))
			return 0, nil

		case backend.ClassBadState:
			d.state.Store(int32(stateFailed))
			panic("aio: endpoint " + d.ep.id + " used out of sequence")

		default:
			d.state.Store(int32(stateFailed))
			return 0, &FatalError{Endpoint: d.ep.id, Err: err}
		}
	}
}

func (d *PeriodDriver) transfer() (int, error) {
	if d.ep.dir == Capture {
		return d.ep.conn.Read(d.ep.buffer)
	}
	return d.ep.conn.Write(d.ep.buffer)
}

func (d *PeriodDriver) logTransient(kind string, err error) {
	if !xrunDiag.allow(d.ep.id+":"+kind, time.Second) {
		return
	}
	log.Warn("period recovery", "endpoint", d.ep.id, "kind", kind, "err", err)
}
