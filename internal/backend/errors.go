package backend

import "errors"

// Sentinel errors a Conn's Read/Write/Prepare/Resume may wrap. They mirror
// the ALSA/PortAudio transient-error taxonomy the period driver already
// knows how to recover from; anything else is treated as fatal to the
// endpoint.
var (
	// ErrAgain: no period was ready yet (the backend's fd/callback signaled
	// readiness spuriously, or woke for the other direction in a duplex
	// stream). The driver re-arms its wait and retries.
	ErrAgain = errors.New("backend: not ready")

	// ErrXRun: buffer underrun (playback) or overrun (capture). Recoverable
	// with Prepare.
	ErrXRun = errors.New("backend: buffer xrun")

	// ErrSuspended: the device was suspended (e.g. laptop sleep) and needs
	// Resume before Prepare.
	ErrSuspended = errors.New("backend: device suspended")

	// ErrBadState: the caller violated the Conn's state machine (e.g. Read
	// before Configure). Indicates a library bug, not a hardware condition.
	ErrBadState = errors.New("backend: operation invalid in current state")
)

// ErrClass buckets a Read/Write error into the recovery action the period
// driver should take.
type ErrClass int

const (
	ClassNone ErrClass = iota
	ClassAgain
	ClassXRun
	ClassSuspended
	ClassBadState
	ClassFatal
)

// Classify maps err (nil or one of the sentinels above, possibly wrapped)
// onto the recovery action it calls for. Any non-nil error that isn't one
// of the known sentinels is ClassFatal.
func Classify(err error) ErrClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrAgain):
		return ClassAgain
	case errors.Is(err, ErrXRun):
		return ClassXRun
	case errors.Is(err, ErrSuspended):
		return ClassSuspended
	case errors.Is(err, ErrBadState):
		return ClassBadState
	default:
		return ClassFatal
	}
}
