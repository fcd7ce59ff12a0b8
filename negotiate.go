package aio

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DefaultSampleRate and DefaultPeriodFrames are the values negotiation
// starts from; a backend is always free to report back something else
// (e.g. a device that only runs at 48kHz when 44100 is requested), and
// negotiate stores whatever it actually got.
const (
	DefaultSampleRate   = 48000.0
	DefaultPeriodFrames = 64
)

// configure runs the hardware-parameter negotiation for channels: apply,
// observe what the device actually granted, and resize the endpoint's
// scratch buffer accordingly. channels must be 1, 2, 6, or 8 — any other
// value is a programmer error, not a runtime condition, so it panics
// rather than returning ErrUnsupported (that error is reserved for the
// hardware refusing a legal layout).
func configure(ep *endpoint, channels int) error {
	switch channels {
	case 1, 2, 6, 8:
	default:
		panic(fmt.Sprintf("aio: invalid channel layout %d", channels))
	}

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if ep.configured && ep.channels == channels {
		return nil
	}
	if st := periodState(ep.driver.state.Load()); st != stateIdle && st != stateUnconfigured {
		return fmt.Errorf("aio: cannot reconfigure %s while a period is in flight or after it failed", ep.id)
	}

	rate, period, err := ep.conn.Configure(channels, DefaultSampleRate, DefaultPeriodFrames)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if err := ep.conn.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	cmap, err := NewChannelMap(channels)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	ep.channels = channels
	ep.sampleRate = rate
	ep.period = period
	ep.buffer = make([]float32, period*channels)
	ep.cmap = cmap
	ep.configured = true
	ep.resampleState.Reset()
	ep.driver.state.Store(int32(stateIdle))

	log.Debug("endpoint configured", "id", ep.id, "dir", ep.dir, "channels", channels, "rate", rate, "period", period)
	return nil
}
