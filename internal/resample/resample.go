// Package resample holds the continuity state a sink or stream stashes
// between periods when the application's frame rate differs from the
// endpoint's negotiated hardware rate. The actual interpolation is a DSP
// concern the library deliberately does not implement (spec.md's "no audio
// DSP" Non-goal covers resampling math itself); what the core does own is
// carrying that state across Play/Record calls so a future resampler
// plugged in by the application does not lose its fractional phase or
// stashed surround frame across a stop/start of the endpoint.
package resample

// State is the snapshot a resampler needs to resume exactly where it left
// off: the fractional position within the source period, and the last
// frame produced, in case the sink rounds up to the device period without
// consuming it.
type State struct {
	Partial float64    // fractional source-sample position, in [0, 1)
	Last    [8]float32 // last frame emitted, zero-padded to the max layout width
	LastN   int        // number of valid channels in Last
}

// Reset clears a State back to zero, used when an endpoint is reconfigured
// to a different channel layout and any stashed frame would no longer make
// sense.
func (s *State) Reset() {
	*s = State{}
}
