package aio

import (
	"context"
	"iter"
)

// MicrophoneStream is a configured, ready-to-read capture endpoint.
type MicrophoneStream[F Frame] struct {
	m    Microphone
	n    int // frames valid in the endpoint buffer for the period just read
	last F   // last logical frame yielded, for Close's continuity stash
}

// Record negotiates m for the channel count F implies and blocks until the
// first period is captured.
func Record[F Frame](ctx context.Context, m Microphone) (*MicrophoneStream[F], error) {
	var zero F
	n := len(zero)
	if !m.Supports(n) {
		return nil, ErrUnsupported
	}
	if err := configure(m.ep, n); err != nil {
		return nil, err
	}
	frames, err := m.ep.driver.Await(ctx)
	if err != nil {
		return nil, err
	}
	return &MicrophoneStream[F]{m: m, n: frames}, nil
}

// SampleRate is the endpoint's negotiated hardware rate.
func (st *MicrophoneStream[F]) SampleRate() float64 { return st.m.ep.sampleRate }

// Len is the number of frames delivered by the period just captured.
func (st *MicrophoneStream[F]) Len() int { return st.n }

// Frames iterates the frames captured in the current period, in logical
// channel order, and stops once they are exhausted; Next moves the stream
// on to the following period.
func (st *MicrophoneStream[F]) Frames() iter.Seq[F] {
	return func(yield func(F) bool) {
		ep := st.m.ep
		ep.mu.Lock()
		channels := ep.channels
		cmap := ep.cmap
		buf := ep.buffer
		n := st.n
		ep.mu.Unlock()

		for i := 0; i < n; i++ {
			var f F
			native := buf[i*channels : (i+1)*channels]
			cmap.ToLogical(native, f[:])
			st.last = f
			if !yield(f) {
				return
			}
		}
	}
}

// Next blocks for the next period's worth of frames to arrive, replacing
// what Frames will iterate.
func (st *MicrophoneStream[F]) Next(ctx context.Context) (int, error) {
	n, err := st.m.ep.driver.Await(ctx)
	if err != nil {
		return 0, err
	}
	st.n = n
	return n, nil
}

// Close releases the stream's claim on its endpoint's buffer, stashing the
// last frame yielded into the endpoint's resampler state. Record does not
// read that state back, so a later stream starts without it.
func (st *MicrophoneStream[F]) Close() error {
	ep := st.m.ep
	ep.mu.Lock()
	defer ep.mu.Unlock()
	logical := st.last[:]
	ep.resampleState.LastN = len(logical)
	copy(ep.resampleState.Last[:], logical)
	return nil
}
