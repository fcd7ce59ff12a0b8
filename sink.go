package aio

import (
	"context"
	"iter"
)

// SpeakersSink is a configured, ready-to-write playback endpoint. Its
// channel count is fixed by F for its whole lifetime: Play negotiates the
// hardware once, SinkWith writes as many periods as the caller wants.
type SpeakersSink[F Frame] struct {
	s    Speakers
	last F // last logical frame written, for Close's continuity stash
}

// Play negotiates s for the channel count F implies and blocks until the
// first period is ready, returning a sink bound to that layout.
//
// Because Frame's type set only contains the four supported array
// lengths, there is no Go value of F whose length is 0 — the source
// implementation's "play::<0>() panics" boundary case is instead a
// compile error here, one level stronger than the spec requires.
func Play[F Frame](ctx context.Context, s Speakers) (*SpeakersSink[F], error) {
	var zero F
	n := len(zero)
	if !s.Supports(n) {
		return nil, ErrUnsupported
	}
	if err := configure(s.ep, n); err != nil {
		return nil, err
	}
	if _, err := s.ep.driver.Await(ctx); err != nil {
		return nil, err
	}
	return &SpeakersSink[F]{s: s}, nil
}

// SinkWith writes frames into the endpoint's current period buffer until
// either frames is exhausted or the period is full, then submits it and
// waits for the next period to become writable. It returns the number of
// frames actually consumed from frames in this call.
func (sink *SpeakersSink[F]) SinkWith(ctx context.Context, frames iter.Seq[F]) (int, error) {
	ep := sink.s.ep
	ep.mu.Lock()
	channels := ep.channels
	period := ep.period
	cmap := ep.cmap
	buf := ep.buffer
	ep.mu.Unlock()

	written := 0
	for f := range frames {
		if written >= period {
			break
		}
		native := make([]float32, channels)
		logical := f[:]
		cmap.ToNative(logical, native)
		copy(buf[written*channels:(written+1)*channels], native)
		sink.last = f
		written++
	}

	if _, err := ep.driver.Await(ctx); err != nil {
		return written, err
	}
	return written, nil
}

// Close releases the sink's claim on its endpoint's buffer, stashing the
// last frame written into the endpoint's resampler state. Play does not
// read that state back, so a later sink starts without it. It does not close the
// endpoint itself — a later Play call can reconfigure and reuse it.
func (sink *SpeakersSink[F]) Close() error {
	ep := sink.s.ep
	ep.mu.Lock()
	defer ep.mu.Unlock()
	logical := sink.last[:]
	ep.resampleState.LastN = len(logical)
	copy(ep.resampleState.Last[:], logical)
	return nil
}
