// Package aio discovers audio endpoints and moves fixed-layout frames
// (mono, stereo, 5.1, 7.1) to and from them a period at a time. It wraps
// one native backend per platform (PortAudio today, hiding ALSA, CoreAudio
// and WASAPI behind one API) behind a small state machine that recovers
// transient hardware hiccups — buffer xruns, device suspend — without
// surfacing them to the caller, and escalates any other I/O error to a
// FatalError that permanently retires the endpoint. An operation used out
// of sequence on the native connection panics instead.
//
// A typical playback loop:
//
//	speakers, err := aio.DefaultSpeakers(ctx)
//	sink, err := aio.Play[aio.Stereo](ctx, speakers)
//	for {
//		n, err := sink.SinkWith(ctx, nextPeriod)
//	}
//
// See SinkWith and MicrophoneStream.Frames for the capture side.
package aio
