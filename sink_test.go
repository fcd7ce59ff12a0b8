package aio

import (
	"context"
	"testing"
	"time"

	"github.com/haloaudio/aio/internal/backend"
)

func withNullBackend(t *testing.T) {
	t.Helper()
	prev := activeBackend
	activeBackend = backend.Null{}
	t.Cleanup(func() { activeBackend = prev })
}

func TestPlaySinkWithWritesPeriod(t *testing.T) {
	withNullBackend(t)
	speakers, err := DefaultSpeakers(context.Background())
	if err != nil {
		t.Fatalf("DefaultSpeakers: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sink, err := Play[Stereo](ctx, speakers)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	frames := func(yield func(Stereo) bool) {
		for i := 0; i < DefaultPeriodFrames; i++ {
			if !yield(Stereo{0.1, -0.1}) {
				return
			}
		}
	}

	n, err := sink.SinkWith(ctx, frames)
	if err != nil {
		t.Fatalf("SinkWith: %v", err)
	}
	if n != DefaultPeriodFrames {
		t.Fatalf("wrote %d frames, want %d", n, DefaultPeriodFrames)
	}
}

func TestPlayUnsupportedLayout(t *testing.T) {
	withNullBackend(t)
	speakers, err := DefaultSpeakers(context.Background())
	if err != nil {
		t.Fatalf("DefaultSpeakers: %v", err)
	}
	speakers.ep.supportsMask = 0 // simulate hardware that supports nothing

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Play[Stereo](ctx, speakers); err != ErrUnsupported {
		t.Fatalf("Play = %v, want ErrUnsupported", err)
	}
}
