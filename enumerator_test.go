package aio

import (
	"context"
	"testing"
	"time"
)

func TestNewSpeakersListenerAnnouncesNullDevice(t *testing.T) {
	withNullBackend(t)

	// Use a private enumerator so this test doesn't interact with other
	// tests' listeners on the shared process-global one.
	e := &enumerator{
		pollInterval:    10 * time.Millisecond,
		seenSpeakers:    make(map[string]bool),
		seenMicrophones: make(map[string]bool),
	}
	l := newListener[Speakers]()
	e.addSpeakersListener(l)
	t.Cleanup(func() { e.cancel() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := l.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.ID() != "null" {
		t.Fatalf("got id %q, want %q", got.ID(), "null")
	}
}

func TestEnumeratorDoesNotReannounceSeenDevice(t *testing.T) {
	withNullBackend(t)

	e := &enumerator{
		pollInterval:    10 * time.Millisecond,
		seenSpeakers:    make(map[string]bool),
		seenMicrophones: make(map[string]bool),
	}
	e.poll()
	if len(e.seenSpeakers) != 1 {
		t.Fatalf("seenSpeakers = %v, want 1 entry", e.seenSpeakers)
	}
	e.poll()
	if len(e.seenSpeakers) != 1 {
		t.Fatalf("second poll grew seenSpeakers: %v", e.seenSpeakers)
	}
}
