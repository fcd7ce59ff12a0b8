package aio

import (
	"context"
	"testing"
	"time"

	"github.com/haloaudio/aio/internal/backend"
)

func newTestEndpoint(t *testing.T, dir Direction) *endpoint {
	t.Helper()
	conn, err := backend.Null{}.Open("null", toBackendDir(dir))
	if err != nil {
		t.Fatalf("open null conn: %v", err)
	}
	ep := newEndpoint("null", "Null", dir, 0b1111|0b10000000, conn)
	if err := configure(ep, 2); err != nil {
		t.Fatalf("configure: %v", err)
	}
	t.Cleanup(func() { conn.Drop() })
	return ep
}

func TestPeriodDriverAwaitDeliversPeriods(t *testing.T) {
	ep := newTestEndpoint(t, Capture)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := ep.driver.Await(ctx); err != nil {
			t.Fatalf("Await %d: %v", i, err)
		}
	}
}

func TestPeriodDriverRespectsContextCancel(t *testing.T) {
	ep := newTestEndpoint(t, Capture)
	// Drain the already-armed timer so the next Await genuinely blocks.
	ctx := context.Background()
	if _, err := ep.driver.Await(ctx); err != nil {
		t.Fatalf("warmup Await: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := ep.driver.Await(cancelCtx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected context error")
		}
	case <-time.After(time.Second):
		t.Fatal("Await did not return after cancel")
	}
}
