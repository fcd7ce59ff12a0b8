package readiness

import (
	"context"
	"testing"
	"time"
)

func TestRunTimerSignalsRepeatedly(t *testing.T) {
	gate := NewGate()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go RunTimer(ctx, gate, 5*time.Millisecond)

	for i := 0; i < 3; i++ {
		waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
		if err := gate.Wait(waitCtx); err != nil {
			waitCancel()
			t.Fatalf("tick %d: %v", i, err)
		}
		waitCancel()
	}
}
