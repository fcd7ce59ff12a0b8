package readiness

import (
	"context"
	"time"
)

// RunTimer drives gate with a steady tick every period, standing in for a
// hardware interrupt when no real device backs an endpoint (the Null
// backend). It returns once ctx is done.
func RunTimer(ctx context.Context, gate *Gate, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			gate.SetPending()
		case <-ctx.Done():
			return
		}
	}
}
