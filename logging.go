package aio

import (
	"sync"
	"time"
)

// diagLimiter throttles the one-shot XRUN/suspend diagnostics the period
// driver emits, so a device stuck in a recovery loop logs at most once per
// window instead of flooding — the same throttle idea as the teacher's lastSpeakEmit pattern
// in audio.go, generalised to any endpoint-keyed diagnostic.
type diagLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time
}

var xrunDiag = diagLimiter{last: make(map[string]time.Time)}

func (d *diagLimiter) allow(key string, window time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.last[key]; ok && time.Since(t) < window {
		return false
	}
	d.last[key] = time.Now()
	return true
}
