package aio

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPollInterval is how often the enumerator re-lists devices when no
// WithPollInterval option overrides it. 500ms matches what a user notices
// as "instant" for a plug/unplug event without burning a core polling a
// syscall.
const DefaultPollInterval = 500 * time.Millisecond

// enumerator owns the single background goroutine that polls the active
// backend for device changes and fans announcements out to every
// registered Listener. One process-wide instance backs NewSpeakersListener
// and NewMicrophoneListener, the way the teacher's AudioEngine owns one
// lifecycle per process rather than one per caller.
type enumerator struct {
	pollInterval time.Duration

	mu              sync.Mutex
	started         bool
	cancel          context.CancelFunc
	seenSpeakers    map[string]bool
	seenMicrophones map[string]bool
	speakersSubs    []*Listener[Speakers]
	microphonesSubs []*Listener[Microphone]
}

var defaultEnumerator = &enumerator{
	pollInterval:    DefaultPollInterval,
	seenSpeakers:    make(map[string]bool),
	seenMicrophones: make(map[string]bool),
}

// WithPollInterval overrides the default discovery poll interval. Must be
// called before the first Listener is created; it has no effect once the
// background goroutine has started.
func WithPollInterval(d time.Duration) {
	defaultEnumerator.mu.Lock()
	defer defaultEnumerator.mu.Unlock()
	if !defaultEnumerator.started {
		defaultEnumerator.pollInterval = d
	}
}

func (e *enumerator) addSpeakersListener(l *Listener[Speakers]) {
	e.mu.Lock()
	e.speakersSubs = append(e.speakersSubs, l)
	e.mu.Unlock()
	e.ensureStarted()
}

func (e *enumerator) addMicrophoneListener(l *Listener[Microphone]) {
	e.mu.Lock()
	e.microphonesSubs = append(e.microphonesSubs, l)
	e.mu.Unlock()
	e.ensureStarted()
}

func (e *enumerator) ensureStarted() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go e.run(ctx)
}

func (e *enumerator) run(ctx context.Context) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()
	e.poll()
	for {
		select {
		case <-ticker.C:
			e.poll()
		case <-ctx.Done():
			return
		}
	}
}

func (e *enumerator) poll() {
	e.pollDirection(Playback)
	e.pollDirection(Capture)
}

func (e *enumerator) pollDirection(dir Direction) {
	devices, err := activeBackend.ListDevices(toBackendDir(dir))
	if err != nil {
		log.Debug("enumerator: list devices failed", "dir", dir, "err", err)
		return
	}

	e.mu.Lock()
	seen := e.seenSpeakers
	if dir == Capture {
		seen = e.seenMicrophones
	}
	present := make(map[string]bool, len(devices))
	var fresh []*endpoint
	for _, d := range devices {
		present[d.ID] = true
		if seen[d.ID] {
			continue
		}
		conn, err := activeBackend.Open(d.ID, toBackendDir(dir))
		if err != nil {
			continue
		}
		seen[d.ID] = true
		fresh = append(fresh, newEndpoint(d.ID, d.Name, dir, d.SupportsMask, conn))
	}
	for id := range seen {
		if !present[id] {
			delete(seen, id)
		}
	}
	subsSpeakers := append([]*Listener[Speakers](nil), e.speakersSubs...)
	subsMics := append([]*Listener[Microphone](nil), e.microphonesSubs...)
	e.mu.Unlock()

	for _, ep := range fresh {
		log.Debug("enumerator: discovered endpoint", "id", ep.id, "dir", dir)
		if dir == Playback {
			s := Speakers{ep: ep}
			for _, l := range subsSpeakers {
				l.publish(s)
			}
		} else {
			m := Microphone{ep: ep}
			for _, l := range subsMics {
				l.publish(m)
			}
		}
	}
}
