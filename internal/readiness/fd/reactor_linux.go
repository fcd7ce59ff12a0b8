// Package fd implements the Linux file-descriptor readiness realisation: an
// epoll reactor that turns POLLIN/POLLOUT events on a PCM's native fd into
// readiness.Gate signals. It exists to satisfy the fd-based realisation
// spec.md §4.2 calls for and is independently testable with a pipe, but the
// shipped PortAudio backend is callback-driven and never registers with it
// (see DESIGN.md). A future raw-ALSA backend would wire this in directly.
package fd

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/haloaudio/aio/internal/readiness"
)

// Reactor multiplexes any number of fds onto a single epoll instance and a
// single goroutine, dispatching events to each fd's registered gate.
type Reactor struct {
	epfd int

	mu    sync.Mutex
	gates map[int]*readiness.Gate

	closeOnce sync.Once
	stop      chan struct{}
	stopped   chan struct{}
}

// NewReactor creates an epoll instance and starts its event loop.
func NewReactor() (*Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("readiness/fd: epoll_create1: %w", err)
	}
	r := &Reactor{
		epfd:    epfd,
		gates:   make(map[int]*readiness.Gate),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.loop()
	return r, nil
}

// Watch registers fd for read-or-write readiness and routes events to gate.
// The caller chooses EPOLLIN or EPOLLOUT via events.
func (r *Reactor) Watch(fd int, events uint32, gate *readiness.Gate) error {
	r.mu.Lock()
	r.gates[fd] = gate
	r.mu.Unlock()

	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		r.mu.Lock()
		delete(r.gates, fd)
		r.mu.Unlock()
		return fmt.Errorf("readiness/fd: epoll_ctl add fd=%d: %w", fd, err)
	}
	return nil
}

// Forget stops watching fd.
func (r *Reactor) Forget(fd int) {
	unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	r.mu.Lock()
	delete(r.gates, fd)
	r.mu.Unlock()
}

func (r *Reactor) loop() {
	defer close(r.stopped)
	events := make([]unix.EpollEvent, 16)
	for {
		select {
		case <-r.stop:
			return
		default:
		}
		n, err := unix.EpollWait(r.epfd, events, 250)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			r.mu.Lock()
			gate := r.gates[fd]
			r.mu.Unlock()
			if gate != nil {
				gate.SetPending()
			}
		}
	}
}

// Close stops the event loop and releases the epoll fd.
func (r *Reactor) Close() error {
	r.closeOnce.Do(func() {
		close(r.stop)
		<-r.stopped
	})
	return unix.Close(r.epfd)
}
