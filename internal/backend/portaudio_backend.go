package backend

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/haloaudio/aio/internal/readiness"
)

var (
	paInitOnce sync.Once
	paInitErr  error
)

func ensurePortAudio() error {
	paInitOnce.Do(func() { paInitErr = portaudio.Initialize() })
	return paInitErr
}

// ShutdownPortAudio releases PortAudio's process-global state. Callers that
// never open a PortAudio endpoint need not call it.
func ShutdownPortAudio() error {
	return portaudio.Terminate()
}

// PortAudio is the shipped Backend: a thin wrapper over gordonklaus/portaudio,
// which already hides ALSA, CoreAudio and WASAPI behind one C API. Streams
// are opened in callback mode (portaudio.OpenStream(params, callbackFn))
// rather than the blocking Read/Write variant, so readiness is signalled
// from the audio thread the instant a period arrives instead of being
// discovered by a blocking call on a dedicated goroutine.
type PortAudio struct{}

func (PortAudio) ListDevices(dir Direction) ([]DeviceInfo, error) {
	if err := ensurePortAudio(); err != nil {
		return nil, fmt.Errorf("backend: portaudio init: %w", err)
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("backend: portaudio devices: %w", err)
	}

	var out []DeviceInfo
	if def, err := defaultDevice(dir); err == nil && def != nil {
		out = append(out, DeviceInfo{ID: "default", Name: def.Name, SupportsMask: supportsMask(def, dir)})
	}
	for _, d := range devices {
		if channelCountFor(d, dir) <= 0 {
			continue
		}
		out = append(out, DeviceInfo{ID: d.Name, Name: d.Name, SupportsMask: supportsMask(d, dir)})
	}
	return out, nil
}

func defaultDevice(dir Direction) (*portaudio.DeviceInfo, error) {
	if dir == Capture {
		return portaudio.DefaultInputDevice()
	}
	return portaudio.DefaultOutputDevice()
}

func channelCountFor(d *portaudio.DeviceInfo, dir Direction) int {
	if dir == Capture {
		return d.MaxInputChannels
	}
	return d.MaxOutputChannels
}

func supportsMask(d *portaudio.DeviceInfo, dir Direction) uint16 {
	max := channelCountFor(d, dir)
	var mask uint16
	for _, n := range [4]int{1, 2, 6, 8} {
		if max >= n {
			mask |= 1 << (n - 1)
		}
	}
	return mask
}

func (PortAudio) Open(id string, dir Direction) (Conn, error) {
	if err := ensurePortAudio(); err != nil {
		return nil, fmt.Errorf("backend: portaudio init: %w", err)
	}
	dev, err := findDevice(id, dir)
	if err != nil {
		return nil, err
	}
	return &paConn{dev: dev, dir: dir, gate: readiness.NewGate()}, nil
}

func findDevice(id string, dir Direction) (*portaudio.DeviceInfo, error) {
	if id == "default" || id == "" {
		return defaultDevice(dir)
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("backend: portaudio devices: %w", err)
	}
	for _, d := range devices {
		if d.Name == id && channelCountFor(d, dir) > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("backend: no such device %q", id)
}

// paConn implements Conn over one portaudio.Stream opened in callback mode.
// The native buffer is shared between the audio callback (producer on
// capture, consumer on playback) and the period driver's Read/Write calls;
// mu guards it.
type paConn struct {
	dev  *portaudio.DeviceInfo
	dir  Direction
	gate *readiness.Gate

	mu       sync.Mutex
	stream   *portaudio.Stream
	channels int
	native   []float32 // last period delivered (capture) or to be sent (playback)
	hasData  bool
}

func (c *paConn) Configure(channels int, targetRate float64, targetPeriod int) (float64, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}

	params := portaudio.StreamParameters{
		SampleRate:      targetRate,
		FramesPerBuffer: targetPeriod,
	}
	if c.dir == Capture {
		params.Input = portaudio.StreamDeviceParameters{
			Device:   c.dev,
			Channels: channels,
			Latency:  c.dev.DefaultLowInputLatency,
		}
	} else {
		params.Output = portaudio.StreamDeviceParameters{
			Device:   c.dev,
			Channels: channels,
			Latency:  c.dev.DefaultLowOutputLatency,
		}
	}

	c.channels = channels
	c.native = make([]float32, targetPeriod*channels)
	c.hasData = false

	var stream *portaudio.Stream
	var err error
	if c.dir == Capture {
		stream, err = portaudio.OpenStream(params, c.captureCallback)
	} else {
		stream, err = portaudio.OpenStream(params, c.playbackCallback)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("backend: open stream: %w", err)
	}
	c.stream = stream

	// The gordonklaus binding does not surface the negotiated values
	// independently of what was requested; PortAudio may still silently
	// adjust them internally, and the requested values are returned as
	// the negotiated ones.
	return targetRate, targetPeriod, nil
}

func (c *paConn) captureCallback(in []float32) {
	c.mu.Lock()
	copy(c.native, in)
	c.hasData = true
	c.mu.Unlock()
	c.gate.SetPending()
}

func (c *paConn) playbackCallback(out []float32) {
	c.mu.Lock()
	if c.hasData {
		copy(out, c.native)
		c.hasData = false
	} else {
		for i := range out {
			out[i] = 0
		}
	}
	c.mu.Unlock()
	c.gate.SetPending()
}

func (c *paConn) Start() error {
	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()
	if stream == nil {
		return ErrBadState
	}
	return stream.Start()
}

// Prepare recovers from an xrun. PortAudio's callback streams self-recover
// (the next callback simply runs again), so there is no native call to
// make; Prepare only needs to clear the stale buffer state.
func (c *paConn) Prepare() error {
	c.mu.Lock()
	c.hasData = false
	c.mu.Unlock()
	return nil
}

// Resume restarts a suspended stream.
func (c *paConn) Resume() error {
	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()
	if stream == nil {
		return ErrBadState
	}
	if err := stream.Stop(); err != nil {
		return err
	}
	return stream.Start()
}

func (c *paConn) Drop() error {
	c.mu.Lock()
	stream := c.stream
	c.stream = nil
	c.mu.Unlock()
	if stream == nil {
		return nil
	}
	if err := stream.Stop(); err != nil {
		stream.Close()
		return err
	}
	return stream.Close()
}

// Read delivers the most recent period the capture callback produced. It
// returns ErrAgain when no period has arrived since the last Read or
// Prepare, which happens when the gate's signal belongs to a period that
// an earlier Read already consumed.
func (c *paConn) Read(buf []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasData {
		return 0, ErrAgain
	}
	n := copy(buf, c.native)
	c.hasData = false
	return n / c.channels, nil
}

// Write stages buf for the playback callback's next invocation.
func (c *paConn) Write(buf []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := copy(c.native, buf)
	c.hasData = true
	return n / c.channels, nil
}

// PollFDs: PortAudio's callback streams have no fd the caller can poll;
// readiness is entirely callback-driven.
func (c *paConn) PollFDs() []int { return nil }

func (c *paConn) Readiness() *readiness.Gate { return c.gate }
