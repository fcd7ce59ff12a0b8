package backend

import (
	"context"
	"time"

	"github.com/haloaudio/aio/internal/readiness"
)

// Null is a hardware-free Backend: playback is discarded, capture produces
// silence. The library's tests select it in place of PortAudio; the
// library never falls back to it when no real device is present.
//
// Its Conn deliberately simulates a device that only accepts 16-bit native
// samples, so it exercises the int16 up/down-conversion path in convert.go
// end to end even though the shipped PortAudio backend never needs it
// (PortAudio always negotiates float32 directly).
type Null struct{}

// nullSupportsMask has bits set for every layout the library recognises
// (1, 2, 6, 8 channels): 1<<0 | 1<<1 | 1<<5 | 1<<7.
const nullSupportsMask = 1<<0 | 1<<1 | 1<<5 | 1<<7

func (Null) ListDevices(dir Direction) ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "null", Name: "Null " + dir.String() + " device", SupportsMask: nullSupportsMask}}, nil
}

func (Null) Open(id string, dir Direction) (Conn, error) {
	return &nullConn{dir: dir, gate: readiness.NewGate()}, nil
}

type nullConn struct {
	dir      Direction
	gate     *readiness.Gate
	channels int
	period   int
	rate     float64
	native   []byte

	cancel context.CancelFunc
}

func (c *nullConn) Configure(channels int, targetRate float64, targetPeriod int) (float64, int, error) {
	c.channels = channels
	c.period = targetPeriod
	c.rate = targetRate
	c.native = make([]byte, targetPeriod*channels*2) // formatInt16 width
	return targetRate, targetPeriod, nil
}

func (c *nullConn) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	seconds := float64(c.period) / c.rate
	go readiness.RunTimer(ctx, c.gate, time.Duration(seconds*float64(time.Second)))
	return nil
}

func (c *nullConn) Prepare() error { return nil }
func (c *nullConn) Resume() error  { return nil }

func (c *nullConn) Drop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// Read decodes whatever silence is resident in the simulated int16 buffer
// (initially all zero) back into canonical float32.
func (c *nullConn) Read(buf []float32) (int, error) {
	n := decodeNative(formatInt16, c.native, buf)
	return n / c.channels, nil
}

// Write encodes buf down to the simulated int16 native format and discards
// it; the round trip through encodeNative is what gives this path coverage.
func (c *nullConn) Write(buf []float32) (int, error) {
	n := encodeNative(formatInt16, buf, c.native)
	return (n / 2) / c.channels, nil
}

func (c *nullConn) PollFDs() []int { return nil }

func (c *nullConn) Readiness() *readiness.Gate { return c.gate }
