package aio

import (
	"context"
	"sync"

	"github.com/haloaudio/aio/internal/backend"
	"github.com/haloaudio/aio/internal/resample"
)

// Direction is the data flow direction of an endpoint.
type Direction int

const (
	Playback Direction = iota
	Capture
)

func (d Direction) String() string {
	if d == Capture {
		return "capture"
	}
	return "playback"
}

func toBackendDir(d Direction) backend.Direction {
	if d == Capture {
		return backend.Capture
	}
	return backend.Playback
}

// endpoint is the shared state behind both Speakers and Microphone. It is
// configured lazily: Open happens at discovery time, Configure happens the
// first time Play/Record is called with a given channel layout.
type endpoint struct {
	mu sync.Mutex

	id           string
	name         string
	dir          Direction
	supportsMask uint16
	conn         backend.Conn

	channels   int
	sampleRate float64
	period     int
	buffer     []float32
	cmap       ChannelMap
	configured bool

	driver        *PeriodDriver
	resampleState resample.State
}

func newEndpoint(id, name string, dir Direction, mask uint16, conn backend.Conn) *endpoint {
	ep := &endpoint{id: id, name: name, dir: dir, supportsMask: mask, conn: conn}
	ep.driver = newPeriodDriver(ep)
	return ep
}

func (ep *endpoint) supports(channels int) bool {
	switch channels {
	case 1, 2, 6, 8:
		return ep.supportsMask&(1<<(channels-1)) != 0
	default:
		return false
	}
}

// Speakers is a playback endpoint.
type Speakers struct{ ep *endpoint }

func (s Speakers) String() string      { return s.ep.name }
func (s Speakers) ID() string          { return s.ep.id }
func (s Speakers) Supports(n int) bool { return s.ep.supports(n) }

// Microphone is a capture endpoint.
type Microphone struct{ ep *endpoint }

func (m Microphone) String() string      { return m.ep.name }
func (m Microphone) ID() string          { return m.ep.id }
func (m Microphone) Supports(n int) bool { return m.ep.supports(n) }

// DefaultSpeakers opens the operating system's default playback endpoint.
//
// ctx only bounds the discovery call itself (listing and opening the
// native device); it is not retained afterwards.
func DefaultSpeakers(ctx context.Context) (Speakers, error) {
	ep, err := openDefault(ctx, Playback)
	if err != nil {
		return Speakers{}, err
	}
	return Speakers{ep: ep}, nil
}

// DefaultMicrophone opens the operating system's default capture endpoint.
func DefaultMicrophone(ctx context.Context) (Microphone, error) {
	ep, err := openDefault(ctx, Capture)
	if err != nil {
		return Microphone{}, err
	}
	return Microphone{ep: ep}, nil
}

func openDefault(ctx context.Context, dir Direction) (*endpoint, error) {
	devices, err := activeBackend.ListDevices(toBackendDir(dir))
	if err != nil || len(devices) == 0 {
		return nil, ErrNoDevice
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := devices[0]
	conn, err := activeBackend.Open(d.ID, toBackendDir(dir))
	if err != nil {
		return nil, ErrNoDevice
	}
	return newEndpoint(d.ID, d.Name, dir, d.SupportsMask, conn), nil
}

// QuerySpeakers lists every playback endpoint currently present.
func QuerySpeakers(ctx context.Context) ([]Speakers, error) {
	eps, err := queryAll(ctx, Playback)
	if err != nil {
		return nil, err
	}
	out := make([]Speakers, len(eps))
	for i, ep := range eps {
		out[i] = Speakers{ep: ep}
	}
	return out, nil
}

// QueryMicrophones lists every capture endpoint currently present.
func QueryMicrophones(ctx context.Context) ([]Microphone, error) {
	eps, err := queryAll(ctx, Capture)
	if err != nil {
		return nil, err
	}
	out := make([]Microphone, len(eps))
	for i, ep := range eps {
		out[i] = Microphone{ep: ep}
	}
	return out, nil
}

func queryAll(ctx context.Context, dir Direction) ([]*endpoint, error) {
	devices, err := activeBackend.ListDevices(toBackendDir(dir))
	if err != nil {
		return nil, ErrNoDevice
	}
	out := make([]*endpoint, 0, len(devices))
	for _, d := range devices {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		conn, err := activeBackend.Open(d.ID, toBackendDir(dir))
		if err != nil {
			continue // evaporated between list and open; skip it
		}
		out = append(out, newEndpoint(d.ID, d.Name, dir, d.SupportsMask, conn))
	}
	return out, nil
}
