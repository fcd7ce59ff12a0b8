package backend

import (
	"sync/atomic"
	"testing"

	"github.com/haloaudio/aio/internal/readiness"
)

// mockConn implements Conn for tests that drive the period driver without
// a real device, mirroring the teacher's mockPAStream-over-an-interface
// strategy.
type mockConn struct {
	gate *readiness.Gate

	readErr  error
	writeErr error

	reads    atomic.Int32
	writes   atomic.Int32
	prepares atomic.Int32
	resumes  atomic.Int32
}

func newMockConn() *mockConn {
	return &mockConn{gate: readiness.NewGate()}
}

func (m *mockConn) Configure(channels int, rate float64, period int) (float64, int, error) {
	return rate, period, nil
}
func (m *mockConn) Start() error   { return nil }
func (m *mockConn) Drop() error    { return nil }
func (m *mockConn) PollFDs() []int { return nil }

func (m *mockConn) Prepare() error {
	m.prepares.Add(1)
	return nil
}

func (m *mockConn) Resume() error {
	m.resumes.Add(1)
	return nil
}

func (m *mockConn) Read(buf []float32) (int, error) {
	m.reads.Add(1)
	if m.readErr != nil {
		err := m.readErr
		m.readErr = nil
		return 0, err
	}
	return len(buf), nil
}

func (m *mockConn) Write(buf []float32) (int, error) {
	m.writes.Add(1)
	if m.writeErr != nil {
		err := m.writeErr
		m.writeErr = nil
		return 0, err
	}
	return len(buf), nil
}

func (m *mockConn) Readiness() *readiness.Gate { return m.gate }

func TestClassifyKnownErrors(t *testing.T) {
	cases := map[error]ErrClass{
		nil:          ClassNone,
		ErrAgain:     ClassAgain,
		ErrXRun:      ClassXRun,
		ErrSuspended: ClassSuspended,
		ErrBadState:  ClassBadState,
	}
	for err, want := range cases {
		if got := Classify(err); got != want {
			t.Errorf("Classify(%v) = %v, want %v", err, got, want)
		}
	}
}

func TestClassifyUnknownErrorIsFatal(t *testing.T) {
	if got := Classify(errUnrelated); got != ClassFatal {
		t.Fatalf("Classify(unrelated) = %v, want ClassFatal", got)
	}
}

var errUnrelated = &customErr{}

type customErr struct{}

func (*customErr) Error() string { return "boom" }

func TestMockConnReadRecordsCalls(t *testing.T) {
	c := newMockConn()
	buf := make([]float32, 4)
	n, err := c.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if c.reads.Load() != 1 {
		t.Fatalf("reads = %d, want 1", c.reads.Load())
	}
}

func TestMockConnReadErrorThenRecovers(t *testing.T) {
	c := newMockConn()
	c.readErr = ErrXRun
	buf := make([]float32, 2)

	if _, err := c.Read(buf); Classify(err) != ClassXRun {
		t.Fatalf("expected ClassXRun, got %v", Classify(err))
	}
	if n, err := c.Read(buf); err != nil || n != 2 {
		t.Fatalf("retry Read = %d, %v", n, err)
	}
}
