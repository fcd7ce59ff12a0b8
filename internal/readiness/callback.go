package readiness

// Callback-driven realisation: the native audio API invokes a function on
// its own thread once per period (PortAudio's stream callback). That
// function does no more than copy the period buffer and call SetPending —
// there is no separate type here, Gate itself is already safe to call from
// that thread. See internal/backend/portaudio_backend.go.
