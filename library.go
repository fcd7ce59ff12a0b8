package aio

import "github.com/haloaudio/aio/internal/backend"

// activeBackend is the library's single source of native endpoints. It is
// a var, not a const selection, so tests can swap in backend.Null without
// touching any exported API.
var activeBackend backend.Backend = backend.PortAudio{}

// Shutdown releases process-global native audio state. Most programs never
// need to call it — the library initializes PortAudio lazily on first use
// and the process exiting is as good a teardown as any — but long-running
// hosts that want to release the audio subsystem cleanly (e.g. before
// re-exec) can.
func Shutdown() error {
	return backend.ShutdownPortAudio()
}
