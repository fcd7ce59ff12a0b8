package aio

// Frame is the set of logical-channel array shapes the library moves audio
// in. The allowed layouts are exactly the ones negotiate.go will ever
// configure hardware for: mono, stereo, 5.1, and 7.1. Because the type set
// is closed to sized array types, len(f) on a Frame-constrained value is a
// compile-time constant per instantiation, which is what lets Play[F]/
// Record[F] recover the requested channel count without a runtime
// parameter — and what makes Play[[0]float32] a type error instead of the
// source's runtime panic.
type Frame interface {
	~[1]float32 | ~[2]float32 | ~[6]float32 | ~[8]float32
}

// Named layouts for callers that would rather not spell out array types.
type (
	Mono       [1]float32
	Stereo     [2]float32
	Surround51 [6]float32
	Surround71 [8]float32
)
