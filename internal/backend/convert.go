package backend

// Numeric conversions between the library's canonical float32 sample
// representation (range [-1, 1], clipped) and the fixed-point formats a
// backend may have to fall back to when a device refuses float32.
//
// These round-trip exactly for the values the library itself produces
// (i.e. int16ToFloat32(float32ToInt16(x)) == x for every x representable
// as int16/32767), which is what TestInt16RoundTrip and TestInt24RoundTrip
// check from the integer side.

// float32ToInt16 converts one sample, rounding toward zero, and clips to
// the representable range first so the conversion never overflows.
func float32ToInt16(f float32) int16 {
	f = clip(f)
	return int16(f * 32767)
}

func int16ToFloat32(i int16) float32 {
	return float32(i) / 32767
}

// float32ToInt24 packs a sample into the low 3 bytes of an int32, the
// common "24-in-32" layout ALSA and CoreAudio both use for S24 formats.
func float32ToInt24(f float32) int32 {
	f = clip(f)
	return int32(f * 8388607)
}

func int24ToFloat32(i int32) float32 {
	// Sign-extend from 24 bits before converting.
	i = (i << 8) >> 8
	return float32(i) / 8388607
}

// float32ToInt32 and int32ToFloat32 go through the 24-bit domain: the
// sample is widened from 24 bits by shifting left 8, and narrowed back by
// shifting right 8 before the 24-bit conversion.
func float32ToInt32(f float32) int32 {
	return float32ToInt24(f) << 8
}

func int32ToFloat32(i int32) float32 {
	return int24ToFloat32(i >> 8)
}

func clip(f float32) float32 {
	switch {
	case f > 1:
		return 1
	case f < -1:
		return -1
	default:
		return f
	}
}

// sampleFormat names a fixed-point native format a backend may negotiate
// down to when float32 is refused.
type sampleFormat int

const (
	formatFloat32 sampleFormat = iota
	formatInt16
	formatInt24
	formatInt32
)

// encodeNative converts one period of canonical float32 samples into format,
// writing the packed bytes into dst (sized for frames*channels samples at
// the format's native width) and returns the byte count written.
func encodeNative(format sampleFormat, src []float32, dst []byte) int {
	switch format {
	case formatInt16:
		for i, f := range src {
			v := uint16(float32ToInt16(f))
			dst[2*i] = byte(v)
			dst[2*i+1] = byte(v >> 8)
		}
		return len(src) * 2
	case formatInt24:
		for i, f := range src {
			v := uint32(float32ToInt24(f))
			dst[3*i] = byte(v)
			dst[3*i+1] = byte(v >> 8)
			dst[3*i+2] = byte(v >> 16)
		}
		return len(src) * 3
	case formatInt32:
		for i, f := range src {
			v := uint32(float32ToInt32(f))
			dst[4*i] = byte(v)
			dst[4*i+1] = byte(v >> 8)
			dst[4*i+2] = byte(v >> 16)
			dst[4*i+3] = byte(v >> 24)
		}
		return len(src) * 4
	default:
		panic("backend: encodeNative called with formatFloat32")
	}
}

// decodeNative is encodeNative's inverse.
func decodeNative(format sampleFormat, src []byte, dst []float32) int {
	switch format {
	case formatInt16:
		n := len(src) / 2
		for i := 0; i < n; i++ {
			v := int16(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
			dst[i] = int16ToFloat32(v)
		}
		return n
	case formatInt24:
		n := len(src) / 3
		for i := 0; i < n; i++ {
			v := int32(uint32(src[3*i]) | uint32(src[3*i+1])<<8 | uint32(src[3*i+2])<<16)
			dst[i] = int24ToFloat32(v)
		}
		return n
	case formatInt32:
		n := len(src) / 4
		for i := 0; i < n; i++ {
			v := int32(uint32(src[4*i]) | uint32(src[4*i+1])<<8 | uint32(src[4*i+2])<<16 | uint32(src[4*i+3])<<24)
			dst[i] = int32ToFloat32(v)
		}
		return n
	default:
		panic("backend: decodeNative called with formatFloat32")
	}
}
