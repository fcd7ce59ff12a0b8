package backend

import "testing"

func TestInt16RoundTrip(t *testing.T) {
	for i := -32767; i <= 32767; i += 37 {
		want := int16(i)
		got := float32ToInt16(int16ToFloat32(want))
		if got != want {
			t.Fatalf("round trip %d: got %d", want, got)
		}
	}
}

func TestInt24RoundTrip(t *testing.T) {
	samples := []int32{0, 1, -1, 8388607, -8388607, 4200000, -4200000}
	for _, want := range samples {
		got := float32ToInt24(int24ToFloat32(want))
		if got != want {
			t.Fatalf("round trip %d: got %d", want, got)
		}
	}
}

func TestEncodeDecodeInt16Period(t *testing.T) {
	src := []float32{0, 0.5, -0.5, 1, -1, 0.25}
	buf := make([]byte, len(src)*2)
	n := encodeNative(formatInt16, src, buf)
	if n != len(buf) {
		t.Fatalf("encodeNative wrote %d bytes, want %d", n, len(buf))
	}
	dst := make([]float32, len(src))
	frames := decodeNative(formatInt16, buf, dst)
	if frames != len(src) {
		t.Fatalf("decodeNative returned %d samples, want %d", frames, len(src))
	}
	for i := range src {
		if diff := dst[i] - src[i]; diff > 0.0001 || diff < -0.0001 {
			t.Fatalf("sample %d: got %v want %v", i, dst[i], src[i])
		}
	}
}

func TestClip(t *testing.T) {
	cases := map[float32]float32{2: 1, -2: -1, 0.3: 0.3}
	for in, want := range cases {
		if got := clip(in); got != want {
			t.Fatalf("clip(%v) = %v, want %v", in, got, want)
		}
	}
}
