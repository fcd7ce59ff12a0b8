package aio

import (
	"context"
	"testing"
	"time"
)

func TestRecordFramesYieldsSilence(t *testing.T) {
	withNullBackend(t)
	mic, err := DefaultMicrophone(context.Background())
	if err != nil {
		t.Fatalf("DefaultMicrophone: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := Record[Mono](ctx, mic)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	count := 0
	for f := range stream.Frames() {
		if f[0] != 0 {
			t.Fatalf("expected silence from the null backend, got %v", f)
		}
		count++
	}
	if count != stream.Len() {
		t.Fatalf("iterated %d frames, Len() = %d", count, stream.Len())
	}
}

func TestRecordUnsupportedLayout(t *testing.T) {
	withNullBackend(t)
	mic, err := DefaultMicrophone(context.Background())
	if err != nil {
		t.Fatalf("DefaultMicrophone: %v", err)
	}
	mic.ep.supportsMask = 0

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Record[Mono](ctx, mic); err != ErrUnsupported {
		t.Fatalf("Record = %v, want ErrUnsupported", err)
	}
}
