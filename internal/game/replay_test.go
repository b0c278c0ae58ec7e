package game

import (
	"encoding/binary"
	"errors"
	"testing"
)

func replayData(seed uint32, records ...uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, seed)
	for _, v := range records {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	return b
}

func TestReplayInput(t *testing.T) {
	r, err := NewReplayInput(replayData(0xdeadbeef,
		2, UpKey,
		1, LeftKey,
		0, 0,
	))
	if err != nil {
		t.Fatalf("NewReplayInput: %v", err)
	}
	if r.Seed != 0xdeadbeef {
		t.Errorf("seed = %#x", r.Seed)
	}

	// The first record covers 2 ticks; later ones cover one more than stored.
	want := []uint32{UpKey, UpKey, LeftKey, LeftKey, 0}
	for i, w := range want {
		got, ok := r.Next()
		if !ok || got != w {
			t.Fatalf("tick %d: Next() = %#x, %v, want %#x", i, got, ok, w)
		}
	}
	if _, ok := r.Next(); ok {
		t.Error("Next after the end reported more input")
	}
}

func TestReplayInputSkipsEmptyFirstRecord(t *testing.T) {
	r, err := NewReplayInput(replayData(1, 0, UpKey, 0, DownKey))
	if err != nil {
		t.Fatalf("NewReplayInput: %v", err)
	}
	if got, ok := r.Next(); !ok || got != DownKey {
		t.Errorf("Next() = %#x, %v, want the second record", got, ok)
	}
}

func TestReplayInputTruncated(t *testing.T) {
	for _, n := range []int{0, 3, 7, 10} {
		data := make([]byte, n)
		if _, err := NewReplayInput(data); !errors.Is(err, ErrReplayTruncated) {
			t.Errorf("%d bytes: error %v", n, err)
		}
	}
	if _, err := NewReplayInput(replayData(5)); err != nil {
		t.Errorf("seed only: %v", err)
	}
}
