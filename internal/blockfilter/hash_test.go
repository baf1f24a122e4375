package blockfilter

import "testing"

func TestMix64Deterministic(t *testing.T) {
	if Mix64(12345) != Mix64(12345) {
		t.Fatal("Mix64 is not a pure function of its input")
	}
}

func TestMix64Avalanche(t *testing.T) {
	base := Mix64(0)
	flipped := Mix64(1)

	diff := base ^ flipped
	popcount := 0
	for diff != 0 {
		popcount += int(diff & 1)
		diff >>= 1
	}

	// Flipping one input bit should flip roughly half of the 64 output
	// bits. We only assert it is far from zero, not an exact count: this
	// is a smoke test for the finalizer's shape, not a statistical proof.
	if popcount < 16 {
		t.Fatalf("Mix64 avalanche too weak: only %d bits changed", popcount)
	}
}

func TestMix32Deterministic(t *testing.T) {
	if Mix32(777) != Mix32(777) {
		t.Fatal("Mix32 is not a pure function of its input")
	}
}

func TestMixBatch64MatchesPerElement(t *testing.T) {
	src := make([]uint64, 40)
	for i := range src {
		src[i] = uint64(i * 7919)
	}

	got := make([]uint64, len(src))
	MixBatch64(got, src)

	for i, v := range src {
		if want := Mix64(v); got[i] != want {
			t.Fatalf("MixBatch64[%d] = %x, want %x", i, got[i], want)
		}
	}
}

func TestMixBatch32MatchesPerElement(t *testing.T) {
	src := make([]uint32, 35)
	for i := range src {
		src[i] = uint32(i*104729 + 1)
	}

	got := make([]uint32, len(src))
	MixBatch32(got, src)

	for i, v := range src {
		if want := Mix32(v); got[i] != want {
			t.Fatalf("MixBatch32[%d] = %x, want %x", i, got[i], want)
		}
	}
}

func TestMixBatch64PanicsOnShortDst(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for dst shorter than src")
		}
	}()
	MixBatch64(make([]uint64, 1), make([]uint64, 2))
}
