package blockfilter

import "testing"

// popcountWindow counts set bits in the bitsPerMask-bit window starting at
// bit offset start.
func popcountWindow(v *bitVector, start, bitsPerMask int) int {
	count := 0
	for i := 0; i < bitsPerMask; i++ {
		if v.get(start + i) {
			count++
		}
	}
	return count
}

func TestMaskTable32PopcountInvariant(t *testing.T) {
	table := newMaskTable32()

	// Every sliding window the construction touched must keep popcount in
	// [kMinBitsSet, kMaxBitsSet], per spec §8 property 6.
	for start := 0; start < maskNumMasks; start++ {
		pc := popcountWindow(table.v, start, maskBitsPerMask32)
		if pc < maskMinBitsSet32 || pc > maskMaxBitsSet32 {
			t.Fatalf("window at bit %d has popcount %d, want [%d,%d]", start, pc, maskMinBitsSet32, maskMaxBitsSet32)
		}
	}
}

func TestMaskTable64PopcountInvariant(t *testing.T) {
	table := newMaskTable64()

	for start := 0; start < maskNumMasks; start++ {
		pc := popcountWindow(table.v, start, maskBitsPerMask64)
		if pc < maskMinBitsSet64 || pc > maskMaxBitsSet64 {
			t.Fatalf("window at bit %d has popcount %d, want [%d,%d]", start, pc, maskMinBitsSet64, maskMaxBitsSet64)
		}
	}
}

func TestMaskTableDeterministic(t *testing.T) {
	a := newMaskTable32()
	b := newMaskTable32()

	for i := range a.v.bits {
		if a.v.bits[i] != b.v.bits[i] {
			t.Fatalf("mask table construction is not deterministic at byte %d", i)
		}
	}
}

func TestMaskTable32MaskPopcount(t *testing.T) {
	for _, h := range []uint32{0, 1, 0xdeadbeef, 0xffffffff, 12345} {
		m := globalMaskTable32.mask(h)
		pc := 0
		for v := m; v != 0; v &= v - 1 {
			pc++
		}
		if pc < maskMinBitsSet32 || pc > maskMaxBitsSet32 {
			t.Fatalf("mask(%x) has popcount %d, want [%d,%d]", h, pc, maskMinBitsSet32, maskMaxBitsSet32)
		}
	}
}

func TestMaskTable64MaskPopcount(t *testing.T) {
	for _, h := range []uint64{0, 1, 0xdeadbeefcafebabe, 0xffffffffffffffff, 98765} {
		m := globalMaskTable64.mask(h)
		pc := 0
		for v := m; v != 0; v &= v - 1 {
			pc++
		}
		if pc < maskMinBitsSet64 || pc > maskMaxBitsSet64 {
			t.Fatalf("mask(%x) has popcount %d, want [%d,%d]", h, pc, maskMinBitsSet64, maskMaxBitsSet64)
		}
	}
}
