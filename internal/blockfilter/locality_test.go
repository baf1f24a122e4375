package blockfilter

import "testing"

// cacheLineOf returns which 64-byte-aligned cache line a word index falls
// into, given the word's size in bytes.
func cacheLineOf(wordIndex, wordBytes int) int {
	return (wordIndex * wordBytes) / cacheLineSize
}

// TestCacheSectorized32Locality checks spec §8 property 4 for the variant
// where it matters most: every word touched by one key's Insert/Lookup
// must land in the same 64-byte cache line, since that is the entire point
// of sectorizing within one block.
func TestCacheSectorized32Locality(t *testing.T) {
	f, err := NewCacheSectorized32(100000, 24)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range mixedKeys(0, 2000) {
		wordA, _, wordB, _ := f.addr(k)
		lineA := cacheLineOf(int(wordA), 4)
		lineB := cacheLineOf(int(wordB), 4)
		if lineA != lineB {
			t.Fatalf("key %x: sector words in different cache lines (%d vs %d)", k, lineA, lineB)
		}
	}
}

// TestCacheSectorized64Locality is CacheSectorized32's 64-bit counterpart.
func TestCacheSectorized64Locality(t *testing.T) {
	f, err := NewCacheSectorized64(100000, 24)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range mixedKeys(0, 2000) {
		wordA, _, wordB, _ := f.addr(k)
		lineA := cacheLineOf(int(wordA), 8)
		lineB := cacheLineOf(int(wordB), 8)
		if lineA != lineB {
			t.Fatalf("key %x: sector words in different cache lines (%d vs %d)", k, lineA, lineB)
		}
	}
}

// TestSIMDGatherBlockedLocality checks that every one of the 16 lanes
// touched by a key falls within the same cache line (they are, by
// construction, always the same 16-word block).
func TestSIMDGatherBlockedLocality(t *testing.T) {
	f, err := NewSIMDGatherBlocked(100000, 24)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range mixedKeys(0, 500) {
		block := uint32(k) & f.numBlocksMask
		base := int(block) * simdLanes
		line := cacheLineOf(base, 4)
		for lane := 1; lane < simdLanes; lane++ {
			if cacheLineOf(base+lane, 4) != line {
				t.Fatalf("key %x: lane %d falls outside block's cache line", k, lane)
			}
		}
	}
}

// TestRegisterBlocked32AddressDisjointness checks the addressing discipline
// doc.go calls out: the block-selection field and the mask-position fields
// must never overlap. For a filter sized at the maximum safe
// num_blocks_log, we confirm the mask depends only on the reserved low 15
// hash bits and the block only on the hash bits above them.
func TestRegisterBlocked32AddressDisjointness(t *testing.T) {
	f, err := NewRegisterBlocked32(1<<20, 4)
	if err != nil {
		t.Fatal(err)
	}
	if f.numBlocksLog > register32MaxLog {
		t.Fatalf("num_blocks_log %d exceeds the safe maximum %d", f.numBlocksLog, register32MaxLog)
	}

	for _, k := range mixedKeys(0, 1000) {
		block, mask := f.addr32(k)
		if _, lowMask := f.addr32(k & 0x7fff); lowMask != mask {
			t.Fatalf("key %x: mask %x depends on hash bits beyond the reserved low 15, overlapping the block field", k, mask)
		}
		if highBlock, _ := f.addr32(k &^ 0x7fff); highBlock != block {
			t.Fatalf("key %x: block %d depends on the low 15 mask-field bits", k, block)
		}
	}
}
