package blockfilter

// CacheSectorized64 is the 64-bit-word counterpart of CacheSectorized32: a
// block is 8 uint64 sectors (still one 64-byte cache line), split into two
// groups of 4, each sector tested with a 6-bit-position, 4-bit mask.
// Grounded on
// _examples/original_source/include/cache_sectorized_BF_64bit.h for sector
// geometry; the layout below is SPEC_FULL.md's canonical, internally
// consistent choice rather than that header's, whose Insert and Lookup
// disagree about which hash half picks the group-A sector.
//
// Bit layout of the 64-bit input hash, low to high:
//
//	[0:2)   sector_A  (2 bits, 0..3)
//	[2:4)   sector_B  (2 bits, 0..3)
//	[4:28)  posA0..3  (4 x 6 bits)
//	[28:52) posB0..3  (4 x 6 bits)
//	[52:64) block     (top 12 bits)
type CacheSectorized64 struct {
	store         *AlignedWords[uint64]
	numBlocksLog  int
	numBlocksMask uint64
}

// cacheSectorized64BitsPerBlock is one cache line: 8 sectors x 64 bits.
const cacheSectorized64BitsPerBlock = 512

// cacheSectorized64MaxLog leaves the top 12 bits of the hash for the block
// field, disjoint from the 52 bits below it.
const cacheSectorized64MaxLog = 12

// NewCacheSectorized64 builds a filter sized for nKeys keys at bitsPerKey
// bits each.
func NewCacheSectorized64(nKeys, bitsPerKey int) (*CacheSectorized64, error) {
	log, err := numBlocksLog(nKeys, bitsPerKey, cacheSectorized64BitsPerBlock, cacheSectorized64MaxLog)
	if err != nil {
		return nil, err
	}

	numBlocks := 1 << log
	numWords := numBlocks * 8
	if err := checkAllocSize(numWords * 8); err != nil {
		return nil, err
	}

	return &CacheSectorized64{
		store:         NewAlignedWords[uint64](numWords),
		numBlocksLog:  log,
		numBlocksMask: uint64(numBlocks - 1),
	}, nil
}

// addr computes the two word indices and two masks for one key.
func (c *CacheSectorized64) addr(hash uint64) (wordA, maskA, wordB, maskB uint64) {
	block := (hash >> 52) & c.numBlocksMask

	sectorA := hash & 0x3
	sectorB := (hash >> 2) & 0x3

	posA0 := (hash >> 4) & 0x3f
	posA1 := (hash >> 10) & 0x3f
	posA2 := (hash >> 16) & 0x3f
	posA3 := (hash >> 22) & 0x3f
	maskA = uint64(1)<<posA0 | uint64(1)<<posA1 | uint64(1)<<posA2 | uint64(1)<<posA3

	posB0 := (hash >> 28) & 0x3f
	posB1 := (hash >> 34) & 0x3f
	posB2 := (hash >> 40) & 0x3f
	posB3 := (hash >> 46) & 0x3f
	maskB = uint64(1)<<posB0 | uint64(1)<<posB1 | uint64(1)<<posB2 | uint64(1)<<posB3

	wordA = block*8 + sectorA
	wordB = block*8 + 4 + sectorB
	return
}

// Insert sets both sectors' mask bits for each key, in the same two-pass
// addressing-then-touch shape CacheSectorized32 uses.
func (c *CacheSectorized64) Insert(keys []uint64) {
	words := c.store.Words()

	var wordAs, maskAs, wordBs, maskBs [sectorBatch]uint64

	n := len(keys)
	for i := 0; i < n; i += sectorBatch {
		end := i + sectorBatch
		if end > n {
			end = n
		}
		width := end - i

		for j := 0; j < width; j++ {
			wordAs[j], maskAs[j], wordBs[j], maskBs[j] = c.addr(keys[i+j])
		}
		for j := 0; j < width; j++ {
			words[wordAs[j]] |= maskAs[j]
			words[wordBs[j]] |= maskBs[j]
		}
	}
}

// Lookup ANDs the two per-sector membership tests for each key.
func (c *CacheSectorized64) Lookup(keys []uint64, out []uint32) int {
	words := c.store.Words()

	var wordAs, maskAs, wordBs, maskBs [sectorBatch]uint64

	n := len(keys)
	for i := 0; i < n; i += sectorBatch {
		end := i + sectorBatch
		if end > n {
			end = n
		}
		width := end - i

		for j := 0; j < width; j++ {
			wordAs[j], maskAs[j], wordBs[j], maskBs[j] = c.addr(keys[i+j])
		}
		for j := 0; j < width; j++ {
			hitA := words[wordAs[j]]&maskAs[j] == maskAs[j]
			hitB := words[wordBs[j]]&maskBs[j] == maskBs[j]
			if hitA && hitB {
				out[i+j] = 1
			} else {
				out[i+j] = 0
			}
		}
	}
	return n
}

// Size returns the filter's backing allocation in bytes.
func (c *CacheSectorized64) Size() int {
	return c.store.Len() * 8
}
