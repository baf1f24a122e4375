package blockfilter

// RegisterBlockedMasks64 is the 64-bit-word counterpart of
// RegisterBlockedMasks32: one block is one uint64, its mask drawn from
// maskTable64's 57-bit popcount-constrained entries. Grounded on
// _examples/original_source/include/register_blocked_BF_64bit_Masks.h.
type RegisterBlockedMasks64 struct {
	store         *AlignedWords[uint64]
	numBlocksLog  int
	numBlocksMask uint64
}

// registerMasks64MaxLog matches the original header's MAX_NUM_BLOCKS = 1<<31;
// checkAllocSize rejects any construction that would actually try to reach
// that size before make() is ever called.
const registerMasks64MaxLog = 31

// NewRegisterBlockedMasks64 builds a filter sized for nKeys keys at
// bitsPerKey bits each.
func NewRegisterBlockedMasks64(nKeys, bitsPerKey int) (*RegisterBlockedMasks64, error) {
	log, err := numBlocksLog(nKeys, bitsPerKey, 64, registerMasks64MaxLog)
	if err != nil {
		return nil, err
	}

	numBlocks := 1 << log
	if err := checkAllocSize(numBlocks * 8); err != nil {
		return nil, err
	}

	return &RegisterBlockedMasks64{
		store:         NewAlignedWords[uint64](numBlocks),
		numBlocksLog:  log,
		numBlocksMask: uint64(numBlocks - 1),
	}, nil
}

func (r *RegisterBlockedMasks64) addr(hash uint64) (block uint64, mask uint64) {
	block = (hash >> (64 - r.numBlocksLog)) & r.numBlocksMask
	mask = globalMaskTable64.mask(hash)
	return block, mask
}

// Insert sets each key's table-drawn mask bits into its block.
func (r *RegisterBlockedMasks64) Insert(keys []uint64) {
	words := r.store.Words()
	var blocks [batchChunk]uint64
	var masks [batchChunk]uint64

	n := len(keys)
	for i := 0; i < n; i += batchChunk {
		end := i + batchChunk
		if end > n {
			end = n
		}
		width := end - i
		for j := 0; j < width; j++ {
			blocks[j], masks[j] = r.addr(keys[i+j])
		}
		for j := 0; j < width; j++ {
			words[blocks[j]] |= masks[j]
		}
	}
}

// Lookup reports membership for each key.
func (r *RegisterBlockedMasks64) Lookup(keys []uint64, out []uint32) int {
	words := r.store.Words()
	var blocks [batchChunk]uint64
	var masks [batchChunk]uint64

	n := len(keys)
	for i := 0; i < n; i += batchChunk {
		end := i + batchChunk
		if end > n {
			end = n
		}
		width := end - i
		for j := 0; j < width; j++ {
			blocks[j], masks[j] = r.addr(keys[i+j])
		}
		for j := 0; j < width; j++ {
			if words[blocks[j]]&masks[j] == masks[j] {
				out[i+j] = 1
			} else {
				out[i+j] = 0
			}
		}
	}
	return n
}

// Size returns the filter's backing allocation in bytes.
func (r *RegisterBlockedMasks64) Size() int {
	return r.store.Len() * 8
}
