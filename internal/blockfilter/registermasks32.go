package blockfilter

// RegisterBlockedMasks32 is the register-blocked 32-bit variant whose
// OR-mask comes from the pre-generated, popcount-constrained table
// (masks.go) instead of three independently-extracted hash fields: same
// one-word-per-key addressing as RegisterBlocked32, tighter accuracy at the
// same space. Grounded on
// _examples/original_source/include/register_blocked_BF_32bit_Masks.h.
type RegisterBlockedMasks32 struct {
	store         *AlignedWords[uint32]
	numBlocksLog  int
	numBlocksMask uint32
}

// registerMasks32MaxLog matches the original header's MAX_NUM_BLOCKS = 1<<16.
const registerMasks32MaxLog = 16

// NewRegisterBlockedMasks32 builds a filter sized for nKeys keys at
// bitsPerKey bits each.
func NewRegisterBlockedMasks32(nKeys, bitsPerKey int) (*RegisterBlockedMasks32, error) {
	log, err := numBlocksLog(nKeys, bitsPerKey, 32, registerMasks32MaxLog)
	if err != nil {
		return nil, err
	}

	numBlocks := 1 << log
	if err := checkAllocSize(numBlocks * 4); err != nil {
		return nil, err
	}

	return &RegisterBlockedMasks32{
		store:         NewAlignedWords[uint32](numBlocks),
		numBlocksLog:  log,
		numBlocksMask: uint32(numBlocks - 1),
	}, nil
}

func (r *RegisterBlockedMasks32) addr(hash uint64) (block uint32, mask uint32) {
	h := uint32(hash)
	block = (h >> (32 - r.numBlocksLog)) & r.numBlocksMask
	mask = globalMaskTable32.mask(h)
	return block, mask
}

// Insert sets each key's table-drawn mask bits into its block.
func (r *RegisterBlockedMasks32) Insert(keys []uint64) {
	words := r.store.Words()
	var blocks [batchChunk]uint32
	var masks [batchChunk]uint32

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
func (r *RegisterBlockedMasks32) Lookup(keys []uint64, out []uint32) int {
	words := r.store.Words()
	var blocks [batchChunk]uint32
	var masks [batchChunk]uint32

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
func (r *RegisterBlockedMasks32) Size() int {
	return r.store.Len() * 4
}
