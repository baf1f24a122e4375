package blockfilter

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrAllocation is returned by a variant's Build/New constructor when the
// requested geometry would require a buffer this package refuses to
// allocate. Go has no recoverable out-of-memory signal from make(), so this
// stands in for spec §7's "allocation failure during filter construction":
// a sanity ceiling converts a would-be multi-gigabyte allocation into a
// returned error instead of an unrecoverable panic deep inside make().
var ErrAllocation = errors.New("blockfilter: allocation failed")

// ErrInvalidParams is returned when n_keys or bits_per_key fall outside the
// domain spec §7 calls a programming error (n_keys >= 1, bits_per_key >= 1).
// Construction reports it rather than panicking so library callers can
// surface a clean message instead of a stack trace.
var ErrInvalidParams = errors.New("blockfilter: invalid construction parameters")

// maxFilterBytes bounds any single variant's backing allocation. Spec §5
// expects buffers "up to ~16 MiB"; this ceiling is two orders of magnitude
// above that to leave headroom for large benchmark sweeps while still
// catching a misconfigured n_keys/bits_per_key that would otherwise try to
// allocate gigabytes.
const maxFilterBytes = 1 << 31

// Filter is the contract every variant in this package satisfies. It
// mirrors spec §6's external interface: Insert writes keys into the
// structure, Lookup reports membership into a caller-provided output slice
// and returns the number of keys processed.
type Filter interface {
	Insert(keys []uint64)
	Lookup(keys []uint64, out []uint32) int
	// Size returns the filter's backing allocation in bytes.
	Size() int
}

// numBlocksLog computes ceil(log2(blocks needed)) for a variant whose block
// holds bitsPerBlock bits, given a target of nKeys*bitsPerKey total bits,
// clamped to maxLog. This is the power-of-two sizing rule every variant
// shares, in the same spirit as internal/limite/bloom/helpers.go's
// EstimateParameters rounding a target bit count up to a block multiple;
// here the rounding target is a block count that is itself a power of two,
// since every variant addresses blocks with `& (numBlocks-1)` rather than
// modulo.
func numBlocksLog(nKeys, bitsPerKey, bitsPerBlock, maxLog int) (int, error) {
	if nKeys < 1 || bitsPerKey < 1 {
		return 0, fmt.Errorf("%w: n_keys and bits_per_key must be >= 1", ErrInvalidParams)
	}

	totalBits := uint64(nKeys) * uint64(bitsPerKey)
	blocksNeeded := (totalBits + uint64(bitsPerBlock) - 1) / uint64(bitsPerBlock)
	if blocksNeeded < 1 {
		blocksNeeded = 1
	}

	log := bits.Len64(blocksNeeded - 1)
	if log > maxLog {
		log = maxLog
	}
	return log, nil
}

// checkAllocSize returns ErrAllocation if a buffer of byteLen bytes exceeds
// this package's sanity ceiling.
func checkAllocSize(byteLen int) error {
	if byteLen < 0 || byteLen > maxFilterBytes {
		return fmt.Errorf("%w: requested %d bytes exceeds limit", ErrAllocation, byteLen)
	}
	return nil
}
