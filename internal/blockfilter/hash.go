package blockfilter

// Mix64 and Mix32 are Murmur-style avalanche finalizers: changing any one
// input bit flips roughly half of the output bits. Every filter variant in
// this package assumes its input hashes already have this property —
// callers pre-hash raw keys with their own mixing function (or these) before
// calling Insert/Lookup.
//
// The multiplier constants match DuckDB's hash finalizer.

const (
	mul64 = 0xd6e8feb86659fd93
	mul32 = 0xd6e8feb9
)

// Mix64 avalanches a 64-bit word through three xor-shift/multiply rounds.
func Mix64(x uint64) uint64 {
	x ^= x >> 32
	x *= mul64
	x ^= x >> 32
	x *= mul64
	x ^= x >> 32
	x *= mul64
	return x
}

// Mix32 avalanches a 32-bit word through three xor-shift/multiply rounds.
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= mul32
	x ^= x >> 16
	x *= mul32
	x ^= x >> 16
	x *= mul32
	return x
}

// batchChunk is the stride-1 body width the batch hashers process between
// the unaligned head and tail, matching the SIMD batch width the blocked
// filter variants use for their own two-pass insert/lookup loops.
const batchChunk = 16

// MixBatch64 avalanches every element of src into dst, which must be at
// least as long as src. The loop is a fixed-width, stride-1 body processed
// batchChunk elements at a time from index 0, followed by a tail for the
// last len(src)%batchChunk elements — the shape a compiler can
// auto-vectorize without loop peeling. There is no separate head loop: the
// body starts at src[0] whatever its address, relying only on the natural
// 8-byte alignment of a []uint64.
func MixBatch64(dst, src []uint64) {
	n := len(src)
	if len(dst) < n {
		panic("blockfilter: MixBatch64 dst shorter than src")
	}

	body := n - n%batchChunk
	for i := 0; i < body; i += batchChunk {
		for j := 0; j < batchChunk; j++ {
			dst[i+j] = Mix64(src[i+j])
		}
	}
	for i := body; i < n; i++ {
		dst[i] = Mix64(src[i])
	}
}

// MixBatch32 is MixBatch64's 32-bit counterpart.
func MixBatch32(dst, src []uint32) {
	n := len(src)
	if len(dst) < n {
		panic("blockfilter: MixBatch32 dst shorter than src")
	}

	body := n - n%batchChunk
	for i := 0; i < body; i += batchChunk {
		for j := 0; j < batchChunk; j++ {
			dst[i+j] = Mix32(src[i+j])
		}
	}
	for i := body; i < n; i++ {
		dst[i] = Mix32(src[i])
	}
}
