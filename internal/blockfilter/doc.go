// Package blockfilter implements a family of cache-line-blocked approximate
// set membership filters for analytical workloads: hash-join probe
// filtering, predicate pushdown, and similar cases where a compact
// structure answers "definitely not present" cheaply for the large
// majority of probes.
//
// Every variant shares one contract: build once from a count of keys and a
// bits-per-key budget, then insert and look up batches of pre-mixed 64-bit
// hashes. None of them delete, resize, or persist; they are single-writer,
// build-once / probe-many structures meant to be probed by many readers
// concurrently once construction finishes.
//
// The Core Idea
// =============
//
// A classic Bloom filter scatters k bits across the whole bitset, so a
// single Insert or Lookup costs k cache misses. Every variant here instead
// restricts all of one key's bits to a single "block" — one machine word
// for the register-blocked variants, one 64-byte cache line for the
// cache-sectorized variant — so the structure pays at most one cache miss
// per operation. What differs between variants is how many bits fit in a
// block, how the bit positions inside a block are chosen, and how many
// blocks (therefore cache lines) a single key touches.
//
// Variants
// ========
//
//   - RegisterBlocked32 / RegisterBlocked64: one word per key, k bits OR'd
//     in from disjoint fields of a single hash.
//   - RegisterBlockedMasks32 / RegisterBlockedMasks64: same block shape,
//     but the k-bit pattern comes from a pre-generated table of
//     popcount-constrained masks instead of k independently-extracted
//     bits, which tightens the false-positive rate at the same space.
//   - TwoWordBlocked32: two independently addressed 32-bit words (which
//     can lie in different cache lines), each carrying its own 5-bit
//     mask; a lookup ANDs both results.
//   - CacheSectorized32 / CacheSectorized64: one 64-byte cache line holds
//     16 (or 8) word-sized sectors, split into two groups; one sector per
//     group is touched per key, each tested the same way a register-blocked
//     filter tests its single word. This approaches the accuracy of an
//     8-hash filter while remaining a single cache-line probe.
//   - SIMDGatherBlocked: a block is a fixed 16-lane array of 32-bit words;
//     one bit per lane is set from a hash multiplied against a fixed
//     vector of odd constants. Expressed as a constant-trip-count loop over
//     an array so the shape matches what real SIMD codegen (or a future
//     assembly backend) would need, without this package shipping
//     unverified hand-written assembly.
//
// Addressing Discipline
// ======================
//
// The one rule every variant must respect: the hash bits used to select a
// block must be disjoint from the hash bits used to select bits within that
// block. Reusing bits correlates the block choice with the in-block bit
// pattern and silently inflates the false-positive rate — this is called
// out per-variant in the package's source comments at the point the fields
// are carved out of the hash word.
package blockfilter
