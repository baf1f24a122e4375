package main

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"sectorfilter.dev/internal/blockfilter"
)

// prehash turns a sequential integer id into a realistic, non-sequential
// 64-bit input the way a real workload's join keys would arrive, using
// xxhash the same way internal/limite/bloom/filter.go hashes caller-supplied
// bytes before they reach block addressing. The filter core itself never
// sees raw ids — only the mixed hash below.
func prehash(id uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], id)
	return xxhash.Sum64(buf[:])
}

// workload holds the shared insert and lookup key sets one benchmark run
// sweeps every variant against, mirroring main_benchmark.cpp's RunBenchmark
// taking `keys` and `lookup_keys` as inputs shared across variants rather
// than regenerated per variant.
type workload struct {
	insertKeys []uint64
	lookupKeys []uint64
}

// buildWorkload generates numKeys insert keys from ids [0, numKeys) and
// numKeys lookup keys from the disjoint range [numKeys, 2*numKeys), each
// pre-hashed with xxhash and then run through the package's own mixing
// finalizer, matching spec.md §8's "all inputs are first passed through the
// 64-bit mixer before being fed to Insert/Lookup."
func buildWorkload(numKeys int) workload {
	insert := make([]uint64, numKeys)
	lookup := make([]uint64, numKeys)

	for i := 0; i < numKeys; i++ {
		insert[i] = blockfilter.Mix64(prehash(uint64(i)))
		lookup[i] = blockfilter.Mix64(prehash(uint64(i + numKeys)))
	}

	return workload{insertKeys: insert, lookupKeys: lookup}
}
