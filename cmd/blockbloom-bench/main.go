// blockbloom-bench is the external benchmark harness spec.md §1 scopes out
// of the filter core: it builds a synthetic key/lookup-key workload, runs
// every variant in internal/blockfilter against it, and reports
// cycles-per-tuple and observed false-positive rate for each.
//
// Usage
// =====
//
//	blockbloom-bench [log2_num_keys] [bits_per_key] [log2_num_lookups]
//
// All three positional arguments are optional; with none given, the
// defaults from the original C++ benchmark (main_benchmark.cpp) apply:
// 4096 keys (2^12), 12 bits/key, 2^20 total lookups spread across
// repeated passes over the lookup key set.
//
// Exit Codes
// ==========
//
// 0: the benchmark ran to completion.
// 1: the arguments could not be parsed: more than three were given, or one
// is not a non-negative integer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"sectorfilter.dev/internal/blockfilter"
)

type config struct {
	log2NumKeys    int
	bitsPerKey     int
	log2NumLookups int
}

func defaultConfig() config {
	return config{log2NumKeys: 12, bitsPerKey: 12, log2NumLookups: 20}
}

func parseArgs(args []string, cfg config) (config, error) {
	if len(args) > 3 {
		return cfg, fmt.Errorf("expected at most 3 positional arguments, got %d", len(args))
	}

	fields := []*int{&cfg.log2NumKeys, &cfg.bitsPerKey, &cfg.log2NumLookups}
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			return cfg, fmt.Errorf("argument %d (%q) must be a non-negative integer", i+1, arg)
		}
		*fields[i] = v
	}
	return cfg, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [log2_num_keys] [bits_per_key] [log2_num_lookups]\n", os.Args[0])
	}
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	cfg, err := parseArgs(flag.Args(), defaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockbloom-bench: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	run(logger, cfg)
}

// variantBuilder constructs one named filter variant at the benchmark's
// chosen geometry, so run can treat every variant uniformly through the
// blockfilter.Filter interface.
type variantBuilder struct {
	name  string
	build func(nKeys, bitsPerKey int) (blockfilter.Filter, error)
}

var variants = []variantBuilder{
	{"register-blocked/32", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewRegisterBlocked32(n, b) }},
	{"register-blocked/64", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewRegisterBlocked64(n, b) }},
	{"register-blocked/masks/32", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewRegisterBlockedMasks32(n, b) }},
	{"register-blocked/masks/64", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewRegisterBlockedMasks64(n, b) }},
	{"two-word register-blocked", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewTwoWordBlocked32(n, b) }},
	{"cache-sectorized/32", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewCacheSectorized32(n, b) }},
	{"cache-sectorized/64", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewCacheSectorized64(n, b) }},
	{"SIMD-gather blocked", func(n, b int) (blockfilter.Filter, error) { return blockfilter.NewSIMDGatherBlocked(n, b) }},
}

func run(logger *slog.Logger, cfg config) {
	numKeys := 1 << cfg.log2NumKeys
	numLookups := 1 << cfg.log2NumLookups
	lookupRepeat := numLookups / numKeys
	if lookupRepeat < 1 {
		lookupRepeat = 1
	}

	fmt.Printf("Number of keys: %d\n\n", numKeys)
	logger.Info("generating workload", "keys", numKeys, "bits_per_key", cfg.bitsPerKey, "lookup_repeat", lookupRepeat)

	w := buildWorkload(numKeys)
	clock := wallClockCounter{}

	results := make([]result, 0, len(variants))
	for _, v := range variants {
		f, err := v.build(numKeys, cfg.bitsPerKey)
		if err != nil {
			logger.Error("failed to build variant", "variant", v.name, "error", err)
			continue
		}

		logger.Info("built filter", "variant", v.name, "bytes", f.Size())
		r := runVariant(v.name, f, f.Size(), clock, w, lookupRepeat)
		printBlock(os.Stdout, r)
		results = append(results, r)
	}

	printSummaryTable(os.Stdout, results)
}
