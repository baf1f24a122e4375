package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"sectorfilter.dev/internal/blockfilter"
)

// result holds one variant's measured performance, in the shape
// main_benchmark.cpp's RunBenchmark prints per variant.
type result struct {
	name      string
	insertCPT float64
	lookupCPT float64
	fpRate    float64
	sizeBytes int
}

// fprThresholds are spec §8 property 7's calibrated ceilings at 24 bits/key.
// Variants the property doesn't name are given a generous sanity ceiling
// rather than a calibrated one, since no reference figure exists for them.
var fprThresholds = map[string]float64{
	"register-blocked/32":       0.05,
	"register-blocked/64":       0.02,
	"register-blocked/masks/32": 0.01,
	"register-blocked/masks/64": 0.01,
	"cache-sectorized/32":       0.001,
	"cache-sectorized/64":       0.001,
	"two-word register-blocked": 0.05,
	"SIMD-gather blocked":       0.05,
}

// runVariant times Insert once over the workload's insert keys and Lookup
// lookupRepeat times over the (shared, disjoint) lookup keys, then reports
// the observed false-positive rate against the insert set's own membership
// test, matching main_benchmark.cpp's measurement structure.
func runVariant(name string, f blockfilter.Filter, sizeBytes int, c counter, w workload, lookupRepeat int) result {
	n := len(w.insertKeys)

	start := c.now()
	f.Insert(w.insertKeys)
	end := c.now()
	insertCPT := float64(end-start) / float64(n)

	out := make([]uint32, n)
	start = c.now()
	for r := 0; r < lookupRepeat; r++ {
		f.Lookup(w.lookupKeys, out)
	}
	end = c.now()
	lookupCPT := float64(end-start) / float64(lookupRepeat*n)

	falsePositives := 0
	for _, v := range out {
		if v == 1 {
			falsePositives++
		}
	}

	return result{
		name:      name,
		insertCPT: insertCPT,
		lookupCPT: lookupCPT,
		fpRate:    float64(falsePositives) / float64(n),
		sizeBytes: sizeBytes,
	}
}

// printBlock emits the exact per-variant text block spec.md §6 requires:
// variant name, insert cycles-per-tuple, lookup cycles-per-tuple, observed
// false-positive rate, separated by a blank line — the same shape
// main_benchmark.cpp's RunBenchmark prints to stdout.
func printBlock(w io.Writer, r result) {
	fmt.Fprintf(w, "[%s]\n", r.name)
	fmt.Fprintf(w, "Insert took %.2f cycles per tuple\n", r.insertCPT)
	fmt.Fprintf(w, "Lookup took %.2f cycles per tuple\n", r.lookupCPT)
	fmt.Fprintf(w, "False-positive rate ~ %.6f\n\n", r.fpRate)
}

// printSummaryTable renders a go-pretty table of every variant's results
// after the required per-variant blocks, giving a human scanning CI output
// a single scannable comparison in addition to the exact-format blocks
// above.
func printSummaryTable(w io.Writer, results []result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Variant", "Size", "Insert (ns/tuple)", "Lookup (ns/tuple)", "FPR"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.name,
			humanize.Bytes(uint64(r.sizeBytes)),
			fmt.Sprintf("%.2f", r.insertCPT),
			fmt.Sprintf("%.2f", r.lookupCPT),
			fprCell(r),
		})
	}

	t.Render()
}

// fprCell formats a result's false-positive rate, colored green when it
// clears the variant's calibrated threshold and red otherwise.
func fprCell(r result) string {
	text := fmt.Sprintf("%.4f%%", r.fpRate*100)

	threshold, ok := fprThresholds[r.name]
	if !ok {
		return text
	}

	if r.fpRate <= threshold {
		return color.New(color.FgGreen).Sprint(text)
	}
	return color.New(color.FgRed).Sprint(text)
}
