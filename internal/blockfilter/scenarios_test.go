package blockfilter

import "testing"

// countHits inserts is a helper for the concrete end-to-end scenarios in
// spec §8: insert one key range, probe another, and count hits.
func countHits(t *testing.T, f Filter, insertFrom, insertTo, probeFrom, probeTo int) int {
	t.Helper()

	f.Insert(mixedKeys(insertFrom, insertTo))

	probes := mixedKeys(probeFrom, probeTo)
	out := make([]uint32, len(probes))
	f.Lookup(probes, out)

	hits := 0
	for _, v := range out {
		if v == 1 {
			hits++
		}
	}
	return hits
}

// TestScenarioS1 — register-blocked/32, inserting {0..4095} and probing the
// same set, must hit on all 4096 keys (no false negatives).
func TestScenarioS1(t *testing.T) {
	f, err := NewRegisterBlocked32(4096, 12)
	if err != nil {
		t.Fatal(err)
	}
	if hits := countHits(t, f, 0, 4096, 0, 4096); hits != 4096 {
		t.Fatalf("S1: got %d hits, want 4096", hits)
	}
}

// TestScenarioS2 — register-blocked/32, inserting {0..4095} and probing the
// disjoint range {4096..8191}, must see a low false-positive hit count.
func TestScenarioS2(t *testing.T) {
	f, err := NewRegisterBlocked32(4096, 12)
	if err != nil {
		t.Fatal(err)
	}
	if hits := countHits(t, f, 0, 4096, 4096, 8192); hits > 250 {
		t.Fatalf("S2: got %d false-positive hits, want <= 250", hits)
	}
}

// TestScenarioS3 — cache-sectorized/32 at 24 bits/key over a larger key
// range, probing a disjoint range, should see very few false positives.
func TestScenarioS3(t *testing.T) {
	f, err := NewCacheSectorized32(131072, 24)
	if err != nil {
		t.Fatal(err)
	}
	if hits := countHits(t, f, 0, 131072, 131072, 262144); hits > 150 {
		t.Fatalf("S3: got %d false-positive hits, want <= 150", hits)
	}
}

// TestScenarioS4 — register-blocked/masks/64 at 16 bits/key.
func TestScenarioS4(t *testing.T) {
	f, err := NewRegisterBlockedMasks64(65536, 16)
	if err != nil {
		t.Fatal(err)
	}
	if hits := countHits(t, f, 0, 65536, 65536, 131072); hits > 700 {
		t.Fatalf("S4: got %d false-positive hits, want <= 700", hits)
	}
}

// TestScenarioS5 — two-word register-blocked, probing its own insert set,
// must hit on every key.
func TestScenarioS5(t *testing.T) {
	f, err := NewTwoWordBlocked32(65536, 16)
	if err != nil {
		t.Fatal(err)
	}
	if hits := countHits(t, f, 0, 65536, 0, 65536); hits != 65536 {
		t.Fatalf("S5: got %d hits, want 65536", hits)
	}
}

// TestScenarioS6 — any variant, empty filter, probing {0..1023}: no hits.
func TestScenarioS6(t *testing.T) {
	for name, f := range newTestFilters(t, 1000, 12) {
		t.Run(name, func(t *testing.T) {
			probes := mixedKeys(0, 1024)
			out := make([]uint32, len(probes))
			f.Lookup(probes, out)

			for _, v := range out {
				if v != 0 {
					t.Fatalf("%s: S6 expected zero hits on an empty filter", name)
				}
			}
		})
	}
}
