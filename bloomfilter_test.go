package suggest

import "testing"

// TestBloomFilterNoFalseNegatives is spec.md §8 property 6: every position
// ever set must test as present (bloom filters may false-positive but must
// never false-negative).
func TestBloomFilterNoFalseNegatives(t *testing.T) {
	f := newBloomFilter()
	positions := []int{0, 1, 5, 1020, 1021, 2042, 999999}
	for _, p := range positions {
		f.setInFilter(p)
	}
	for _, p := range positions {
		if !f.isInFilter(p) {
			t.Errorf("isInFilter(%d) = false after setInFilter(%d), want true", p, p)
		}
	}
}

func TestBloomFilterUnsetPositionsMayBeAbsent(t *testing.T) {
	f := newBloomFilter()
	f.setInFilter(42)
	if f.isInFilter(43) {
		// Not a hard requirement (bloom filters may false-positive), but with
		// a single entry set and a sane hash this bucket should be empty.
		t.Log("isInFilter(43) was a false positive for a single-entry filter; not necessarily a bug")
	}
}

func TestBloomBucketWrapsIntoRange(t *testing.T) {
	for _, p := range []int{-5, 0, 1021, 2042, -1021} {
		b := bloomBucket(p)
		if int(b) < 0 || int(b) >= bigramFilterModulo {
			t.Errorf("bloomBucket(%d) = %d, out of [0, %d)", p, b, bigramFilterModulo)
		}
	}
}
