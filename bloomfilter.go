package suggest

import "github.com/bits-and-blooms/bitset"

// A fixed 1021-bit filter over bigram terminal addresses, used to
// short-circuit the common case of "this word has no bigram continuation at
// all" before paying for a full bigram-list scan. The addressing scheme
// (single hash, modulo 1021) has to match the dictionary format bit-for-bit,
// so this borrows bits-and-blooms/bitset only for the underlying bit
// storage/Set/Test primitives rather than reaching for a general-purpose
// k-hash bloom filter library (see DESIGN.md for why a multi-hash bloom
// filter package doesn't fit here).
type bloomFilter struct {
	bits *bitset.BitSet
}

func newBloomFilter() *bloomFilter {
	return &bloomFilter{bits: bitset.New(bigramFilterModulo)}
}

func bloomBucket(position int) uint {
	b := position % bigramFilterModulo
	if b < 0 {
		b += bigramFilterModulo
	}
	return uint(b)
}

// setInFilter marks position as present.
func (f *bloomFilter) setInFilter(position int) {
	f.bits.Set(bloomBucket(position))
}

// isInFilter reports whether position might be present; false is a sound
// negative, true may be a false positive.
func (f *bloomFilter) isInFilter(position int) bool {
	return f.bits.Test(bloomBucket(position))
}
