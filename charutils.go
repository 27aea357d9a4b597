package suggest

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Case folding and accent stripping over the Latin-1/Latin-Extended/
// Greek/Cyrillic range (U+0000..U+04FF).
//
// A hand-authored fixed table covers the Latin-1 Supplement block, where
// accented Latin letters are dense enough that a small table is both fast
// and exhaustive. The rest of the range falls back to
// golang.org/x/text/unicode/norm NFD decomposition plus combining-mark
// stripping: NFD splits a precomposed accented letter into its base rune
// plus combining marks, and dropping the marks yields the same base letter
// the fixed table would have produced.

const baseCharsSize = 0x0500

// baseChars1 covers the Latin-1 Supplement block (U+00C0..U+00FF), the block
// with the densest concentration of common accented Latin letters.
var baseChars1 = map[rune]rune{
	0xC0: 'A', 0xC1: 'A', 0xC2: 'A', 0xC3: 'A', 0xC4: 'A', 0xC5: 'A',
	0xC6: 0xC6, // Æ: no single-letter base, left as-is
	0xC7: 'C',
	0xC8: 'E', 0xC9: 'E', 0xCA: 'E', 0xCB: 'E',
	0xCC: 'I', 0xCD: 'I', 0xCE: 'I', 0xCF: 'I',
	0xD0: 0xD0, // Ð
	0xD1: 'N',
	0xD2: 'O', 0xD3: 'O', 0xD4: 'O', 0xD5: 'O', 0xD6: 'O', 0xD8: 'O',
	0xD9: 'U', 0xDA: 'U', 0xDB: 'U', 0xDC: 'U',
	0xDD: 'Y',
	0xDF: 0xDF, // ß
	0xE0: 'a', 0xE1: 'a', 0xE2: 'a', 0xE3: 'a', 0xE4: 'a', 0xE5: 'a',
	0xE6: 0xE6,
	0xE7: 'c',
	0xE8: 'e', 0xE9: 'e', 0xEA: 'e', 0xEB: 'e',
	0xEC: 'i', 0xED: 'i', 0xEE: 'i', 0xEF: 'i',
	0xF1: 'n',
	0xF2: 'o', 0xF3: 'o', 0xF4: 'o', 0xF5: 'o', 0xF6: 'o', 0xF8: 'o',
	0xF9: 'u', 0xFA: 'u', 0xFB: 'u', 0xFC: 'u',
	0xFD: 'y', 0xFF: 'y',
}

// toBaseChar maps c to its un-accented base character, c itself if it has
// none, or c itself if c is outside the table's range.
func toBaseChar(c rune) rune {
	if c >= 0xC0 && c <= 0xFF {
		if b, ok := baseChars1[c]; ok {
			return b
		}
		return c
	}
	if c < baseCharsSize {
		return stripCombiningMarks(c)
	}
	return c
}

// stripCombiningMarks runs NFD decomposition on c and returns the first
// non-combining rune of the decomposition, or c unchanged if decomposition
// doesn't apply.
func stripCombiningMarks(c rune) rune {
	var buf [8]byte
	decomposed := norm.NFD.Append(buf[:0], string(c)...)
	for _, r := range string(decomposed) {
		if !unicode.Is(unicode.Mn, r) {
			return r
		}
	}
	return c
}

func isAsciiUpper(c rune) bool { return c >= 'A' && c <= 'Z' }
func toAsciiLower(c rune) rune { return c - 'A' + 'a' }
func isAscii(c rune) bool      { return c <= 127 }

// toBaseLowerCase is the workhorse comparison function used throughout
// proximity matching and edit distance: strip accents, then lower-case.
func toBaseLowerCase(c rune) rune {
	c = toBaseChar(c)
	if isAsciiUpper(c) {
		return toAsciiLower(c)
	}
	if isAscii(c) {
		return c
	}
	return unicode.ToLower(c)
}
