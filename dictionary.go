package suggest

import (
	"encoding/binary"
	"fmt"
)

// Dictionary wraps an immutable byte buffer already holding a decoded
// binary dictionary, plus the handful of header-derived facts every other
// component needs: where the root PtNode array starts, and whether digraph
// expansion should run automatically for this dictionary's locale.
type Dictionary struct {
	buf  []byte
	root int

	requiresGermanUmlautProcessing    bool
	requiresFrenchLigaturesProcessing bool

	bigramFilter *bloomFilter
}

// OpenDictionary parses a dictionary header and eagerly builds the bigram
// bloom filter by walking every PtNode once. Unlike the per-lookup dictionary
// functions, it returns an error: it runs once at session start, not on a
// per-keystroke hot path, so a malformed buffer is reported rather than
// silently treated as an empty dictionary.
func OpenDictionary(buf []byte) (*Dictionary, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("suggest: dictionary buffer too short for a header")
	}
	magic := binary.BigEndian.Uint32(buf[0:4])
	d := &Dictionary{buf: buf}
	switch magic {
	case magicV1:
		if len(buf) < 5 {
			return nil, fmt.Errorf("suggest: v1 header truncated")
		}
		d.root = 5
	case magicV2:
		if len(buf) < 12 {
			return nil, fmt.Errorf("suggest: v2 header truncated")
		}
		optionFlags := binary.BigEndian.Uint16(buf[6:8])
		headerLength := binary.BigEndian.Uint32(buf[8:12])
		if int(headerLength) > len(buf) {
			return nil, fmt.Errorf("suggest: v2 header length %d exceeds buffer", headerLength)
		}
		d.requiresGermanUmlautProcessing = optionFlags&headerRequiresGermanUmlautProcessing != 0
		d.requiresFrenchLigaturesProcessing = optionFlags&headerRequiresFrenchLigaturesProcessing != 0
		d.root = int(headerLength)
	default:
		return nil, fmt.Errorf("suggest: unrecognized dictionary magic %#08x", magic)
	}

	d.bigramFilter = newBloomFilter()
	walkTrie(d.buf, d.root, func(n ptNode) {
		if n.bigramsAt < 0 {
			return
		}
		forEachBigramEntry(d.buf, n.bigramsAt, func(targetPos int, prob int) bool {
			d.bigramFilter.setInFilter(targetPos)
			return true
		})
	})
	return d, nil
}

// digraphPairs returns the digraph table this dictionary's header flags
// call for, or nil.
func (d *Dictionary) digraphPairs() []digraphPair {
	return digraphPairsForDictionary(d.requiresGermanUmlautProcessing, d.requiresFrenchLigaturesProcessing)
}

// walkTrie visits every PtNode reachable from pos, recursing into children.
func walkTrie(buf []byte, pos int, fn func(ptNode)) {
	forEachPtNode(buf, pos, func(n ptNode) bool {
		fn(n)
		if n.childrenPos != noChildren {
			walkTrie(buf, n.childrenPos, fn)
		}
		return true
	})
}

// forEachBigramEntry decodes the bigram list starting at pos, invoking fn
// with each entry's resolved absolute target position and its raw
// (0..15) probability. Iteration stops early if fn returns false.
func forEachBigramEntry(buf []byte, pos int, fn func(targetPos, prob int) bool) {
	for {
		var flags byte
		flags, pos = readFlags(buf, pos)
		target, next := readBigramAttributeAddress(buf, flags, pos)
		prob := int(flags & bigramFlagProbMask)
		if !fn(target, prob) {
			return
		}
		pos = next
		if flags&bigramFlagHasNext == 0 {
			return
		}
	}
}

func runesToCodes(word []rune) []int {
	codes := make([]int, len(word))
	for i, r := range word {
		codes[i] = int(r)
	}
	return codes
}

// GetFrequency looks up word's unigram frequency, or NotAProbability if the
// dictionary has no such valid (non-blacklisted, non-not-a-word) entry.
func (d *Dictionary) GetFrequency(word []rune) int {
	pos := getTerminalPosition(d.buf, d.root, runesToCodes(word))
	if pos == NotValidWord {
		return NotAProbability
	}
	n := readPtNode(d.buf, pos)
	if !n.isValidWordNode() {
		return NotAProbability
	}
	return n.frequency
}

// IsValidBigram reports whether w2 appears in w1's bigram list.
func (d *Dictionary) IsValidBigram(w1, w2 []rune) bool {
	pos1 := getTerminalPosition(d.buf, d.root, runesToCodes(w1))
	if pos1 == NotValidWord {
		return false
	}
	n1 := readPtNode(d.buf, pos1)
	if n1.bigramsAt < 0 {
		return false
	}
	pos2 := getTerminalPosition(d.buf, d.root, runesToCodes(w2))
	if pos2 == NotValidWord {
		return false
	}
	if !d.bigramFilter.isInFilter(pos2) {
		return false
	}
	found := false
	forEachBigramEntry(d.buf, n1.bigramsAt, func(targetPos, prob int) bool {
		if targetPos == pos2 {
			found = true
			return false
		}
		return true
	})
	return found
}

// Shortcut is one decoded entry of a word's shortcut list: a target string,
// with IsWhitelist set when the entry's probability is the whitelist value
// (15). Shortcuts are only returned by ShortcutsFor; GetSuggestions does not
// read them.
type Shortcut struct {
	Target      []rune
	IsWhitelist bool
}

// ShortcutsFor decodes word's shortcut list, or nil if it has none.
func (d *Dictionary) ShortcutsFor(word []rune) []Shortcut {
	pos := getTerminalPosition(d.buf, d.root, runesToCodes(word))
	if pos == NotValidWord {
		return nil
	}
	n := readPtNode(d.buf, pos)
	if n.shortcutsAt < 0 {
		return nil
	}
	return decodeShortcuts(d.buf, n.shortcutsAt)
}

func decodeShortcuts(buf []byte, pos int) []Shortcut {
	totalLen := int(buf[pos])<<8 | int(buf[pos+1])
	end := pos + totalLen
	cursor := pos + 2
	var out []Shortcut
	for cursor < end {
		flags := buf[cursor]
		cursor++
		prob := int(flags & shortcutProbabilityMask)
		var target []rune
		for {
			cp, next := readCodePoint(buf, cursor)
			cursor = next
			if cp == NotACharacter {
				cursor++
				break
			}
			target = append(target, rune(cp))
		}
		out = append(out, Shortcut{Target: target, IsWhitelist: prob == shortcutWhitelistProb})
		if flags&shortcutFlagHasNext == 0 {
			break
		}
	}
	return out
}

// computeFrequencyForBigram blends a word's own unigram frequency with the
// bigram continuation probability recorded for the preceding word: a
// higher-probability bigram pulls the frequency further toward maxFreq.
func computeFrequencyForBigram(unigramFreq, bigramProb int) int32 {
	scale := bigramProb*2 + 2
	denom := maxBigramFreq*2 + 3
	freq := unigramFreq + scale*(maxFreq-unigramFreq)/denom
	if freq > maxFreq {
		freq = maxFreq
	}
	return int32(freq)
}
