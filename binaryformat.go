package suggest

// Node traversal primitives over the packed trie, built on the cursor-style
// decoders in bytereader.go.

// ptNode is one fully-decoded PtNode entry: its flags, its code points, its
// own terminal position (the byte offset of its flags byte, used as a
// dictionary-wide address), its frequency if terminal, the absolute
// position of its children's PtNode array (or noChildren), and the cursor
// position of whatever immediately follows it in the same array (the next
// sibling's flags byte, or the end of the array).
type ptNode struct {
	pos         int
	flags       byte
	chars       []int
	frequency   int
	childrenPos int
	shortcutsAt int // pos of the shortcut list length field, or -1
	bigramsAt   int // pos of the first bigram entry, or -1
	next        int
}

// readPtNode decodes a single PtNode entry starting at pos (the flags byte)
// and returns it along with the cursor position of the following entry.
func readPtNode(buf []byte, pos int) ptNode {
	n := ptNode{pos: pos, frequency: NotAProbability, childrenPos: noChildren, shortcutsAt: -1, bigramsAt: -1}
	var flagsPos int
	n.flags, flagsPos = readFlags(buf, pos)
	cursor := flagsPos

	if n.flags&flagHasMultipleChars != 0 {
		for {
			cp, next := readCodePoint(buf, cursor)
			cursor = next
			if cp == NotACharacter {
				cursor++ // step over terminator
				break
			}
			n.chars = append(n.chars, cp)
		}
	} else {
		cp, next := readCodePoint(buf, cursor)
		cursor = next
		n.chars = []int{cp}
	}

	if n.flags&flagIsTerminal != 0 {
		n.frequency = int(buf[cursor])
		cursor++
	}

	childPos, next := readChildrenOffset(buf, n.flags, cursor)
	n.childrenPos = childPos
	cursor = next

	if n.flags&flagHasShortcuts != 0 {
		n.shortcutsAt = cursor
		cursor = skipShortcuts(buf, n.flags, cursor)
	}
	if n.flags&flagHasBigrams != 0 {
		n.bigramsAt = cursor
		cursor = skipBigrams(buf, n.flags, cursor)
	}
	n.next = cursor
	return n
}

// isValidWordNode reports whether a terminal PtNode should ever be surfaced
// as a suggestion: blacklisted and not-a-word entries are still decoded (a
// later correction pass may need to see them) but never suggested.
func (n ptNode) isValidWordNode() bool {
	return n.flags&flagIsTerminal != 0 &&
		n.flags&flagIsBlacklisted == 0 &&
		n.flags&flagIsNotAWord == 0
}

// forEachPtNode walks every PtNode in the array starting at pos, invoking fn
// with each decoded node. Iteration stops early if fn returns false.
func forEachPtNode(buf []byte, pos int, fn func(ptNode) bool) {
	count, cursor := readGroupCount(buf, pos)
	for i := 0; i < count; i++ {
		n := readPtNode(buf, cursor)
		if !fn(n) {
			return
		}
		cursor = n.next
	}
}

// getTerminalPosition walks the trie matching word literally character by
// character, returning the byte position of the matching terminal's flags
// byte, or NotValidWord if the word is absent.
func getTerminalPosition(buf []byte, root int, word []int) int {
	if len(word) == 0 {
		return NotValidWord
	}
	pos := root
	wi := 0
	for {
		found := false
		var matchedChildren int
		var matchedIsTerminal bool
		var matchedFreq int
		var matchedPos int
		forEachPtNode(buf, pos, func(n ptNode) bool {
			if wi+len(n.chars) > len(word) {
				return true
			}
			for j, c := range n.chars {
				if word[wi+j] != c {
					return true
				}
			}
			wi += len(n.chars)
			found = true
			matchedChildren = n.childrenPos
			matchedIsTerminal = n.flags&flagIsTerminal != 0
			matchedFreq = n.frequency
			matchedPos = n.pos
			return false
		})
		if !found {
			return NotValidWord
		}
		if wi == len(word) {
			if matchedIsTerminal {
				_ = matchedFreq
				return matchedPos
			}
			return NotValidWord
		}
		if matchedChildren == noChildren {
			return NotValidWord
		}
		pos = matchedChildren
	}
}

// getWordAtAddress reconstructs the word whose terminal PtNode's flags byte
// sits at the given dictionary-wide address, by exploiting the fact that a
// PtNode array's children always live after every PtNode in every array that
// precedes it in breadth-first order: at each level we scan siblings
// remembering the last one whose CHILDREN address is still <= address (not
// the sibling's own position, which clusters near the start of the array
// and so is almost always less than a deep target address regardless of
// branch), then descend into that sibling's subtree, since address must lie
// somewhere within it. Returns the reconstructed code points and the node's
// unigram frequency, or (nil, NotAProbability) if address does not
// correspond to a terminal.
func getWordAtAddress(buf []byte, root int, address int, maxDepth int) ([]int, int) {
	var word []int
	pos := root
	for depth := 0; depth < maxDepth; depth++ {
		var candidate *ptNode
		var exact *ptNode
		forEachPtNode(buf, pos, func(n ptNode) bool {
			if n.pos == address {
				cp := n
				exact = &cp
				return false
			}
			if n.childrenPos != noChildren && n.childrenPos <= address {
				cp := n
				candidate = &cp
			}
			return true
		})
		if exact != nil {
			word = append(word, exact.chars...)
			if exact.flags&flagIsTerminal == 0 {
				return nil, NotAProbability
			}
			return word, exact.frequency
		}
		if candidate == nil || candidate.childrenPos == noChildren {
			return nil, NotAProbability
		}
		word = append(word, candidate.chars...)
		pos = candidate.childrenPos
	}
	return nil, NotAProbability
}
