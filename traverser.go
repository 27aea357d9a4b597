package suggest

// traverser walks a dictionary's packed trie depth-first, driving a
// CorrectionState one trie character at a time and pushing every terminal
// it reaches into a CandidateQueue.
type traverser struct {
	buf             []byte
	cs              *CorrectionState
	inputWord       []rune
	touchCalibrated bool
	q               *CandidateQueue
	kind            int32
}

// runTraversal drives one full DFS pass over the dictionary's trie for the
// traversal's current CorrectionState, starting at the root PtNode array.
func runTraversal(buf []byte, root int, cs *CorrectionState, inputWord []rune, touchCalibrated bool, q *CandidateQueue, kind int32) {
	tv := &traverser{buf: buf, cs: cs, inputWord: inputWord, touchCalibrated: touchCalibrated, q: q, kind: kind}
	tv.visitArray(root)
}

func (tv *traverser) visitArray(pos int) {
	if tv.cs.needsToPrune() {
		return
	}
	forEachPtNode(tv.buf, pos, func(n ptNode) bool {
		committed, aborted, lastType := tv.visitNodeChars(n)
		if !aborted {
			if (lastType == OnTerminal || lastType == TraverseAllOnTerminal) && n.isValidWordNode() {
				tv.emit(n.frequency)
			}
			if n.childrenPos != noChildren && !tv.cs.needsToPrune() {
				tv.visitArray(n.childrenPos)
			}
		}
		for ; committed > 0; committed-- {
			tv.cs.pop()
		}
		return true
	})
}

// visitNodeChars feeds every code point of one PtNode's char array through
// the CorrectionState in turn, stopping at the first rejection. It returns
// how many characters were actually committed (so the caller can pop
// exactly that many back off), whether the node was abandoned outright,
// and the CorrectionType of the last character processed.
func (tv *traverser) visitNodeChars(n ptNode) (committed int, aborted bool, lastType CorrectionType) {
	for i, cp := range n.chars {
		isLast := i == len(n.chars)-1
		isTerminalChar := isLast && n.flags&flagIsTerminal != 0
		ct := tv.cs.processCharAndCalcState(rune(cp), isTerminalChar)
		if ct == Unrelated {
			return committed, true, ct
		}
		committed++
		lastType = ct
		if tv.cs.needsToPrune() {
			return committed, true, ct
		}
	}
	return committed, false, lastType
}

func (tv *traverser) emit(freq int) {
	score := calculateFinalProbability(tv.cs, freq, tv.inputWord, tv.touchCalibrated)
	kind := tv.kind
	f := tv.cs.current()
	if f.skippedCount == 0 && f.excessiveCount == 0 && f.transposedCount == 0 &&
		f.proximityCount == 0 && f.additionalProximityCount == 0 {
		kind |= KindFlagExactMatch
	}
	tv.q.push(score, runesToInt32s(tv.cs.output), kind)
}

func runesToInt32s(word []rune) []int32 {
	out := make([]int32, len(word))
	for i, r := range word {
		out[i] = int32(r)
	}
	return out
}
