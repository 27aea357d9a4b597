package suggest

// A per-output-depth snapshot of one trie traversal, held as a
// fixed-capacity array indexed by output depth rather than recursion, so a
// traverser can push/pop a character without growing the call stack.

// correctionFrame is the state recorded after placing the output-depth-th
// character of the candidate word.
type correctionFrame struct {
	inputIndex int
	outputIndex int

	equivalentCount          int
	proximityCount           int
	additionalProximityCount int
	excessiveCount           int
	transposedCount          int
	skippedCount             int

	skipPos       int // output position of the one allowed "skip"; -1 if unused
	excessivePos  int // input position of the one allowed "excessive"; -1 if unused
	transposedPos int // input position of the one allowed transposition; -1 if unused

	lastCharExceeded        bool
	needsToTraverseAllNodes bool

	matching, proximityMatching, additionalProximityMatching bool
	exceeding, transposing, skipping                         bool

	// distanceSq/hasDistance record the touch-geometry distance for the
	// character placed to reach this frame, when it was a proximity match
	//; consumed by ranking.go.
	distanceSq   float32
	hasDistance  bool
	firstCharUnrelated bool
}

// CorrectionState drives one traversal: it owns the stack of frames, the
// incremental edit-distance table, and the accumulated output word.
type CorrectionState struct {
	input               *InputState
	inputLength         int
	maxErrors           int
	maxEditDistance     int
	checkProximityChars bool
	useFullEditDistance bool

	frames [MaxWordLengthInternal + 1]correctionFrame
	depth  int // index of the most recently written frame; -1 before any char

	output []rune
	edit   *editDistanceTable
}

// newCorrectionState starts a traversal for the given input, with maxErrors
// the combined skip+excessive+floor(transposed/2) budget (default 2, or 1 in
// strict mode invariants).
func newCorrectionState(input *InputState, inputCodePoints []rune, maxErrors int, checkProximityChars bool) *CorrectionState {
	inputLength := input.Len()
	maxEditDistance := 2
	if inputLength >= 5 {
		maxEditDistance = inputLength / 2
	}
	cs := &CorrectionState{
		input:               input,
		inputLength:         inputLength,
		maxErrors:           maxErrors,
		maxEditDistance:     maxEditDistance,
		checkProximityChars: checkProximityChars,
		depth:               -1,
		edit:                newEditDistanceTable(inputCodePoints),
	}
	return cs
}

func (cs *CorrectionState) reset() {
	cs.depth = -1
	cs.output = cs.output[:0]
	cs.edit.reset()
}

// current returns the frame for the most recently placed character, or a
// zero-value starting frame when the traversal hasn't placed anything yet.
func (cs *CorrectionState) current() correctionFrame {
	if cs.depth < 0 {
		return correctionFrame{skipPos: -1, excessivePos: -1, transposedPos: -1}
	}
	return cs.frames[cs.depth]
}

// pop retracts the most recently placed character, for backtracking out of
// a trie branch (the traverser's "go up").
func (cs *CorrectionState) pop() {
	if cs.depth >= 0 {
		cs.output = cs.output[:len(cs.output)-1]
		cs.depth--
	}
}

// needsToPrune reports whether the current frame has already exceeded the
// traversal's error or depth budget.
func (cs *CorrectionState) needsToPrune() bool {
	f := cs.current()
	if f.skippedCount+f.excessiveCount+f.transposedCount/2 > cs.maxErrors {
		return true
	}
	if len(cs.output) >= MaxWordLengthInternal {
		return true
	}
	if len(cs.output) > cs.inputLength*maxDepthMultiplier {
		return true
	}
	return false
}

// processCharAndCalcState consumes one trie character c, classifies it
// against the input using the current frame's error budget, updates the
// edit-distance table, and returns the resulting CorrectionType.
func (cs *CorrectionState) processCharAndCalcState(c rune, isTerminal bool) CorrectionType {
	prev := cs.current()
	next := correctionFrame{
		inputIndex:    prev.inputIndex,
		outputIndex:   prev.outputIndex + 1,
		equivalentCount: prev.equivalentCount,
		proximityCount: prev.proximityCount,
		additionalProximityCount: prev.additionalProximityCount,
		excessiveCount: prev.excessiveCount,
		transposedCount: prev.transposedCount,
		skippedCount:  prev.skippedCount,
		skipPos:       prev.skipPos,
		excessivePos:  prev.excessivePos,
		transposedPos: prev.transposedPos,
		lastCharExceeded: prev.lastCharExceeded,
		needsToTraverseAllNodes: prev.needsToTraverseAllNodes,
	}

	if prev.needsToTraverseAllNodes || prev.inputIndex >= cs.inputLength {
		// Input exhausted: emit completions without consuming input.
		cs.output = append(cs.output, c)
		cs.edit.advance(c)
		cs.depth++
		cs.frames[cs.depth] = next
		if isTerminal {
			return TraverseAllOnTerminal
		}
		return TraverseAllNotOnTerminal
	}

	mExceeding := next.excessivePos == prev.inputIndex && next.excessivePos >= 0 && !prev.exceeding
	mSkipping := next.skipPos == prev.outputIndex && next.skipPos >= 0 && !prev.skipping
	mTransposing := prev.inputIndex == next.transposedPos && next.transposedPos >= 0

	if next.transposedCount%2 == 1 {
		// A transposition is half-open: the expected character is the
		// previous input position's char.
		expected := cs.input.PrimaryCodeAt(prev.inputIndex - 1)
		if toBaseLowerCase(rune(expected)) == toBaseLowerCase(c) {
			next.transposing = true
			next.matching = true
			next.equivalentCount++
		}
		next.transposedCount++ // closes the transposition
		next.inputIndex++
		cs.commitChar(c, &next, isTerminal)
		return cs.terminalResult(&next, isTerminal)
	}

	pType, pIdx := cs.input.getMatchedProximityId(prev.inputIndex, c, cs.checkProximityChars)
	switch pType {
	case EquivalentChar:
		next.matching = true
		next.equivalentCount++
		next.inputIndex++
	case NearProximityChar:
		next.proximityMatching = true
		next.proximityCount++
		next.inputIndex++
		next.distanceSq = cs.input.getNormalizedSquaredDistance(prev.inputIndex, pIdx)
		next.hasDistance = true
	case AdditionalProximityChar:
		next.additionalProximityMatching = true
		next.additionalProximityCount++
		next.inputIndex++
		next.distanceSq = cs.input.getNormalizedSquaredDistance(prev.inputIndex, pIdx)
		next.hasDistance = true
	default: // UnrelatedChar
		if prev.outputIndex == 0 {
			next.firstCharUnrelated = true
		}
		switch {
		case mExceeding:
			next.exceeding = true
			next.excessiveCount++
			// excessive: pretend this trie char wasn't typed; input doesn't advance.
		case mTransposing:
			next.transposing = true
			next.transposedCount++
			next.inputIndex++ // consume the swapped pair partially; closed next call
		case mSkipping:
			next.skipping = true
			next.skippedCount++
			// skipping: pretend the input had this char; input doesn't advance.
		case prev.excessiveCount+prev.skippedCount+prev.transposedCount/2 < cs.maxErrors:
			// Fall back to opening a fresh excessive-char correction here.
			next.exceeding = true
			next.excessiveCount++
			next.excessivePos = prev.inputIndex
		default:
			// Rejected outright: nothing is committed to cs.output or
			// cs.frames, so the traverser must not call pop() for this char.
			return Unrelated
		}
	}

	if prev.inputIndex == cs.inputLength-1 && next.inputIndex >= cs.inputLength &&
		next.skippedCount == 0 && next.excessiveCount == 0 && next.transposedCount == 0 && next.proximityCount == 0 {
		next.lastCharExceeded = true
		next.needsToTraverseAllNodes = true
	}

	cs.commitChar(c, &next, isTerminal)
	return cs.terminalResult(&next, isTerminal)
}

func (cs *CorrectionState) commitChar(c rune, next *correctionFrame, isTerminal bool) {
	cs.output = append(cs.output, c)
	cs.edit.advance(c)
	cs.depth++
	cs.frames[cs.depth] = *next
}

func (cs *CorrectionState) terminalResult(next *correctionFrame, isTerminal bool) CorrectionType {
	inputConsumed := next.inputIndex >= cs.inputLength || next.lastCharExceeded
	if isTerminal && inputConsumed {
		return OnTerminal
	}
	return NotOnTerminal
}
