package suggest

import "sort"

// Engine orchestrates every other component: it expands digraphs,
// drives single-word and multi-word trie traversals, and drains the result
// into ranked output arrays. One Engine owns one queue pool and is built
// for exactly one (Dictionary, ProximityInfo) pair; like every other
// session-scoped type in this package it is not safe to call from two
// goroutines at once (spec.md §5).
type Engine struct {
	dict *Dictionary
	prox *ProximityInfo

	maxWordLength int
	maxWords      int

	pool    *candidateQueuePool
	metrics *Metrics
}

// NewEngine builds a session bound to dict and prox. metrics may be nil, in
// which case instrumentation is skipped entirely.
func NewEngine(dict *Dictionary, prox *ProximityInfo, maxWordLength, maxWords int, metrics *Metrics) *Engine {
	if maxWordLength <= 0 || maxWordLength > MaxWordLengthInternal {
		maxWordLength = MaxWordLengthInternal
	}
	e := &Engine{
		dict:          dict,
		prox:          prox,
		maxWordLength: maxWordLength,
		maxWords:      maxWords,
		pool:          newCandidateQueuePool(maxWords),
		metrics:       metrics,
	}
	e.pool.master.onEvict = e.countEviction
	for w := range e.pool.sub {
		for _, q := range e.pool.sub[w] {
			q.onEvict = e.countEviction
		}
	}
	return e
}

func (e *Engine) countEviction() {
	if e.metrics != nil {
		e.metrics.queueEvictions.Inc()
	}
}

func (e *Engine) countTraversal() {
	if e.metrics != nil {
		e.metrics.traversalsRun.Inc()
	}
}

// inputVariant is one concrete (coordinates, code points) input produced by
// digraph expansion.
type inputVariant struct {
	xs, ys, codes []int32
}

// expandDigraphCoordinates mirrors expandDigraphsAt (digraph.go) but carries
// the parallel touch-coordinate arrays along with the code points: replacing
// a two-letter digraph with its one-codepoint ligature drops one touch
// position, and the ligature's position is given the first letter's
// coordinates.
func expandDigraphCoordinates(xs, ys, codes []int32, pairs []digraphPair) []inputVariant {
	base := inputVariant{xs: xs, ys: ys, codes: codes}
	if len(pairs) == 0 {
		return []inputVariant{base}
	}
	variants := []inputVariant{base}
	expandDigraphCoordinatesAt(base, pairs, 0, defaultMaxDigraphSearchDepth, &variants)
	return variants
}

func expandDigraphCoordinatesAt(v inputVariant, pairs []digraphPair, pos, budget int, out *[]inputVariant) {
	if budget <= 0 {
		return
	}
	codes := v.codes
	for i := pos; i+1 < len(codes); i++ {
		for _, p := range pairs {
			if toBaseLowerCase(rune(codes[i])) != p.first || toBaseLowerCase(rune(codes[i+1])) != p.second {
				continue
			}
			nv := inputVariant{
				xs:    concatI32(v.xs[:i], []int32{v.xs[i]}, v.xs[i+2:]),
				ys:    concatI32(v.ys[:i], []int32{v.ys[i]}, v.ys[i+2:]),
				codes: concatI32(v.codes[:i], []int32{int32(p.ligature)}, v.codes[i+2:]),
			}
			*out = append(*out, nv)
			expandDigraphCoordinatesAt(nv, pairs, i+1, budget-1, out)
		}
	}
}

func concatI32(parts ...[]int32) []int32 {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]int32, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// singleWordPass runs one full trie traversal for (xs, ys, codes) against
// e.dict, pushing every terminal reached into q.
func (e *Engine) singleWordPass(xs, ys, codes []int32, useFullEditDistance bool, q *CandidateQueue, kind int32) {
	if len(codes) == 0 {
		return
	}
	input := e.prox.BuildInputState(xs, ys, codes)
	runes := int32sToRunes(codes)
	cs := newCorrectionState(input, runes, defaultMaxErrors, true)
	cs.useFullEditDistance = useFullEditDistance
	runTraversal(e.dict.buf, e.dict.root, cs, runes, e.prox.hasSweetSpotData, q, kind)
	e.countTraversal()
}

const defaultMaxErrors = 2

// GetSuggestions is the engine's primary entry point: given a touch
// sequence, it returns up to maxWords ranked candidates. It takes no
// previously committed word, so its ranking applies no bigram boost;
// bigram-boosted continuations of a previous word are exposed separately
// via GetBigrams.
func (e *Engine) GetSuggestions(xs, ys, codes []int32, useFullEditDistance bool) (words [][]int32, freqs []int32, kinds []int32) {
	if len(codes) == 0 || len(codes) > e.maxWordLength {
		return nil, nil, nil
	}
	e.pool.clear()

	variants := expandDigraphCoordinates(xs, ys, codes, e.dict.digraphPairs())
	for _, v := range variants {
		e.singleWordPass(v.xs, v.ys, v.codes, useFullEditDistance, e.pool.master, KindCorrection)
	}

	if len(codes) >= minUserTypedLengthForMultipleWordSuggestion {
		e.multiWordPass(xs, ys, codes)
	}

	freqs, words, kinds = e.pool.master.outputSuggestions(codes, e.maxWords)
	if e.metrics != nil {
		e.metrics.suggestionsReturned.Observe(float64(len(words)))
	}
	return words, freqs, kinds
}

// splitPart is one word of a candidate multi-word split under construction.
type splitPart struct {
	start, length       int
	freq                int32
	gapIsSpaceProximity bool // true if the touch point ending the previous word was near the space key
}

// multiWordPass implements spec.md §4.8 step 5: recursively split codes at
// every position, running a full single-word pass over each candidate
// sub-word and combining complete splits via calcFreqForSplitMultipleWords.
// The recursion is bounded by multipleWordsSuggestionMaxWords (word count)
// and multipleWordsSuggestionMaxTotalTraverseCount (total traversals
// across the whole pass, shared by every branch).
func (e *Engine) multiWordPass(xs, ys, codes []int32) {
	n := len(codes)
	traverseCount := 0
	var parts []splitPart

	var recurse func(start int)
	recurse = func(start int) {
		if len(parts) >= multipleWordsSuggestionMaxWords {
			return
		}
		for i := start + 1; i <= n; i++ {
			if i-start > MaxWordLengthInternal {
				break
			}
			if traverseCount >= multipleWordsSuggestionMaxTotalTraverseCount {
				return
			}
			sub := e.pool.subQueue(len(parts), i-start)
			sub.clear()
			e.singleWordPass(xs[start:i], ys[start:i], codes[start:i], false, sub, KindCorrection)
			traverseCount++

			best := sub.highest
			if best == nil {
				continue
			}
			gapSpace := false
			if start > 0 {
				gapSpace = e.prox.hasSpaceProximity(xs[start-1], ys[start-1])
			}
			parts = append(parts, splitPart{start: start, length: i - start, freq: best.score, gapIsSpaceProximity: gapSpace})

			if i == n {
				if len(parts) >= 2 {
					e.emitSplit(codes, parts)
				}
			} else {
				recurse(i)
				if i < n && e.prox.hasSpaceProximity(xs[i-1], ys[i-1]) && i+1 <= n {
					recurse(i + 1)
				}
			}
			parts = parts[:len(parts)-1]
		}
	}
	recurse(0)
}

// emitSplit scores a complete multi-word split and, if it survives
// calcFreqForSplitMultipleWords's safety nets, pushes the space-joined
// candidate into the master queue.
func (e *Engine) emitSplit(codes []int32, parts []splitPart) {
	freqs := make([]int32, len(parts))
	lengths := make([]int, len(parts))
	isSpaceProximity := make([]bool, len(parts)-1)
	for i, p := range parts {
		freqs[i] = p.freq
		lengths[i] = p.length
		if i > 0 {
			isSpaceProximity[i-1] = p.gapIsSpaceProximity
		}
	}
	firstCapitalized := isAsciiUpper(rune(codes[parts[0].start]))
	secondCapitalized := isAsciiUpper(rune(codes[parts[1].start]))

	score := calcFreqForSplitMultipleWords(freqs, lengths, isSpaceProximity, firstCapitalized, secondCapitalized)
	if score <= 0 {
		return
	}

	combined := make([]int32, 0, len(codes)+len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			combined = append(combined, keycodeSpace)
		}
		combined = append(combined, codes[p.start:p.start+p.length]...)
	}
	e.pool.master.push(score, combined, KindCorrection)
}

// GetBigrams implements the independent bigram pass of spec.md §4.8: given
// the terminal of prevWord, it reconstructs every bigram target word
// (§4.1's getWordAtAddress) and, when codes is non-empty, filters to
// targets whose first character is base-lowercase-equal to the first typed
// code point, returning results ordered by descending blended frequency.
func (e *Engine) GetBigrams(prevWord []int32, codes []int32) (words [][]int32, freqs []int32) {
	pos := getTerminalPosition(e.dict.buf, e.dict.root, int32sToInts(prevWord))
	if pos == NotValidWord {
		return nil, nil
	}
	n := readPtNode(e.dict.buf, pos)
	if n.bigramsAt < 0 {
		return nil, nil
	}

	type bigramEntry struct {
		word []int32
		freq int32
	}
	var entries []bigramEntry
	forEachBigramEntry(e.dict.buf, n.bigramsAt, func(targetPos, prob int) bool {
		word, unigramFreq := getWordAtAddress(e.dict.buf, e.dict.root, targetPos, e.maxWordLength)
		if word == nil {
			return true
		}
		if len(codes) > 0 && toBaseLowerCase(rune(word[0])) != toBaseLowerCase(rune(codes[0])) {
			return true
		}
		entries = append(entries, bigramEntry{word: intsToInt32s(word), freq: computeFrequencyForBigram(unigramFreq, prob)})
		return true
	})

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].freq > entries[j].freq })
	if len(entries) > e.maxWords {
		entries = entries[:e.maxWords]
	}
	words = make([][]int32, len(entries))
	freqs = make([]int32, len(entries))
	for i, en := range entries {
		words[i] = en.word
		freqs[i] = en.freq
	}
	return words, freqs
}

// GetFrequency forwards to the underlying Dictionary, converting between
// the int32 code-point arrays the engine API uses and the rune slices
// Dictionary works with internally.
func (e *Engine) GetFrequency(word []int32) int32 {
	return int32(e.dict.GetFrequency(int32sToRunes(word)))
}

// IsValidBigram forwards to the underlying Dictionary.
func (e *Engine) IsValidBigram(w1, w2 []int32) bool {
	return e.dict.IsValidBigram(int32sToRunes(w1), int32sToRunes(w2))
}

func int32sToInts(s []int32) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

func intsToInt32s(s []int) []int32 {
	out := make([]int32, len(s))
	for i, v := range s {
		out[i] = int32(v)
	}
	return out
}
