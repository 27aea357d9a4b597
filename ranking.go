package suggest

import "math"

// Scoring turns match length, edit distance, and proximity/geometry
// penalties into a single integer frequency-like score. Every multiply
// saturates at the 31-bit signed boundary rather than overflowing.

const int31Max = math.MaxInt32

func saturatingMul(score int64, numerator, denominator int64) int32 {
	if denominator == 0 {
		denominator = 1
	}
	v := score * numerator / denominator
	if v > int31Max {
		return int31Max
	}
	if v < 0 {
		return 0
	}
	return int32(v)
}

func pow(base, exp int) int64 {
	r := int64(1)
	for i := 0; i < exp; i++ {
		r *= int64(base)
		if r > int31Max {
			return int31Max
		}
	}
	return r
}

func quoteCount(word []rune) int {
	n := 0
	for _, c := range word {
		if c == '\'' {
			n++
		}
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// calculateFinalProbability computes the final per-candidate score for one
// terminal reached by a traversal, given its unigram frequency and the
// CorrectionState that produced it.
func calculateFinalProbability(cs *CorrectionState, unigramFreq int, inputWord []rune, touchCalibrated bool) int32 {
	f := cs.current()
	outputWord := cs.output
	inputLength := cs.inputLength
	outputLength := f.outputIndex

	match := inputLength - f.proximityCount - f.excessiveCount
	sameLength := inputLength == f.inputIndex+ifInt(f.lastCharExceeded, 2, 1)
	quoteDiff := maxInt(0, quoteCount(outputWord)-quoteCount(inputWord))

	score := int64(unigramFreq)
	anyCorrectionUsed := f.proximityCount > 0 || f.excessiveCount > 0 || f.skippedCount > 0 ||
		f.transposedCount > 0 || f.additionalProximityCount > 0

	if anyCorrectionUsed {
		ed := cs.edit.distance() - f.transposedCount - quoteDiff
		if ed < 0 {
			ed = 0
		}
		exponent := maxInt(inputLength, outputLength) - ed
		if exponent < 0 {
			exponent = 0
		}
		score = int64(saturatingMul(score, pow(typedLetterMultiplier, exponent), 1))
		if inputLength > outputLength {
			score = int64(saturatingMul(score, inputExceedsOutputDemotionRate, 100))
		}
		if ed == 1 && absInt(inputLength-outputLength) == 1 {
			promo := int64(wordsWithJustOneCorrectionPromotionRate + wordsWithJustOneCorrectionPromotionMultiplier*outputLength)
			score = int64(saturatingMul(score, promo, 100))
		}
		if ed == 0 {
			score = int64(saturatingMul(score, typedLetterMultiplier, 1))
			sameLength = true
		}
	} else {
		score = int64(saturatingMul(score, pow(typedLetterMultiplier, match), 1))
	}

	if f.firstCharUnrelated {
		score = int64(saturatingMul(score, firstCharDifferentDemotionRate, 100))
	}
	if f.skippedCount > 0 {
		num := int64(wordsWithMissingCharacterDemotionRate * (10*inputLength - wordsWithMissingCharacterDemotionStartPos10x))
		den := int64(10*inputLength - 2)
		score = int64(saturatingMul(score, num, den))
	}
	if f.transposedCount > 0 {
		score = int64(saturatingMul(score, wordsWithTransposedCharactersDemotionRate, 100))
	}
	if f.excessiveCount > 0 {
		score = int64(saturatingMul(score, wordsWithExcessiveCharacterDemotionRate, 100))
		if !f.lastCharExceeded && !cs.input.existsAdjacentProximityChars(f.excessivePos) {
			score = int64(saturatingMul(score, wordsWithExcessiveCharacterOutOfProximityDemotionRate, 100))
		}
	}

	pureFatFinger := f.skippedCount == 0 && f.excessiveCount == 0 && f.transposedCount == 0
	if touchCalibrated && pureFatFinger {
		for i := 0; i <= cs.depth; i++ {
			fr := cs.frames[i]
			if !fr.hasDistance {
				continue
			}
			factor := touchPositionFactor(fr.distanceSq)
			score = int64(saturatingMul(score, int64(factor*100), 100))
		}
	} else {
		for i := 0; i <= cs.depth; i++ {
			fr := cs.frames[i]
			if fr.additionalProximityMatching {
				score = int64(saturatingMul(score, wordsWithAdditionalProximityCharacterDemotionRate, 100))
			}
		}
	}

	if !touchCalibrated || !pureFatFinger {
		for i := 0; i <= cs.depth; i++ {
			fr := cs.frames[i]
			if fr.proximityMatching {
				score = int64(saturatingMul(score, typedLetterMultiplier, 1))
				score = int64(saturatingMul(score, wordsWithProximityCharacterDemotionRate, 100))
			} else if fr.additionalProximityMatching {
				score = int64(saturatingMul(score, typedLetterMultiplier, 1))
				score = int64(saturatingMul(score, wordsWithAdditionalProximityCharacterDemotionRate, 100))
			}
		}
	}

	exactMatch := !anyCorrectionUsed && quoteDiff == 0 && f.additionalProximityCount == 0
	if exactMatch {
		capped := unigramFreq
		if capped > maxFreq {
			capped = maxFreq
		}
		score = int64(capped)
	}

	if f.skippedCount == 0 && f.excessiveCount == 0 && f.transposedCount == 0 &&
		f.proximityCount == 0 && f.additionalProximityCount == 0 {
		score = int64(saturatingMul(score, fullMatchedWordsPromotionRate, 100))
	}

	if hasSkipMatchSuffix(inputWord, outputWord) {
		score = int64(saturatingMul(score, wordsWithMatchSkipPromotionRate, 100))
	}

	if sameLength && f.additionalProximityCount == 0 {
		score = int64(saturatingMul(score, fullWordMultiplier, 1))
	}

	if cs.useFullEditDistance && outputLength > inputLength+1 {
		divisor := pow(2, outputLength-inputLength-1)
		score = int64(saturatingMul(score, 1, divisor))
		if score < 1 {
			score = 1
		}
	}

	if score > int31Max {
		score = int31Max
	}
	return int32(score)
}

// touchPositionFactor is the piecewise-linear calibration curve over squared
// touch distance: flat near the key center, falling off past the neutral
// radius, floored at 0.3 so a wildly off-target tap still counts for something.
func touchPositionFactor(distanceSq float32) float32 {
	const a, b, c = 1.10, 1.00, 0.50
	const r1, r2 = neutralScoreSquaredRadius, halfScoreSquaredRadius
	x := float64(distanceSq)
	f1 := (a*(r1-x) + b*x) / r1
	f2 := (b*(r2-x) + c*(x-r1)) / (r2 - r1)
	factor := math.Min(f1, f2)
	if factor < 0.3 {
		factor = 0.3
	}
	return float32(factor)
}

// hasSkipMatchSuffix reports the "shel -> shell" repeated-suffix pattern: the
// output is the input plus one or more repetitions of the input's final
// character appended.
func hasSkipMatchSuffix(input, output []rune) bool {
	if len(output) <= len(input) || len(input) == 0 {
		return false
	}
	last := toBaseLowerCase(input[len(input)-1])
	for i := 0; i < len(input)-1; i++ {
		if toBaseLowerCase(input[i]) != toBaseLowerCase(output[i]) {
			return false
		}
	}
	for i := len(input) - 1; i < len(output); i++ {
		if toBaseLowerCase(output[i]) != last {
			return false
		}
	}
	return true
}

func ifInt(cond bool, t, f int) int {
	if cond {
		return t
	}
	return f
}

// calcFreqForSplitMultipleWords scores a multi-word split candidate: freqs
// and lengths are per-word unigram frequency and code point length,
// isSpaceProximity says whether the separating position was a typed space
// or a proximity/missing one.
func calcFreqForSplitMultipleWords(freqs []int32, lengths []int, isSpaceProximity []bool, firstCapitalized, secondCapitalized bool) int32 {
	n := len(freqs)
	if n == 0 {
		return 0
	}
	var total int64
	singleLetterCount := 0
	shortCount := 0
	for i, freq := range freqs {
		l := lengths[i]
		demoted := saturatingMul(int64(freq), int64(100-80/(l+1)), 100)
		total += int64(demoted)
		if l == 1 {
			singleLetterCount++
		}
		if l <= 2 {
			shortCount++
		}
	}
	total = total * 2 / int64(n)

	if n >= 3 {
		for i := 0; i+1 < n; i++ {
			if (lengths[i] == 1 && lengths[i+1] == 2) || (lengths[i] == 2 && lengths[i+1] == 1) {
				return 0
			}
		}
		if singleLetterCount >= 2 {
			return 0
		}
		if shortCount >= 4 {
			return 0
		}
		for i, freq := range freqs {
			if lengths[i] <= 4 {
				demoted := saturatingMul(int64(freq), int64(100-80/(lengths[i]+1)), 100)
				if demoted <= int32(maxFreq*58/100) {
					return 0
				}
			}
		}
		total = total * multipleWordsDemotionRate / 100
	}

	totalLength := 0
	for _, l := range lengths {
		totalLength += l
	}
	L := int64(totalLength)
	if L == 0 {
		L = 1
	}
	total = total * (100 - 100/(L*L)) / 100
	total = total * (100 + 100/L) / 100
	total = total * pow(typedLetterMultiplier, totalLength)

	allSpace := true
	for _, sp := range isSpaceProximity {
		if sp {
			allSpace = false
		}
	}
	if !allSpace {
		total = total * wordsWithProximityCharacterDemotionRate / 100
		total = total * wordsWithMistypedSpaceDemotionRate / 100
	} else {
		total = total * wordsWithMissingSpaceCharacterDemotionRate / 100
	}

	if firstCapitalized != secondCapitalized {
		total = total * twoWordsCapitalizedDemotionRate / 100
	}

	if total > int31Max {
		total = int31Max
	}
	if total < 0 {
		total = 0
	}
	return int32(total)
}

// calcNormalizedScore derives a 0..1 confidence from a raw score: rawScore
// over the theoretical maximum for a word this long, weighted down by edit
// distance. Words whose `after` is all spaces return 0.
func calcNormalizedScore(before []int32, after []int32, rawScore int32) float32 {
	if len(after) == 0 {
		return 0
	}
	allSpace := true
	for _, c := range after {
		if c != keycodeSpace {
			allSpace = false
			break
		}
	}
	if allSpace {
		return 0
	}
	spaces := 0
	for _, c := range after {
		if c == keycodeSpace {
			spaces++
		}
	}
	minLen := minInt(len(before), len(after)-spaces)
	maxScore := float64(maxFreq) * math.Pow(typedLetterMultiplier, float64(minLen)) * fullWordMultiplier

	beforeRunes := int32sToRunes(before)
	afterRunes := int32sToRunes(after)
	ed := plainEditDistance(beforeRunes, afterRunes)
	weight := 1.0 - float64(ed)/float64(len(after))
	if weight < 0 {
		weight = 0
	}
	if maxScore == 0 {
		return 0
	}
	return float32((float64(rawScore) / maxScore) * weight)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func int32sToRunes(s []int32) []rune {
	r := make([]rune, len(s))
	for i, c := range s {
		r[i] = rune(c)
	}
	return r
}
