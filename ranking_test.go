package suggest

import "testing"

func TestSaturatingMulCapsAtInt31Max(t *testing.T) {
	got := saturatingMul(int64(int31Max), 10, 1)
	if got != int31Max {
		t.Errorf("saturatingMul overflow = %d, want cap of %d", got, int31Max)
	}
}

func TestSaturatingMulZeroDenominatorTreatedAsOne(t *testing.T) {
	got := saturatingMul(42, 2, 0)
	if got != 84 {
		t.Errorf("saturatingMul(42, 2, 0) = %d, want 84 (denominator 0 treated as 1)", got)
	}
}

func TestSaturatingMulNeverNegative(t *testing.T) {
	got := saturatingMul(-50, 2, 1)
	if got != 0 {
		t.Errorf("saturatingMul with a negative product = %d, want floored at 0", got)
	}
}

func TestHasSkipMatchSuffix(t *testing.T) {
	cases := []struct {
		input, output string
		want          bool
	}{
		{"shel", "shell", true},
		{"shel", "shelll", true},
		{"hello", "hello", false}, // same length, no suffix repeated
		{"hello", "helloo", true},
		{"cat", "cats", false}, // appended char differs from the last input char
		{"", "a", false},
	}
	for _, c := range cases {
		got := hasSkipMatchSuffix([]rune(c.input), []rune(c.output))
		if got != c.want {
			t.Errorf("hasSkipMatchSuffix(%q, %q) = %v, want %v", c.input, c.output, got, c.want)
		}
	}
}

func TestTouchPositionFactorFallsOffWithDistance(t *testing.T) {
	near := touchPositionFactor(0)
	mid := touchPositionFactor(neutralScoreSquaredRadius)
	far := touchPositionFactor(halfScoreSquaredRadius)
	if !(near >= mid && mid >= far) {
		t.Errorf("touchPositionFactor should be non-increasing with distance: near=%v mid=%v far=%v", near, mid, far)
	}
	if far < 0.3 {
		t.Errorf("touchPositionFactor floor is 0.3, got %v", far)
	}
	if huge := touchPositionFactor(halfScoreSquaredRadius * 100); huge < 0.3 {
		t.Errorf("touchPositionFactor must floor at 0.3 even far past r2, got %v", huge)
	}
}

func TestCalcNormalizedScoreAllSpaceIsZero(t *testing.T) {
	before := []int32{'h', 'i'}
	after := []int32{keycodeSpace, keycodeSpace}
	if got := calcNormalizedScore(before, after, 1000); got != 0 {
		t.Errorf("calcNormalizedScore with all-space after = %v, want 0", got)
	}
}

func TestCalcNormalizedScoreExactMatchIsHighest(t *testing.T) {
	before := []int32{'h', 'e', 'l', 'l', 'o'}
	exact := calcNormalizedScore(before, before, maxFreq)
	typo := calcNormalizedScore(before, []int32{'h', 'e', 'l', 'l', 'p'}, maxFreq/2)
	if !(exact > typo) {
		t.Errorf("an exact match should normalize higher than a corrected typo: exact=%v typo=%v", exact, typo)
	}
}

func TestCalcFreqForSplitMultipleWordsRejectsSingleLetterPair(t *testing.T) {
	// Three single/short words with two adjacent 1-then-2-length words must
	// be rejected outright (spec.md's n>=3 safety net).
	freqs := []int32{200, 200, 200}
	lengths := []int{1, 2, 3}
	got := calcFreqForSplitMultipleWords(freqs, lengths, []bool{true, true}, false, false)
	if got != 0 {
		t.Errorf("expected a 1-then-2-length adjacent pair among 3 words to be rejected, got %d", got)
	}
}

func TestCalcFreqForSplitMultipleWordsPositiveForPlausibleSplit(t *testing.T) {
	freqs := []int32{200, 180}
	lengths := []int{4, 5}
	got := calcFreqForSplitMultipleWords(freqs, lengths, []bool{true}, false, false)
	if got <= 0 {
		t.Errorf("expected a positive score for a plausible two-word split, got %d", got)
	}
}

func TestCalcFreqForSplitMultipleWordsEmptyIsZero(t *testing.T) {
	if got := calcFreqForSplitMultipleWords(nil, nil, nil, false, false); got != 0 {
		t.Errorf("calcFreqForSplitMultipleWords with no words = %d, want 0", got)
	}
}
