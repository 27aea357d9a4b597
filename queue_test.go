package suggest

import "testing"

func TestCandidateQueueDropsLowerScoreWhenFull(t *testing.T) {
	q := newCandidateQueue(2)
	q.push(10, []int32{'a'}, KindCorrection)
	q.push(20, []int32{'b'}, KindCorrection)
	q.push(5, []int32{'c'}, KindCorrection) // full at cap 2, lower than the current min (10): dropped
	if q.size() != 2 {
		t.Fatalf("size = %d, want 2", q.size())
	}
	if top := q.top(); top.score != 10 {
		t.Errorf("lowest retained score = %d, want 10 (the 5 should have been dropped)", top.score)
	}
}

func TestCandidateQueueEvictsLowerScoreToMakeRoom(t *testing.T) {
	q := newCandidateQueue(2)
	q.push(10, []int32{'a'}, KindCorrection)
	q.push(20, []int32{'b'}, KindCorrection)
	q.push(30, []int32{'c'}, KindCorrection) // beats the current min (10): evicts it
	if q.size() != 2 {
		t.Fatalf("size = %d, want 2", q.size())
	}
	if top := q.top(); top.score != 20 {
		t.Errorf("lowest retained score after eviction = %d, want 20", top.score)
	}
}

func TestCandidateQueueOnEvictCalledOnDropAndEviction(t *testing.T) {
	q := newCandidateQueue(1)
	evictions := 0
	q.onEvict = func() { evictions++ }
	q.push(10, []int32{'a'}, KindCorrection)
	q.push(5, []int32{'b'}, KindCorrection)  // dropped outright
	q.push(20, []int32{'c'}, KindCorrection) // evicts the 10
	if evictions != 2 {
		t.Errorf("onEvict called %d times, want 2", evictions)
	}
}

func TestCandidateQueueOutputSuggestionsDescending(t *testing.T) {
	q := newCandidateQueue(5)
	q.push(10, []int32{'a'}, KindCorrection)
	q.push(30, []int32{'b'}, KindCorrection)
	q.push(20, []int32{'c'}, KindCorrection)
	freqs, _, _ := q.outputSuggestions(nil, 5)
	for i := 1; i < len(freqs); i++ {
		if freqs[i-1] < freqs[i] {
			t.Errorf("outputSuggestions not descending: %v", freqs)
			break
		}
	}
	if len(freqs) != 3 {
		t.Fatalf("len(freqs) = %d, want 3", len(freqs))
	}
}

func TestCandidateQueueOutputSuggestionsRespectsLimit(t *testing.T) {
	q := newCandidateQueue(5)
	for i := int32(1); i <= 5; i++ {
		q.push(i*10, []int32{int32('a') + i}, KindCorrection)
	}
	freqs, words, kinds := q.outputSuggestions(nil, 2)
	if len(freqs) != 2 || len(words) != 2 || len(kinds) != 2 {
		t.Fatalf("outputSuggestions with limit 2 returned %d entries", len(freqs))
	}
}

func TestCandidateQueuePoolSubQueueGrid(t *testing.T) {
	p := newCandidateQueuePool(10)
	q1 := p.subQueue(0, 3)
	q2 := p.subQueue(1, 3)
	if q1 == q2 {
		t.Errorf("sub-queues for different word indices must be distinct")
	}
	q1.push(5, []int32{'a'}, KindCorrection)
	p.clear()
	if q1.size() != 0 {
		t.Errorf("pool.clear() should empty every sub-queue")
	}
}
