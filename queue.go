package suggest

import "container/heap"

// A fixed-capacity min-heap of (score, word) that also retains the single
// highest-scoring candidate seen so far, plus the pool of sub-queues used by
// the multi-word splitter. container/heap is the standard Go translation of
// a priority queue — the one place here where stdlib is the idiomatic
// choice rather than a gap; see DESIGN.md.

// candidate is one entry in a CandidateQueue.
type candidate struct {
	score int32
	word  []int32
	kind  int32
}

type candidateHeap []*candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(*candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// CandidateQueue is a fixed-capacity min-heap ordered by score, with O(1)
// access to the highest-scoring candidate ever pushed.
type CandidateQueue struct {
	cap     int
	h       candidateHeap
	highest *candidate
	// onEvict, if set, is called once for every candidate dropped on push
	// (either outright rejected or evicted to make room). Used by Engine to
	// feed the queue-eviction metric without coupling this type to
	// Prometheus.
	onEvict func()
}

func newCandidateQueue(capacity int) *CandidateQueue {
	return &CandidateQueue{cap: capacity}
}

// push inserts (score, word, kind); if the queue is full the lowest-scoring
// entry is evicted only if score beats it, otherwise the new candidate is
// silently dropped.
func (q *CandidateQueue) push(score int32, word []int32, kind int32) {
	if q.h.Len() >= q.cap {
		if q.cap == 0 || q.h[0].score >= score {
			if q.onEvict != nil {
				q.onEvict()
			}
			return
		}
		heap.Pop(&q.h)
		if q.onEvict != nil {
			q.onEvict()
		}
	}
	w := make([]int32, len(word))
	copy(w, word)
	c := &candidate{score: score, word: w, kind: kind}
	heap.Push(&q.h, c)
	if q.highest == nil || q.highest.score < c.score {
		q.highest = c
	}
}

func (q *CandidateQueue) size() int { return q.h.Len() }

// clear empties the queue for reuse across requests without reallocating
// its backing array.
func (q *CandidateQueue) clear() {
	q.h = q.h[:0]
	q.highest = nil
}

// top returns the lowest-scoring candidate currently held, or nil.
func (q *CandidateQueue) top() *candidate {
	if q.h.Len() == 0 {
		return nil
	}
	return q.h[0]
}

// getHighestNormalizedScore recomputes the normalized score
// of the best candidate seen so far, for cheap mid-traversal inspection
// (e.g. deciding whether to enable the multi-word pass).
func (q *CandidateQueue) getHighestNormalizedScore(before []int32) float32 {
	if q.highest == nil {
		return 0
	}
	return calcNormalizedScore(before, q.highest.word, q.highest.score)
}

// outputSuggestions drains the queue into descending-score order, then
// hoists the candidate with the highest *normalized* score to index 0.
func (q *CandidateQueue) outputSuggestions(before []int32, limit int) (freqs []int32, words [][]int32, kinds []int32) {
	n := q.h.Len()
	if n > limit {
		n = limit
	}
	entries := make([]*candidate, q.h.Len())
	copy(entries, q.h)
	// Sort descending by score via repeated heap pops on a scratch copy.
	scratch := make(candidateHeap, len(entries))
	copy(scratch, entries)
	ordered := make([]*candidate, 0, len(entries))
	for scratch.Len() > 0 {
		ordered = append(ordered, heap.Pop(&scratch).(*candidate))
	}
	// ordered is ascending; reverse for descending.
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	if len(ordered) > 1 {
		bestNorm := calcNormalizedScore(before, ordered[0].word, ordered[0].score)
		hoistIdx := 0
		for i, c := range ordered[1:] {
			if norm := calcNormalizedScore(before, c.word, c.score); norm > bestNorm {
				bestNorm, hoistIdx = norm, i+1
			}
		}
		if hoistIdx > 0 {
			best := ordered[hoistIdx]
			copy(ordered[1:hoistIdx+1], ordered[:hoistIdx])
			ordered[0] = best
		}
	}
	freqs = make([]int32, len(ordered))
	words = make([][]int32, len(ordered))
	kinds = make([]int32, len(ordered))
	for i, c := range ordered {
		freqs[i] = c.score
		words[i] = c.word
		kinds[i] = c.kind
	}
	return
}

// candidateQueuePool holds the master queue plus a [word index][input
// length] grid of sub-queues used by the multi-word splitter: sub-queue [w][l] retains the best candidate found so far for
// using l input characters as word #w of a split.
type candidateQueuePool struct {
	master *CandidateQueue
	sub    [multipleWordsSuggestionMaxWords][]*CandidateQueue
}

func newCandidateQueuePool(maxWords int) *candidateQueuePool {
	p := &candidateQueuePool{master: newCandidateQueue(maxWords)}
	for w := 0; w < multipleWordsSuggestionMaxWords; w++ {
		p.sub[w] = make([]*CandidateQueue, MaxWordLengthInternal+1)
		for l := range p.sub[w] {
			p.sub[w][l] = newCandidateQueue(subQueueMaxCount)
		}
	}
	return p
}

func (p *candidateQueuePool) clear() {
	p.master.clear()
	for w := range p.sub {
		for _, q := range p.sub[w] {
			q.clear()
		}
	}
}

func (p *candidateQueuePool) subQueue(wordIndex, inputLen int) *CandidateQueue {
	return p.sub[wordIndex][inputLen]
}
