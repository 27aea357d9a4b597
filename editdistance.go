package suggest

// An incremental Damerau-Levenshtein table advanced one output row at a
// time so a traverser can read a candidate's edit distance at any point
// during a depth-first walk without recomputing the whole table.
type editDistanceTable struct {
	inputLength int
	input       []rune // base-lowercased input code points
	// rows holds every row computed so far; rows[o][i] is the edit distance
	// between input[:i] and output[:o].
	rows [][]int32
	// output accumulates the candidate word's base-lowercased code points as
	// the traversal appends them, one per call to advance.
	output []rune
}

func newEditDistanceTable(inputCodePoints []rune) *editDistanceTable {
	t := &editDistanceTable{
		inputLength: len(inputCodePoints),
		input:       make([]rune, len(inputCodePoints)),
	}
	for i, c := range inputCodePoints {
		t.input[i] = toBaseLowerCase(c)
	}
	row0 := make([]int32, t.inputLength+1)
	for i := range row0 {
		row0[i] = int32(i)
	}
	t.rows = [][]int32{row0}
	return t
}

// reset clears the table for a new traversal pass while keeping the input
// sequence.
func (t *editDistanceTable) reset() {
	row0 := make([]int32, t.inputLength+1)
	for i := range row0 {
		row0[i] = int32(i)
	}
	t.rows = t.rows[:0]
	t.rows = append(t.rows, row0)
	t.output = t.output[:0]
}

// advance appends outputChar to the candidate word and computes its edit
// distance row, assuming all prior
// rows are already valid.
func (t *editDistanceTable) advance(outputChar rune) {
	o := len(t.rows)
	t.output = append(t.output, toBaseLowerCase(outputChar))
	prev := t.rows[o-1]
	var prevprev []int32
	if o >= 2 {
		prevprev = t.rows[o-2]
	}
	current := make([]int32, t.inputLength+1)
	current[0] = int32(o)
	co := t.output[o-1]
	for i := 1; i <= t.inputLength; i++ {
		ci := t.input[i-1]
		cost := int32(1)
		if ci == co {
			cost = 0
		}
		best := current[i-1] + 1
		if v := prev[i] + 1; v < best {
			best = v
		}
		if v := prev[i-1] + cost; v < best {
			best = v
		}
		if i >= 2 && o >= 2 && ci == t.output[o-2] && co == t.input[i-2] {
			if v := prevprev[i-2] + 1; v < best {
				best = v
			}
		}
		current[i] = best
	}
	t.rows = append(t.rows, current)
}

// outputLength returns how many output characters have been placed so far.
func (t *editDistanceTable) outputLength() int {
	return len(t.rows) - 1
}

// distance reads the edit distance between the full input and the output
// placed so far: table[outputLength][inputLength].
func (t *editDistanceTable) distance() int {
	return int(t.rows[t.outputLength()][t.inputLength])
}

// distanceAtRow reads the edit distance using only the first `row` output
// characters, for callers that need a point-in-time reading (e.g. the
// ranking algorithm comparing against the row at terminal time).
func (t *editDistanceTable) distanceAtRow(row int) int {
	return int(t.rows[row][t.inputLength])
}

// plainEditDistance computes the Damerau-Levenshtein distance between two
// already-decoded rune slices directly, for standalone callers that aren't
// driving a trie traversal.
func plainEditDistance(a, b []rune) int {
	la, lb := len(a), len(b)
	rows := make([][]int32, lb+1)
	for o := range rows {
		rows[o] = make([]int32, la+1)
	}
	for i := 0; i <= la; i++ {
		rows[0][i] = int32(i)
	}
	for o := 1; o <= lb; o++ {
		rows[o][0] = int32(o)
		for i := 1; i <= la; i++ {
			cost := int32(1)
			if toBaseLowerCase(a[i-1]) == toBaseLowerCase(b[o-1]) {
				cost = 0
			}
			best := rows[o][i-1] + 1
			if v := rows[o-1][i] + 1; v < best {
				best = v
			}
			if v := rows[o-1][i-1] + cost; v < best {
				best = v
			}
			if i >= 2 && o >= 2 &&
				toBaseLowerCase(a[i-1]) == toBaseLowerCase(b[o-2]) &&
				toBaseLowerCase(b[o-1]) == toBaseLowerCase(a[i-2]) {
				if v := rows[o-2][i-2] + 1; v < best {
					best = v
				}
			}
			rows[o][i] = best
		}
	}
	return int(rows[lb][la])
}
