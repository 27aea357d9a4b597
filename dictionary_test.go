package suggest

import (
	"encoding/binary"
	"sort"
	"strings"
	"testing"
)

// testTrieNode/testNodeArray/buildTestDictionary encode a word list into a
// v1-magic packed trie buffer for use across this package's tests: one code
// point per PtNode, no multi-char compression, no shortcuts, a fixed 3-byte
// forward children offset. It reaches for the package's own unexported flag
// constants directly instead of re-declaring the wire format.

type testTrieNode struct {
	ch       rune
	terminal bool
	freq     int
	children []*testTrieNode
}

func testInsert(root *testTrieNode, word string, freq int) {
	cur := root
	for _, r := range word {
		var child *testTrieNode
		for _, c := range cur.children {
			if c.ch == r {
				child = c
				break
			}
		}
		if child == nil {
			child = &testTrieNode{ch: r}
			cur.children = append(cur.children, child)
		}
		cur = child
	}
	cur.terminal = true
	cur.freq = freq
}

type testNodeArray struct {
	nodes []*testTrieNode
	start int
	size  int
}

func buildTestDictionary(t testing.TB, words []string, freqs []int) []byte {
	t.Helper()
	root := &testTrieNode{}
	for i, w := range words {
		testInsert(root, strings.ToLower(w), freqs[i])
	}
	var sortRec func(n *testTrieNode)
	sortRec = func(n *testTrieNode) {
		sort.Slice(n.children, func(i, j int) bool { return n.children[i].ch < n.children[j].ch })
		for _, c := range n.children {
			sortRec(c)
		}
	}
	sortRec(root)

	childArrOf := map[*testTrieNode]*testNodeArray{}
	rootArr := &testNodeArray{nodes: root.children}
	arrays := []*testNodeArray{rootArr}
	queue := []*testNodeArray{rootArr}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, n := range a.nodes {
			if len(n.children) > 0 {
				ca := &testNodeArray{nodes: n.children}
				childArrOf[n] = ca
				arrays = append(arrays, ca)
				queue = append(queue, ca)
			}
		}
	}

	groupCountBytes := func(n int) int {
		if n < 0x80 {
			return 1
		}
		return 2
	}
	for _, a := range arrays {
		size := groupCountBytes(len(a.nodes))
		for _, n := range a.nodes {
			size += 2
			if n.terminal {
				size++
			}
			if len(n.children) > 0 {
				size += 3
			}
		}
		a.size = size
	}
	pos := 5
	for _, a := range arrays {
		a.start = pos
		pos += a.size
	}

	buf := make([]byte, pos)
	buf[0], buf[1], buf[2], buf[3] = 0x78, 0xB1, 0x01, 0x00
	buf[4] = 0x00
	for _, a := range arrays {
		p := a.start
		n := len(a.nodes)
		if n < 0x80 {
			buf[p] = byte(n)
			p++
		} else {
			buf[p] = byte(0x80 | (n>>8)&0x7F)
			buf[p+1] = byte(n & 0xFF)
			p += 2
		}
		for _, nd := range a.nodes {
			flags := byte(0)
			if nd.terminal {
				flags |= flagIsTerminal
			}
			hasChildren := len(nd.children) > 0
			if hasChildren {
				flags |= addressTypeThree
			}
			buf[p] = flags
			p++
			buf[p] = byte(nd.ch)
			p++
			if nd.terminal {
				f := nd.freq
				if f > 255 {
					f = 255
				}
				if f < 0 {
					f = 0
				}
				buf[p] = byte(f)
				p++
			}
			if hasChildren {
				origin := p
				offset := childArrOf[nd].start - origin
				var b [4]byte
				binary.BigEndian.PutUint32(b[:], uint32(offset))
				buf[p], buf[p+1], buf[p+2] = b[1], b[2], b[3]
				p += 3
			}
		}
	}
	return buf
}

func TestOpenDictionaryRejectsUnknownMagic(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0}
	if _, err := OpenDictionary(buf); err == nil {
		t.Errorf("expected an error for an unrecognized magic number")
	}
}

func TestOpenDictionaryRejectsShortBuffer(t *testing.T) {
	if _, err := OpenDictionary([]byte{1, 2}); err == nil {
		t.Errorf("expected an error for a buffer too short to hold a header")
	}
}

func TestGetFrequencyRoundTrip(t *testing.T) {
	buf := buildTestDictionary(t, []string{"hello", "help", "held"}, []int{150, 140, 100})
	d, err := OpenDictionary(buf)
	if err != nil {
		t.Fatalf("OpenDictionary: %v", err)
	}
	for word, want := range map[string]int{"hello": 150, "help": 140, "held": 100} {
		if got := d.GetFrequency([]rune(word)); got != want {
			t.Errorf("GetFrequency(%q) = %d, want %d", word, got, want)
		}
	}
	if got := d.GetFrequency([]rune("nope")); got != NotAProbability {
		t.Errorf("GetFrequency(nonexistent) = %d, want %d", got, NotAProbability)
	}
}

// TestTerminalPositionRoundTrip is spec.md §8 property 4: for every word
// that exists, getWordAtAddress(getTerminalPosition(word)) must yield the
// word back.
func TestTerminalPositionRoundTrip(t *testing.T) {
	words := []string{"hello", "help", "held", "jello", "a", "apple", "application"}
	freqs := []int{150, 140, 100, 90, 50, 60, 70}
	buf := buildTestDictionary(t, words, freqs)
	d, err := OpenDictionary(buf)
	if err != nil {
		t.Fatalf("OpenDictionary: %v", err)
	}
	for _, w := range words {
		pos := getTerminalPosition(d.buf, d.root, runesToCodes([]rune(w)))
		if pos == NotValidWord {
			t.Fatalf("getTerminalPosition(%q) = NotValidWord", w)
		}
		got, freq := getWordAtAddress(d.buf, d.root, pos, MaxWordLengthInternal)
		gotWord := string(intsToRunesForTest(got))
		if gotWord != w {
			t.Errorf("getWordAtAddress(getTerminalPosition(%q)) = %q, want %q", w, gotWord, w)
		}
		if freq == NotAProbability {
			t.Errorf("getWordAtAddress(%q) lost the frequency", w)
		}
	}
}

func intsToRunesForTest(cps []int) []rune {
	r := make([]rune, len(cps))
	for i, cp := range cps {
		r[i] = rune(cp)
	}
	return r
}
