package suggest

import (
	"math/rand"
	"testing"
)

var benchWords = []string{
	"hello", "help", "held", "world", "word", "work", "wore",
	"jello", "yellow", "mellow", "fellow", "below", "elbow",
	"keyboard", "keynote", "keyword", "suggestion", "suggest",
	"correction", "correct", "collect", "connect", "connection",
}

var benchSuggestInputs = []string{
	"helo", "wrold", "collction", "conection", "kegboard", "sugest",
}

func benchDictionary(b *testing.B) []byte {
	b.Helper()
	freqs := make([]int, len(benchWords))
	r := rand.New(rand.NewSource(1))
	for i := range freqs {
		freqs[i] = 50 + r.Intn(200)
	}
	return buildTestDictionary(b, benchWords, freqs)
}

func BenchmarkEngineGetSuggestions(b *testing.B) {
	buf := benchDictionary(b)
	dict, err := OpenDictionary(buf)
	if err != nil {
		b.Fatalf("OpenDictionary: %v", err)
	}
	prox, centers := buildTestQwerty(b)
	engine := NewEngine(dict, prox, MaxWordLengthInternal, 10, nil)

	inputs := make([][3][]int32, len(benchSuggestInputs))
	for i, w := range benchSuggestInputs {
		var xs, ys, codes []int32
		for _, r := range w {
			c := centers[r]
			xs = append(xs, c[0])
			ys = append(ys, c[1])
			codes = append(codes, int32(r))
		}
		inputs[i] = [3][]int32{xs, ys, codes}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in := inputs[i%len(inputs)]
		engine.GetSuggestions(in[0], in[1], in[2], false)
	}
}
