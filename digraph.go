package suggest

// Digraph expansion turns a typed two-letter sequence into the single
// ligature code point a dictionary might store instead (German umlaut
// digraphs, French ligatures), recursively trying every keep/replace
// combination up to a fixed search depth.

type digraphPair struct {
	first, second rune
	ligature      rune
}

var germanDigraphs = []digraphPair{
	{'a', 'e', 'ä'},
	{'o', 'e', 'ö'},
	{'u', 'e', 'ü'},
}

var frenchDigraphs = []digraphPair{
	{'a', 'e', 'æ'},
	{'o', 'e', 'œ'},
}

// expandDigraphs returns every concrete input variant obtained by, at each
// position where a digraph pair occurs, either keeping the two typed
// letters or substituting the ligature. The input itself is always
// included. Recursion depth (digraph occurrences considered) is capped at
// defaultMaxDigraphSearchDepth.
func expandDigraphs(input []rune, pairs []digraphPair) [][]rune {
	if len(pairs) == 0 {
		return [][]rune{input}
	}
	variants := [][]rune{input}
	expandDigraphsAt(input, pairs, 0, defaultMaxDigraphSearchDepth, &variants)
	return variants
}

func expandDigraphsAt(input []rune, pairs []digraphPair, pos int, depthBudget int, out *[][]rune) {
	if depthBudget <= 0 {
		return
	}
	for i := pos; i+1 < len(input); i++ {
		for _, p := range pairs {
			if toBaseLowerCase(input[i]) != p.first || toBaseLowerCase(input[i+1]) != p.second {
				continue
			}
			variant := make([]rune, 0, len(input)-1)
			variant = append(variant, input[:i]...)
			variant = append(variant, p.ligature)
			variant = append(variant, input[i+2:]...)
			*out = append(*out, variant)
			expandDigraphsAt(variant, pairs, i+1, depthBudget-1, out)
		}
	}
}

// digraphPairsForDictionary returns the digraph table to search for a
// dictionary opened with the given header option flags, or nil if neither
// applies.
func digraphPairsForDictionary(requiresGerman, requiresFrench bool) []digraphPair {
	var pairs []digraphPair
	if requiresGerman {
		pairs = append(pairs, germanDigraphs...)
	}
	if requiresFrench {
		pairs = append(pairs, frenchDigraphs...)
	}
	return pairs
}
