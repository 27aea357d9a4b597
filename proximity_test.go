package suggest

import "testing"

func buildTestQwerty(t testing.TB) (*ProximityInfo, map[rune][2]int32) {
	t.Helper()
	rows := []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}
	var codes, xs, ys, ws, hs []int32
	centers := map[rune][2]int32{}
	const keyW, keyH = int32(100), int32(100)
	for r, row := range rows {
		for i, ch := range row {
			x, y := int32(i)*keyW, int32(r)*keyH
			codes = append(codes, int32(ch))
			xs = append(xs, x)
			ys = append(ys, y)
			ws = append(ws, keyW)
			hs = append(hs, keyH)
			centers[ch] = [2]int32{x + keyW/2, y + keyH/2}
		}
	}
	codes = append(codes, ' ')
	xs = append(xs, 200)
	ys = append(ys, int32(len(rows))*keyH)
	ws = append(ws, 600)
	hs = append(hs, keyH)
	centers[' '] = [2]int32{500, int32(len(rows))*keyH + keyH/2}

	p, err := NewProximityInfo(int32(10)*keyW, int32(len(rows)+1)*keyH, 12, int32(len(rows)+1),
		keyW, keyH, xs, ys, ws, hs, codes, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewProximityInfo: %v", err)
	}
	return p, centers
}

func TestNewProximityInfoRejectsMismatchedArrays(t *testing.T) {
	_, err := NewProximityInfo(100, 100, 1, 1, 10, 10,
		[]int32{0, 1}, []int32{0}, []int32{10}, []int32{10}, []int32{'a', 'b'}, nil, nil, nil)
	if err == nil {
		t.Errorf("expected an error for mismatched key array lengths")
	}
}

func TestAdjacentKeysAreProximate(t *testing.T) {
	p, centers := buildTestQwerty(t)
	wx, wy := centers['w'][0], centers['w'][1]
	input := p.BuildInputState([]int32{wx}, []int32{wy}, []int32{'w'})

	// 'q' flanks 'w' on the same row and must show up as a proximity
	// character at touch index 0; a key on a different row ('m') should not.
	kind, _ := input.getMatchedProximityId(0, 'q', true)
	if kind == UnrelatedChar {
		t.Errorf("expected 'q' to be a proximity char near 'w', got Unrelated")
	}
	kind, _ = input.getMatchedProximityId(0, 'm', true)
	if kind != UnrelatedChar {
		t.Errorf("expected 'm' to be unrelated to 'w', got %v", kind)
	}
}

func TestGetMatchedProximityIdEquivalentMatch(t *testing.T) {
	p, centers := buildTestQwerty(t)
	ax, ay := centers['a'][0], centers['a'][1]
	input := p.BuildInputState([]int32{ax}, []int32{ay}, []int32{'a'})
	kind, _ := input.getMatchedProximityId(0, 'a', true)
	if kind != EquivalentChar {
		t.Errorf("exact typed char should be EquivalentChar, got %v", kind)
	}
	// checkProximityChars=false collapses everything but the exact match to
	// Unrelated.
	kind, _ = input.getMatchedProximityId(0, 'q', false)
	if kind != UnrelatedChar {
		t.Errorf("expected Unrelated when checkProximityChars is false, got %v", kind)
	}
}

func TestHasSpaceProximity(t *testing.T) {
	p, centers := buildTestQwerty(t)
	sx, sy := centers[' '][0], centers[' '][1]
	if !p.hasSpaceProximity(sx, sy) {
		t.Errorf("expected the space key's own coordinates to have space proximity")
	}
	if p.hasSpaceProximity(-1, -1) {
		t.Errorf("negative coordinates must report no proximity")
	}
}
