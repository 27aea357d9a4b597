package suggest

import "errors"

// Keyboard geometry, a grid-bucketed proximity-char lookup, and the
// per-request InputState that derives touch-point proximity matching from it.

// keyGeometry is one key's rectangle, code point, and optional calibrated
// sweet spot.
type keyGeometry struct {
	code                          int32
	x, y, width, height           int32
	sweetSpotX, sweetSpotY        float32
	sweetSpotRadius               float32
	hasSweetSpot                  bool
}

// ProximityInfo is the immutable geometry of one keyboard layout: shared
// across every session that uses that layout.
type ProximityInfo struct {
	keyboardWidth, keyboardHeight int32
	gridWidth, gridHeight         int32
	cellWidth, cellHeight         int32
	commonKeyWidth, commonKeyHeight int32
	keys                          []keyGeometry
	codeToKeyIndex                map[int32]int
	// grid[bin] is the list of key indices admitted into that grid cell's
	// proximity bucket.
	grid [][]int
	// hasSweetSpotData is true when every key carries a calibrated sweet
	// spot, enabling the touch-position ranking factor; ranking falls back
	// to the coarser proximity-only demotions otherwise.
	hasSweetSpotData bool
}

// NewProximityInfo builds a ProximityInfo from the flattened arrays
// describing key rectangles, codes, and optional calibrated sweet spots.
func NewProximityInfo(keyboardW, keyboardH, gridW, gridH, commonKeyW, commonKeyH int32,
	keyXs, keyYs, keyWidths, keyHeights, keyCodes []int32,
	sweetSpotX, sweetSpotY, sweetSpotR []float32) (*ProximityInfo, error) {
	keyCount := len(keyCodes)
	if len(keyXs) != keyCount || len(keyYs) != keyCount ||
		len(keyWidths) != keyCount || len(keyHeights) != keyCount {
		return nil, errors.New("suggest: mismatched key array lengths")
	}
	if gridW <= 0 || gridH <= 0 {
		return nil, errors.New("suggest: grid dimensions must be positive")
	}
	hasSweetSpots := len(sweetSpotX) == keyCount && len(sweetSpotY) == keyCount && len(sweetSpotR) == keyCount

	p := &ProximityInfo{
		keyboardWidth:   keyboardW,
		keyboardHeight:  keyboardH,
		gridWidth:       gridW,
		gridHeight:      gridH,
		cellWidth:       (keyboardW + gridW - 1) / gridW,
		cellHeight:      (keyboardH + gridH - 1) / gridH,
		commonKeyWidth:  commonKeyW,
		commonKeyHeight: commonKeyH,
		keys:            make([]keyGeometry, keyCount),
		codeToKeyIndex:  make(map[int32]int, keyCount),
		hasSweetSpotData: hasSweetSpots,
	}
	for i := 0; i < keyCount; i++ {
		k := keyGeometry{
			code: keyCodes[i], x: keyXs[i], y: keyYs[i],
			width: keyWidths[i], height: keyHeights[i],
		}
		if hasSweetSpots {
			k.hasSweetSpot = true
			k.sweetSpotX, k.sweetSpotY, k.sweetSpotRadius = sweetSpotX[i], sweetSpotY[i], sweetSpotR[i]
		}
		p.keys[i] = k
		p.codeToKeyIndex[keyCodes[i]] = i
	}
	p.buildGrid()
	return p, nil
}

// buildGrid admits, for every grid cell, every key whose rectangle contains
// the cell's representative point or whose squared distance to it is less
// than the common key width squared.
func (p *ProximityInfo) buildGrid() {
	p.grid = make([][]int, int(p.gridWidth*p.gridHeight))
	threshold := int64(p.commonKeyWidth) * int64(p.commonKeyWidth)
	for by := int32(0); by < p.gridHeight; by++ {
		for bx := int32(0); bx < p.gridWidth; bx++ {
			cx := bx*p.cellWidth + p.cellWidth/2
			cy := by*p.cellHeight + p.cellHeight/2
			bin := int(by*p.gridWidth + bx)
			for ki, k := range p.keys {
				if cx >= k.x && cx < k.x+k.width && cy >= k.y && cy < k.y+k.height {
					p.grid[bin] = append(p.grid[bin], ki)
					continue
				}
				dx := int64(cx - (k.x + k.width/2))
				dy := int64(cy - (k.y + k.height/2))
				if dx*dx+dy*dy < threshold {
					p.grid[bin] = append(p.grid[bin], ki)
				}
			}
		}
	}
}

// getStartIndexFromCoordinates returns the flat grid-bin index containing
// (x, y), clamped to the grid's bounds.
func (p *ProximityInfo) getStartIndexFromCoordinates(x, y int32) int {
	bx := clampInt32(x/p.cellWidth, 0, p.gridWidth-1)
	by := clampInt32(y/p.cellHeight, 0, p.gridHeight-1)
	return int(by*p.gridWidth + bx)
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hasSpaceProximity reports whether the space key is admitted into the bin
// containing (x, y); negative coordinates are treated as "no proximity".
func (p *ProximityInfo) hasSpaceProximity(x, y int32) bool {
	if x < 0 || y < 0 {
		return false
	}
	bin := p.getStartIndexFromCoordinates(x, y)
	for _, ki := range p.grid[bin] {
		if p.keys[ki].code == keycodeSpace {
			return true
		}
	}
	return false
}

// keyIndexForCodePoint returns the key index bound to the given code point,
// or -1.
func (p *ProximityInfo) keyIndexForCodePoint(cp int32) int {
	if ki, ok := p.codeToKeyIndex[cp]; ok {
		return ki
	}
	return -1
}

// inputPosition is the per-touched-position data InputState derives from
// the raw (x, y, code) triple: the primary typed code point, the list of
// proximity key indices admitted at that touch point (primary first), and
// the touch coordinates themselves.
type inputPosition struct {
	x, y         int32
	primaryCode  int32
	proximities  []int32 // key codes, primary first; BuildInputState adds no additional-proximity section or delimiter
	proximityKey []int   // parallel key indices (same length/order as proximities), -1 if none
}

// InputState is the per-request derivation of the touch sequence against a
// ProximityInfo.
type InputState struct {
	prox      *ProximityInfo
	positions []inputPosition
}

// BuildInputState expands each touched position into its proximity char
// list: led by the user-typed code itself, every key that buildGrid admitted
// into the bin containing (x, y) is appended. Keys are not re-checked
// against the distance to the touch point itself.
func (p *ProximityInfo) BuildInputState(xs, ys, codes []int32) *InputState {
	positions := make([]inputPosition, len(codes))
	for i := range codes {
		x, y, code := xs[i], ys[i], codes[i]
		pos := inputPosition{x: x, y: y, primaryCode: code}
		pos.proximities = append(pos.proximities, code)
		pos.proximityKey = append(pos.proximityKey, p.keyIndexForCodePoint(code))
		if x >= 0 && y >= 0 {
			bin := p.getStartIndexFromCoordinates(x, y)
			for _, ki := range p.grid[bin] {
				k := p.prox_safeKey(ki)
				if k.code == code {
					continue
				}
				pos.proximities = append(pos.proximities, k.code)
				pos.proximityKey = append(pos.proximityKey, ki)
			}
		}
		positions[i] = pos
	}
	return &InputState{prox: p, positions: positions}
}

func (p *ProximityInfo) prox_safeKey(ki int) keyGeometry {
	return p.keys[ki]
}

// Len returns the number of touched positions.
func (s *InputState) Len() int { return len(s.positions) }

// PrimaryCodeAt returns the user-typed code point at index i.
func (s *InputState) PrimaryCodeAt(i int) int32 { return s.positions[i].primaryCode }

// getMatchedProximityId classifies a dictionary character c against the
// proximity chars recorded for touched position index: an
// exact base-lowercase match of the first (user-typed) slot is
// EquivalentChar; accent/case relaxation of that same slot is
// NearProximityChar; then the remaining proximity list is scanned, split by
// the ADDITIONAL_PROXIMITY_CHAR_DELIMITER into "near" and "additional"
// halves.
func (s *InputState) getMatchedProximityId(index int, c rune, checkProximityChars bool) (ProximityType, int) {
	pos := s.positions[index]
	firstChar := rune(pos.proximities[0])
	baseLowerC := toBaseLowerCase(c)

	if firstChar == baseLowerC || firstChar == c {
		return EquivalentChar, 0
	}
	if !checkProximityChars {
		return UnrelatedChar, -1
	}
	if toBaseLowerCase(firstChar) == baseLowerC {
		return NearProximityChar, 0
	}

	j := 1
	for j < len(pos.proximities) && pos.proximities[j] != additionalProximityCharDelimiter {
		pc := rune(pos.proximities[j])
		if pc == baseLowerC || pc == c {
			return NearProximityChar, j
		}
		j++
	}
	if j < len(pos.proximities) && pos.proximities[j] == additionalProximityCharDelimiter {
		j++
		for j < len(pos.proximities) {
			pc := rune(pos.proximities[j])
			if pc == baseLowerC || pc == c {
				return AdditionalProximityChar, j
			}
			j++
		}
	}
	return UnrelatedChar, -1
}

// getNormalizedSquaredDistance returns a scaled integer-ish distance for
// EQUIVALENT/NEAR proximity matches: the calibrated sweet-spot distance when
// proximityIndex == 0 and sweet-spot data is available, otherwise a
// sentinel meaning "no distance info".
func (s *InputState) getNormalizedSquaredDistance(index, proximityIndex int) float32 {
	pos := s.positions[index]
	if proximityIndex < 0 || proximityIndex >= len(pos.proximityKey) {
		return proximityCharWithoutDistanceInfo
	}
	ki := pos.proximityKey[proximityIndex]
	if ki < 0 {
		if proximityIndex == 0 {
			return equivalentCharWithoutDistanceInfo
		}
		return proximityCharWithoutDistanceInfo
	}
	k := s.prox.keys[ki]
	if proximityIndex == 0 && k.hasSweetSpot {
		dx := float64(pos.x) - float64(k.sweetSpotX)
		dy := float64(pos.y) - float64(k.sweetSpotY)
		scale := float64(s.prox.commonKeyWidth)
		if scale == 0 {
			scale = 1
		}
		return float32((dx/scale)*(dx/scale) + (dy/scale)*(dy/scale))
	}
	if proximityIndex == 0 {
		return equivalentCharWithoutDistanceInfo
	}
	return proximityCharWithoutDistanceInfo
}

// hasSpaceProximity is forwarded from the InputState's touch coordinates for
// convenience at a given input index.
func (s *InputState) hasSpaceProximity(index int) bool {
	pos := s.positions[index]
	return s.prox.hasSpaceProximity(pos.x, pos.y)
}

// existsAdjacentProximityChars reports whether the input at index-1 or
// index+1 includes the primary char at index among its own proximity chars,
// used to decide whether an excessive-char deletion looks like a plausible
// fat-finger double-tap.
func (s *InputState) existsAdjacentProximityChars(index int) bool {
	if index < 0 || index >= len(s.positions) {
		return false
	}
	primary := s.positions[index].primaryCode
	check := func(j int) bool {
		if j < 0 || j >= len(s.positions) {
			return false
		}
		for _, pc := range s.positions[j].proximities {
			if pc == additionalProximityCharDelimiter {
				break
			}
			if pc == primary {
				return true
			}
		}
		return false
	}
	return check(index-1) || check(index+1)
}
