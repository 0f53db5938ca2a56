package growth

import (
	"math"

	"skillbloom/internal/archetype"
)

// StageCount is the number of discrete growth phases.
const StageCount = 5

// Stage holds the discrete growth phase and the dimensional parameters the
// geometry generators consume. All dimensions come from fixed per-family
// lookup tables indexed by Index; growth is intentionally a step function
// (visible "growth spurts"), not a smooth interpolation.
type Stage struct {
	Index int `json:"index"`

	Height     float64 `json:"height"`
	TrunkWidth float64 `json:"trunkWidth"`
	// CanopySize is the family's spread dimension: canopy radius for
	// deciduous/drooping, frond length for tropical, zero where the
	// family has no spread.
	CanopySize float64 `json:"canopySize"`
	// ElementCount is the number of small repeated elements (leaves,
	// foliage layers, fronds, stalks, arms).
	ElementCount int `json:"elementCount"`
	// SubBranchCount is the number of structural sub-elements.
	SubBranchCount int `json:"subBranchCount"`

	// Bloom marks full completion: generators add their terminal
	// decoration (flower ring, coconuts, apex bloom).
	Bloom bool    `json:"bloom"`
	Ratio float64 `json:"ratio"`
}

// dims is one family's 5-entry stage tables.
type dims struct {
	height   [StageCount]float64
	trunk    [StageCount]float64
	canopy   [StageCount]float64
	elements [StageCount]int
	branches [StageCount]int
}

var familyDims = map[archetype.Family]dims{
	archetype.FamilyDeciduous: {
		height:   [StageCount]float64{80, 180, 320, 460, 580},
		trunk:    [StageCount]float64{12, 24, 40, 60, 80},
		canopy:   [StageCount]float64{0, 60, 130, 200, 280},
		elements: [StageCount]int{0, 8, 20, 40, 70},
		branches: [StageCount]int{0, 2, 4, 6, 8},
	},
	archetype.FamilyConifer: {
		height:   [StageCount]float64{60, 140, 260, 400, 520},
		trunk:    [StageCount]float64{10, 20, 34, 50, 70},
		canopy:   [StageCount]float64{40, 120, 200, 280, 360},
		elements: [StageCount]int{1, 3, 5, 7, 9},
		branches: [StageCount]int{1, 3, 5, 7, 9},
	},
	archetype.FamilyTropical: {
		height:   [StageCount]float64{70, 160, 280, 500, 600},
		trunk:    [StageCount]float64{15, 25, 40, 55, 65},
		canopy:   [StageCount]float64{30, 60, 100, 150, 200},
		elements: [StageCount]int{0, 3, 5, 7, 9},
		branches: [StageCount]int{0, 3, 5, 7, 9},
	},
	archetype.FamilyStalk: {
		height:   [StageCount]float64{100, 200, 300, 400, 500},
		trunk:    [StageCount]float64{15, 15, 15, 15, 15},
		canopy:   [StageCount]float64{0, 0, 0, 0, 0},
		elements: [StageCount]int{1, 2, 3, 4, 5},
		branches: [StageCount]int{1, 2, 3, 4, 5},
	},
	archetype.FamilyDrooping: {
		height:   [StageCount]float64{60, 120, 200, 300, 380},
		trunk:    [StageCount]float64{10, 20, 35, 50, 70},
		canopy:   [StageCount]float64{20, 50, 90, 130, 170},
		elements: [StageCount]int{4, 10, 18, 26, 34},
		branches: [StageCount]int{4, 10, 18, 26, 34},
	},
	archetype.FamilySucculent: {
		height:   [StageCount]float64{40, 90, 160, 240, 320},
		trunk:    [StageCount]float64{20, 35, 50, 70, 90},
		canopy:   [StageCount]float64{0, 0, 0, 0, 0},
		elements: [StageCount]int{0, 0, 1, 2, 3},
		branches: [StageCount]int{0, 0, 1, 2, 3},
	},
}

// ClampRatio confines a completion ratio to [0, 100]. Callers computing
// completed/total*100 can drift just past the bounds in floating point.
func ClampRatio(ratio float64) float64 {
	if ratio < 0 || math.IsNaN(ratio) {
		return 0
	}
	if ratio > 100 {
		return 100
	}
	return ratio
}

// StageIndex maps a completion ratio to one of five 20-point bands.
func StageIndex(ratio float64) int {
	ratio = ClampRatio(ratio)
	idx := int(math.Floor(ratio / 20))
	if idx >= StageCount {
		idx = StageCount - 1
	}
	return idx
}

// StageFor derives the stage parameters for a descriptor at a completion
// ratio. The descriptor's width scale multiplies the trunk dimension only,
// matching how variants like baobab (wide) and birch (slender) differ.
func StageFor(desc archetype.Descriptor, ratio float64) Stage {
	ratio = ClampRatio(ratio)
	idx := StageIndex(ratio)

	d, ok := familyDims[desc.Family]
	if !ok {
		d = familyDims[archetype.FamilyDeciduous]
	}

	ws := desc.WidthScale
	if ws <= 0 {
		ws = 1
	}

	return Stage{
		Index:          idx,
		Height:         d.height[idx],
		TrunkWidth:     d.trunk[idx] * ws,
		CanopySize:     d.canopy[idx],
		ElementCount:   d.elements[idx],
		SubBranchCount: d.branches[idx],
		Bloom:          ratio >= 100,
		Ratio:          ratio,
	}
}
