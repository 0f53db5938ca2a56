package archetype

import "strings"

// Family is the branching architecture of a plant variant. Every variant
// belongs to exactly one family, and each family has its own geometry
// generator in internal/growth.
type Family string

const (
	FamilyDeciduous Family = "deciduous"
	FamilyConifer   Family = "conifer"
	FamilyTropical  Family = "tropical"
	FamilyStalk     Family = "stalk"
	FamilyDrooping  Family = "drooping"
	FamilySucculent Family = "succulent"
)

// CanopyShape tweaks deciduous canopy proportions.
type CanopyShape string

const (
	CanopyRound  CanopyShape = "round"
	CanopyOval   CanopyShape = "oval"
	CanopySpread CanopyShape = "spread"
)

// Descriptor is the full visual recipe for one plant variant. Descriptors
// are static and hand-authored; Classify never computes colors.
type Descriptor struct {
	Variant string
	Name    string
	Emoji   string
	Family  Family

	// Leaf holds the primary color ramp (leaves, foliage, fronds or
	// stalks depending on family). Always non-empty.
	Leaf []string
	// Trunk holds the trunk/skin color ramp. Always non-empty.
	Trunk []string
	// Accent is the family-specific extra color: flowers for deciduous
	// and succulent, bark markings for birch, joint bands for bamboo,
	// spines for cacti. Empty when the variant has none.
	Accent string

	WidthScale float64
	Canopy     CanopyShape

	// CurveDir bends a tropical trunk: 1 right, -1 left, 0 straight.
	CurveDir int
	Snow     bool
	Coconuts bool
}

// variantOrder fixes the hash-fallback indexing. Appending new variants is
// safe; reordering existing ones would reshuffle every hashed title.
var variantOrder = []string{
	"oak", "maple", "birch", "cherry", "baobab",
	"pine", "spruce",
	"palm", "coconut",
	"bamboo",
	"willow",
	"cactus", "agave",
}

var variants = map[string]Descriptor{
	"oak": {
		Variant:    "oak",
		Name:       "Oak",
		Emoji:      "🌳",
		Family:     FamilyDeciduous,
		Leaf:       []string{"#4CAF50", "#66BB6A", "#81C784"},
		Trunk:      []string{"#4E342E", "#6D4C41", "#8D6E63"},
		Canopy:     CanopyRound,
		WidthScale: 1.0,
	},
	"maple": {
		Variant:    "maple",
		Name:       "Maple",
		Emoji:      "🍁",
		Family:     FamilyDeciduous,
		Leaf:       []string{"#FF5722", "#E64A19", "#BF360C", "#FFAB91"},
		Trunk:      []string{"#3E2723", "#4E342E", "#5D4037"},
		Accent:     "#3E2723",
		Canopy:     CanopyRound,
		WidthScale: 0.9,
	},
	"birch": {
		Variant:    "birch",
		Name:       "Birch",
		Emoji:      "🌳",
		Family:     FamilyDeciduous,
		Leaf:       []string{"#FFEB3B", "#FDD835", "#FBC02D"},
		Trunk:      []string{"#F5F5F5", "#EEEEEE", "#E0E0E0"},
		Accent:     "#212121",
		Canopy:     CanopyOval,
		WidthScale: 0.7,
	},
	"cherry": {
		Variant:    "cherry",
		Name:       "Cherry Blossom",
		Emoji:      "🌸",
		Family:     FamilyDeciduous,
		Leaf:       []string{"#F8BBD0", "#F48FB1", "#EC407A"},
		Trunk:      []string{"#5D4037", "#6D4C41", "#795548"},
		Accent:     "#FFFFFF",
		Canopy:     CanopySpread,
		WidthScale: 0.8,
	},
	"baobab": {
		Variant:    "baobab",
		Name:       "Baobab",
		Emoji:      "🌳",
		Family:     FamilyDeciduous,
		Leaf:       []string{"#33691E", "#558B2F", "#689F38"},
		Trunk:      []string{"#8D6E63", "#A1887F", "#BCAAA4"},
		Canopy:     CanopySpread,
		WidthScale: 2.0,
	},
	"pine": {
		Variant:    "pine",
		Name:       "Pine",
		Emoji:      "🌲",
		Family:     FamilyConifer,
		Leaf:       []string{"#1B5E20", "#2E7D32", "#388E3C"},
		Trunk:      []string{"#3E2723"},
		WidthScale: 1.0,
	},
	"spruce": {
		Variant:    "spruce",
		Name:       "Blue Spruce",
		Emoji:      "🌲",
		Family:     FamilyConifer,
		Leaf:       []string{"#546E7A", "#607D8B", "#78909C"},
		Trunk:      []string{"#455A64"},
		WidthScale: 1.2,
		Snow:       true,
	},
	"palm": {
		Variant:    "palm",
		Name:       "Palm",
		Emoji:      "🌴",
		Family:     FamilyTropical,
		Leaf:       []string{"#64DD17", "#76FF03", "#B2FF59"},
		Trunk:      []string{"#795548"},
		WidthScale: 1.0,
		CurveDir:   1,
	},
	"coconut": {
		Variant:    "coconut",
		Name:       "Coconut Palm",
		Emoji:      "🥥",
		Family:     FamilyTropical,
		Leaf:       []string{"#33691E", "#558B2F", "#689F38"},
		Trunk:      []string{"#5D4037"},
		WidthScale: 1.0,
		CurveDir:   -1,
		Coconuts:   true,
	},
	"bamboo": {
		Variant:    "bamboo",
		Name:       "Bamboo",
		Emoji:      "🎋",
		Family:     FamilyStalk,
		Leaf:       []string{"#8BC34A"},
		Trunk:      []string{"#8BC34A"},
		Accent:     "#689F38",
		WidthScale: 1.0,
	},
	"willow": {
		Variant:    "willow",
		Name:       "Willow",
		Emoji:      "🌿",
		Family:     FamilyDrooping,
		Leaf:       []string{"#9CCC65"},
		Trunk:      []string{"#4E342E"},
		Accent:     "#8BC34A",
		WidthScale: 1.0,
	},
	"cactus": {
		Variant:    "cactus",
		Name:       "Cactus",
		Emoji:      "🌵",
		Family:     FamilySucculent,
		Leaf:       []string{"#43A047"},
		Trunk:      []string{"#43A047"},
		Accent:     "#F48FB1",
		WidthScale: 1.0,
	},
	"agave": {
		Variant:    "agave",
		Name:       "Desert Blooms",
		Emoji:      "🌵",
		Family:     FamilySucculent,
		Leaf:       []string{"#00897B"},
		Trunk:      []string{"#00897B"},
		Accent:     "#FFEB3B",
		WidthScale: 1.0,
	},
}

// keywordRule maps title substrings to a variant. Rules are checked in
// order and the first hit wins, so the slice order is part of the contract.
type keywordRule struct {
	substrings []string
	variant    string
}

var keywordRules = []keywordRule{
	{[]string{"pine", "linux", "rust", "c++"}, "pine"},
	{[]string{"spruce", "snow", "cold"}, "spruce"},
	{[]string{"palm", "beach", "ui", "design", "figma"}, "palm"},
	{[]string{"coconut"}, "coconut"},
	{[]string{"cherry", "japan", "language", "ruby"}, "cherry"},
	{[]string{"maple", "game", "canada"}, "maple"},
	{[]string{"birch", "paper", "doc"}, "birch"},
	{[]string{"bamboo", "zen", "yoga", "meditation", "chess", "music"}, "bamboo"},
	{[]string{"willow", "cry", "sad", "py"}, "willow"},
	{[]string{"cactus", "desert", "hot", "dry"}, "cactus"},
	{[]string{"baobab"}, "baobab"},
	{[]string{"oak", "react", "web", "js"}, "oak"},
	{[]string{"agave"}, "agave"},
	{[]string{"script", "java"}, "oak"},
}

// Classify maps a skill title to its plant descriptor. Same title in, same
// descriptor out, across processes: keyword table first, then a rolling
// hash over the normalized title indexes the fixed variant list. Any input
// (including empty) yields a valid descriptor.
func Classify(title string) Descriptor {
	normalized := strings.ToLower(strings.TrimSpace(title))

	for _, rule := range keywordRules {
		for _, sub := range rule.substrings {
			if strings.Contains(normalized, sub) {
				return variants[rule.variant]
			}
		}
	}

	return variants[variantOrder[hashIndex(normalized, len(variantOrder))]]
}

// Get returns the descriptor for a known variant key, falling back to oak.
func Get(variant string) Descriptor {
	if d, ok := variants[variant]; ok {
		return d
	}
	return variants["oak"]
}

// Variants returns all variant keys in their stable order.
func Variants() []string {
	out := make([]string, len(variantOrder))
	copy(out, variantOrder)
	return out
}

// hashIndex reduces s to an index in [0, n) via the classic djb-style
// rolling hash (h = c + h*31), computed in 32-bit space so results match
// regardless of platform word size.
func hashIndex(s string, n int) int {
	var h int32
	for _, r := range s {
		h = r + (h << 5) - h
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}
