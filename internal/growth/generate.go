// Package growth turns a completion ratio into a renderable plant scene.
//
// The pipeline is StageFor (ratio → discrete stage dims) followed by a
// per-family generator (stage + descriptor → layered scene graph). Every
// step is a pure function: no clocks, no unseeded randomness, so the same
// roadmap at the same ratio always renders the same scene.
package growth

import "skillbloom/internal/archetype"

// Generate builds the scene for a titled roadmap at a completion ratio.
// The title seeds all per-element jitter, so it must be the same string the
// classifier saw.
func Generate(title string, desc archetype.Descriptor, ratio float64) *Scene {
	return GenerateAt(title, desc, StageFor(desc, ratio))
}

// GenerateAt builds the scene for an explicit stage. It never fails:
// degenerate stages (zero counts at stage 0) produce valid scenes whose
// element layers are simply empty.
func GenerateAt(title string, desc archetype.Descriptor, stage Stage) *Scene {
	j := newJitter(title)

	switch desc.Family {
	case archetype.FamilyConifer:
		return generateConifer(desc, stage, j)
	case archetype.FamilyTropical:
		return generateTropical(desc, stage, j)
	case archetype.FamilyStalk:
		return generateStalk(desc, stage, j)
	case archetype.FamilyDrooping:
		return generateDrooping(desc, stage, j)
	case archetype.FamilySucculent:
		return generateSucculent(desc, stage, j)
	case archetype.FamilyDeciduous:
		fallthrough
	default:
		return generateDeciduous(desc, stage, j)
	}
}
