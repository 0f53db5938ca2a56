package growth

import "skillbloom/internal/archetype"

// generateStalk builds the bamboo architecture: a row of segmented stalks
// of varying height, joint bands between segments, and leaf curves
// sprouting from upper joints on alternating sides. Stalk layout draws from
// the shared seeded jitter, so it varies per roadmap title but never per
// render.
func generateStalk(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	stalkCount := stage.ElementCount
	baseHeight := stage.Height

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(baseHeight),
	}

	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{
		groundShadow("#5D4037", 0.2),
	}})

	const segmentH = 50.0

	stalks := Layer{Name: "stalks"}
	joints := Layer{Name: "joints"}
	leaves := Layer{Name: "leaves"}

	for i := 0; i < stalkCount; i++ {
		x := (float64(i) - float64(stalkCount-1)/2) * 50
		height := baseHeight * (0.8 + j.Unit(i, 1)*0.4)
		width := stage.TrunkWidth + j.Unit(i, 2)*10
		segments := int(height / segmentH)

		for s := 0; s < segments; s++ {
			delay := float64(i)*0.2 + float64(s)*0.1
			top := -float64(s+1) * segmentH

			// 2px gap at the segment top marks the joint.
			stalks.Elems = append(stalks.Elems,
				rect(x-width/2, top, width, segmentH-2, 2, desc.Leaf[0], delay))
			joints.Elems = append(joints.Elems,
				rect(x-width/2-2, top+segmentH-2, width+4, 2, 0, desc.Accent, delay))

			if s > segments/3 && s%2 == i%2 {
				leaf := strokedPath(x+width/2, top, desc.Accent, 1, 0.5+delay).
					quadTo(x+width/2+20, top-10, x+width/2+30, top+10)
				leaf.Fill = desc.Accent
				leaves.Elems = append(leaves.Elems, leaf)
			}
		}
	}

	scene.addLayer(stalks)
	scene.addLayer(joints)
	scene.addLayer(leaves)

	// Fresh shoot tips celebrate a fully grown grove.
	tips := Layer{Name: "tips"}
	if stage.Bloom {
		for i := 0; i < stalkCount; i++ {
			x := (float64(i) - float64(stalkCount-1)/2) * 50
			height := baseHeight * (0.8 + j.Unit(i, 1)*0.4)
			top := -float64(int(height/segmentH)) * segmentH
			tips.Elems = append(tips.Elems, circle(x, top-8, 5, "#AED581", 1.2+float64(i)*0.1))
		}
	}
	scene.addLayer(tips)

	return scene
}
