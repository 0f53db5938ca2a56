package growth

import (
	"math"

	"skillbloom/internal/archetype"
)

// generateTropical builds the palm architecture: a curved stroked trunk
// and a full radial fan of quad-curve fronds at the crown. Coconut
// variants hang a pair of nuts below the crown near full growth.
func generateTropical(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	height := stage.Height
	trunkW := stage.TrunkWidth
	frondLen := stage.CanopySize

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(height + 50),
	}

	sand := ellipse(0, 30, 350, 50, "#E6DAB2", 0)
	sand.Opacity = 0.4
	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{sand}})

	curve := float64(desc.CurveDir) * 100
	trunk := strokedPath(0, 0, desc.Trunk[0], trunkW, 0).
		quadTo(curve, -height/2, curve/2, -height)
	scene.addLayer(Layer{Name: "trunk", Elems: []Primitive{trunk}})

	// Crown origin is the trunk tip.
	crownX, crownY := curve/2, -height

	fronds := Layer{Name: "fronds"}
	for i := 0; i < stage.ElementCount; i++ {
		angle := float64(i) / float64(stage.ElementCount) * 2 * math.Pi
		length := frondLen + j.Range(i, 1, 0, 20)

		frond := strokedPath(crownX, crownY, desc.Leaf[i%len(desc.Leaf)], math.Max(2, trunkW/4), 0.5+float64(i)*0.05).
			quadTo(
				crownX+math.Cos(angle)*length/2, crownY+math.Sin(angle)*length/2-20,
				crownX+math.Cos(angle)*length, crownY+math.Sin(angle)*length,
			)
		fronds.Elems = append(fronds.Elems, frond)
	}
	scene.addLayer(fronds)

	coconuts := Layer{Name: "coconuts"}
	if desc.Coconuts && stage.Ratio >= 80 {
		for i, dir := range []float64{-1, 1} {
			coconuts.Elems = append(coconuts.Elems,
				circle(crownX+dir*15, crownY+10, 12, "#5D4037", 1.5+float64(i)*0.1))
		}
	}
	scene.addLayer(coconuts)

	// Bloomed palms without coconuts flash a small blossom at the crown.
	bloom := Layer{Name: "bloom"}
	if stage.Bloom && !desc.Coconuts {
		bloom.Elems = append(bloom.Elems, circle(crownX, crownY-8, 10, "#FFF176", 1.8))
	}
	scene.addLayer(bloom)

	return scene
}
