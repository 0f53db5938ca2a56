package growth

import "skillbloom/internal/archetype"

// generateSucculent builds the cactus architecture: a rounded swollen stem,
// a jittered spine grid, up to three arms appearing at later stages, and an
// apex flower at full bloom.
func generateSucculent(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	height := stage.Height
	width := stage.TrunkWidth
	arms := stage.ElementCount

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(height),
	}

	sand := ellipse(0, 30, 350, 50, "#E0E0E0", 0)
	sand.Opacity = 0.4
	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{sand}})

	scene.addLayer(Layer{Name: "stem", Elems: []Primitive{
		rect(-width/2, -height, width, height, width/2, desc.Trunk[0], 0),
	}})

	// Spine grid: roughly half the cells grow a spine, chosen stably per
	// cell so the pattern survives re-render.
	spines := Layer{Name: "spines"}
	rows := int(height / 20)
	cols := int(width / 15)
	spineColor := "#FFFFFF"
	if desc.Accent != "" {
		spineColor = "#E0F2F1"
	}
	idx := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx++
			if j.Unit(idx, 1) > 0.5 {
				continue
			}
			spines.Elems = append(spines.Elems, circle(
				-width/2+5+float64(c)*15,
				-height+10+float64(r)*20,
				1, spineColor, 0.5+float64(idx)*0.01,
			))
		}
	}
	scene.addLayer(spines)

	armLayer := Layer{Name: "arms"}
	if arms > 0 {
		left := strokedPath(-width/2, -height*0.6, desc.Trunk[0], width*0.7, 1).
			quadTo(-width/2-50, -height*0.6, -width/2-50, -height*0.6-50).
			lineTo(-width/2-50, -height*0.6-100).
			quadTo(-width/2-50, -height*0.6-120, -width/2-30, -height*0.6-120)
		armLayer.Elems = append(armLayer.Elems, left)
	}
	if arms > 1 {
		right := strokedPath(width/2, -height*0.4, desc.Trunk[0], width*0.7, 1.2).
			quadTo(width/2+50, -height*0.4, width/2+50, -height*0.4-50).
			lineTo(width/2+50, -height*0.4-80)
		armLayer.Elems = append(armLayer.Elems, right)
	}
	if arms > 2 {
		back := strokedPath(0, -height*0.8, desc.Trunk[0], width*0.5, 1.4).
			lineTo(0, -height*0.8-60)
		armLayer.Elems = append(armLayer.Elems, back)
	}
	scene.addLayer(armLayer)

	flower := Layer{Name: "flower"}
	if stage.Bloom && desc.Accent != "" {
		flower.Elems = append(flower.Elems, circle(0, -height-5, 15, desc.Accent, 2))
	}
	scene.addLayer(flower)

	return scene
}
