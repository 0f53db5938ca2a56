package growth

import "skillbloom/internal/archetype"

// generateConifer builds the evergreen architecture: straight rect trunk
// with stacked triangular foliage layers, darkest color at the bottom, and
// optional snow caps on variants that carry them.
func generateConifer(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	height := stage.Height
	trunkW := stage.TrunkWidth
	layers := stage.ElementCount

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(height),
	}

	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{
		groundShadow("#5D4037", 0.2),
	}})

	scene.addLayer(Layer{Name: "trunk", Elems: []Primitive{
		rect(-trunkW/2, -height, trunkW, height+20, 4, desc.Trunk[0], 0),
	}})

	ws := desc.WidthScale
	if ws <= 0 {
		ws = 1
	}

	foliage := Layer{Name: "foliage"}
	snow := Layer{Name: "snow"}
	for i := 0; i < layers; i++ {
		rel := float64(i) / float64(layers)
		width := 40 + float64(i)*40*ws
		layerH := height / float64(layers) * 1.5
		y := -height + float64(i)*(height*0.8/float64(layers))

		colorIdx := int(rel * float64(len(desc.Leaf)))
		if colorIdx >= len(desc.Leaf) {
			colorIdx = len(desc.Leaf) - 1
		}

		foliage.Elems = append(foliage.Elems, polygon([]Point{
			{X: 0, Y: y - layerH*0.2},
			{X: width / 2, Y: y + layerH},
			{X: -width / 2, Y: y + layerH},
		}, desc.Leaf[colorIdx], 0.2+float64(i)*0.1))

		if desc.Snow && stage.Ratio > 50 {
			sc := polygon([]Point{
				{X: 0, Y: y - layerH*0.2},
				{X: width * 0.2, Y: y + layerH*0.4},
				{X: -width * 0.2, Y: y + layerH*0.4},
			}, "#FFFFFF", 1+float64(i)*0.1)
			sc.Opacity = 0.8
			snow.Elems = append(snow.Elems, sc)
		}
	}
	scene.addLayer(foliage)
	scene.addLayer(snow)

	// A bloomed conifer gets a bright tip star instead of flowers.
	topper := Layer{Name: "topper"}
	if stage.Bloom {
		topper.Elems = append(topper.Elems, circle(0, -height-10, 8, "#FFEB3B", 1.5))
	}
	scene.addLayer(topper)

	return scene
}
