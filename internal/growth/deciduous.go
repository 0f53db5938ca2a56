package growth

import (
	"math"

	"skillbloom/internal/archetype"
)

// generateDeciduous builds the broadleaf architecture: tapered trunk
// polygon, alternating quad-curve branches, a 2-3 ellipse canopy stack, a
// jittered leaf cloud, and a flower ring once the plant blooms.
func generateDeciduous(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	height := stage.Height
	trunkW := stage.TrunkWidth
	canopy := stage.CanopySize

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(height + canopy),
	}

	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{
		groundShadow("#5D4037", 0.2),
	}})

	trunk := polygon([]Point{
		{X: -trunkW / 2, Y: 0},
		{X: -trunkW/2 - trunkW*0.1, Y: -height * 0.5},
		{X: -trunkW / 3, Y: -height},
		{X: trunkW / 3, Y: -height},
		{X: trunkW/2 + trunkW*0.1, Y: -height * 0.5},
		{X: trunkW / 2, Y: 0},
	}, desc.Trunk[0], 0)
	scene.addLayer(Layer{Name: "trunk", Elems: []Primitive{trunk}})

	// Bark markings only once the trunk is thick enough to carry them.
	bark := Layer{Name: "bark"}
	if stage.Index >= 2 && desc.Accent != "" {
		n := stage.Index * 3
		if n > 10 {
			n = 10
		}
		for i := 0; i < n; i++ {
			x := -trunkW/4 + float64(i%3)*trunkW/4
			y := -height * (0.2 + float64(i)*0.08)
			mark := strokedPath(x, y, desc.Accent, 2, 0.5+float64(i)*0.05).
				lineTo(x+3, y-20)
			mark.Opacity = 0.3
			bark.Elems = append(bark.Elems, mark)
		}
	}
	scene.addLayer(bark)

	branches := Layer{Name: "branches"}
	for i := 0; i < stage.SubBranchCount; i++ {
		heightRatio := 0.3 + float64(i)/float64(stage.SubBranchCount)*0.5
		y := -height * heightRatio
		dir := 1.0
		if i%2 == 1 {
			dir = -1.0
		}
		ws := desc.WidthScale
		if ws <= 0 {
			ws = 1
		}
		length := (40 + float64(i%3)*30) * ws
		width := math.Max(2, float64(10-i)*ws)

		branch := strokedPath(0, y, desc.Trunk[len(desc.Trunk)-1], width, 0.2+float64(i)*0.1).
			quadTo(dir*length*0.5, y-15, dir*length, y-30).
			quadTo(dir*length*1.2, y-45, dir*length*1.1, y-60)
		branches.Elems = append(branches.Elems, branch)
	}
	scene.addLayer(branches)

	canopyLayer := Layer{Name: "canopy"}
	leavesLayer := Layer{Name: "leaves"}
	if canopy > 0 {
		rxScale, ryScale := 1.0, 1.0
		switch desc.Canopy {
		case archetype.CanopySpread:
			rxScale = 1.3
		case archetype.CanopyOval:
			ryScale = 1.2
		}
		for i, s := range []float64{0.9, 1.0, 0.8} {
			canopyLayer.Elems = append(canopyLayer.Elems, ellipse(
				0, -height-canopy*(0.1+float64(i)*0.1),
				canopy*s*rxScale, canopy*s*0.8*ryScale,
				desc.Leaf[i%len(desc.Leaf)],
				float64(i)*0.1,
			))
		}

		for i := 0; i < stage.ElementCount; i++ {
			angle := float64(i)/float64(stage.ElementCount)*2*math.Pi + j.Range(i, 1, 0, 0.3)
			radiusX := canopy*0.3 + j.Unit(i, 2)*canopy*0.5
			radiusY := radiusX
			switch desc.Canopy {
			case archetype.CanopyOval:
				radiusY *= 1.2
			case archetype.CanopySpread:
				radiusX *= 1.4
			}
			x := math.Cos(angle) * radiusX
			y := math.Sin(angle)*radiusY*0.6 - canopy*0.2
			size := 12 + j.Unit(i, 3)*25

			leaf := ellipse(
				x, -height-canopy*0.2+y,
				size, size*0.6,
				desc.Leaf[j.Pick(i, 4, len(desc.Leaf))],
				0.3+float64(i)*0.03,
			)
			leaf.Opacity = 0.9
			leavesLayer.Elems = append(leavesLayer.Elems, leaf)
		}
	}
	scene.addLayer(canopyLayer)
	scene.addLayer(leavesLayer)

	flowers := Layer{Name: "flowers"}
	if stage.Bloom && desc.Accent != "" {
		const n = 12
		for i := 0; i < n; i++ {
			angle := float64(i) / n * 2 * math.Pi
			r := canopy * 0.7
			x := math.Cos(angle) * r
			y := -height - canopy*0.2 + math.Sin(angle)*r*0.5
			flowers.Elems = append(flowers.Elems, circle(x, y, 6, desc.Accent, 0.8+float64(i)*0.05))
		}
	}
	scene.addLayer(flowers)

	return scene
}

func groundShadow(color string, opacity float64) Primitive {
	p := ellipse(0, 30, 350, 50, color, 0)
	p.Opacity = opacity
	return p
}
