package growth

import (
	"math"
	"sort"

	"skillbloom/internal/archetype"
)

// generateDrooping builds the willow architecture: straight trunk with long
// branches cascading from the crown rim, painted back-to-front by simulated
// depth, plus leaf triangles at the branch tips past 40% completion.
func generateDrooping(desc archetype.Descriptor, stage Stage, j jitter) *Scene {
	height := stage.Height
	trunkW := stage.TrunkWidth
	radius := stage.CanopySize

	scene := &Scene{
		Variant: desc.Variant,
		Family:  string(desc.Family),
		ViewBox: viewBoxFor(height),
	}

	scene.addLayer(Layer{Name: "ground", Elems: []Primitive{
		groundShadow("#5D4037", 0.2),
	}})

	scene.addLayer(Layer{Name: "trunk", Elems: []Primitive{
		rect(-trunkW/2, -height, trunkW, height, 0, desc.Trunk[0], 0),
	}})

	type droop struct {
		x, z, length float64
	}
	count := stage.SubBranchCount
	droops := make([]droop, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		droops = append(droops, droop{
			x:      math.Cos(angle) * radius,
			z:      math.Sin(angle) * radius,
			length: height*0.8 + j.Unit(i, 1)*height*0.4,
		})
	}
	// Back-to-front by depth; delays follow paint order so the curtain
	// fills in from the back.
	sort.Slice(droops, func(a, b int) bool { return droops[a].z < droops[b].z })

	branches := Layer{Name: "branches"}
	leaves := Layer{Name: "leaves"}
	for k, d := range droops {
		delay := float64(k) * 0.05
		// Branch space hangs from the crown at y = -height.
		branch := strokedPath(d.x*0.2, -height, desc.Accent, 1.5, 0.5+delay).
			quadTo(d.x, -height-20, d.x, -height+d.length)
		branches.Elems = append(branches.Elems, branch)

		if stage.Ratio > 40 {
			tipY := -height + d.length
			leaves.Elems = append(leaves.Elems, polygon([]Point{
				{X: d.x, Y: tipY},
				{X: d.x - 5, Y: tipY + 10},
				{X: d.x + 5, Y: tipY + 10},
			}, desc.Leaf[0], 1+delay))
		}
	}
	scene.addLayer(branches)
	scene.addLayer(leaves)

	// Catkins dot the curtain at full bloom.
	catkins := Layer{Name: "catkins"}
	if stage.Bloom {
		for i, d := range droops {
			if i%3 != 0 {
				continue
			}
			catkins.Elems = append(catkins.Elems,
				circle(d.x, -height+d.length*0.6, 3, "#DCE775", 1.5+float64(i)*0.05))
		}
	}
	scene.addLayer(catkins)

	return scene
}
