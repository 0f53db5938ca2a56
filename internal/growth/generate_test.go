package growth

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"skillbloom/internal/archetype"
)

func TestGenerateAllVariantsAllStages(t *testing.T) {
	for _, variant := range archetype.Variants() {
		desc := archetype.Get(variant)
		for _, ratio := range []float64{0, 20, 40, 60, 80, 100} {
			s := Generate("Learn "+variant, desc, ratio)
			if s == nil {
				t.Fatalf("%s@%v: nil scene", variant, ratio)
			}
			if s.Variant != variant {
				t.Fatalf("%s@%v: scene variant %s", variant, ratio, s.Variant)
			}
			if s.ViewBox.Width != 800 {
				t.Fatalf("%s@%v: viewBox width %v", variant, ratio, s.ViewBox.Width)
			}
			if len(s.Layers) == 0 {
				t.Fatalf("%s@%v: no layers", variant, ratio)
			}
			if s.ElementCount() == 0 {
				t.Fatalf("%s@%v: empty scene", variant, ratio)
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	desc := archetype.Get("oak")
	a := Generate("Learn React", desc, 60)
	b := Generate("Learn React", desc, 60)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs gave different scenes")
	}
}

func TestGenerateTitleChangesLayout(t *testing.T) {
	desc := archetype.Get("oak")
	a := Generate("Learn React", desc, 60)
	b := Generate("Learn Vue", desc, 60)
	if reflect.DeepEqual(a.Layers, b.Layers) {
		t.Fatalf("different titles gave identical layouts")
	}
}

func TestGenerateDelaysNonNegative(t *testing.T) {
	for _, variant := range archetype.Variants() {
		desc := archetype.Get(variant)
		s := Generate("x", desc, 100)
		for _, l := range s.Layers {
			for _, e := range l.Elems {
				if e.Delay < 0 {
					t.Fatalf("%s: negative delay in layer %s: %v", variant, l.Name, e.Delay)
				}
			}
		}
	}
}

func TestGenerateGroundAtOrigin(t *testing.T) {
	// The viewBox must include the ground line y=0 with headroom above.
	desc := archetype.Get("pine")
	s := Generate("x", desc, 80)
	vb := s.ViewBox
	if vb.MinY >= 0 {
		t.Fatalf("viewBox starts below ground: minY=%v", vb.MinY)
	}
	if vb.MinY+vb.Height < 0 {
		t.Fatalf("viewBox excludes the ground line: minY=%v height=%v", vb.MinY, vb.Height)
	}
}

func TestSceneJSONRoundTrip(t *testing.T) {
	desc := archetype.Get("willow")
	s := Generate("Learn Go", desc, 100)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal scene: %v", err)
	}
	var back Scene
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal scene: %v", err)
	}
	if back.Variant != s.Variant || len(back.Layers) != len(s.Layers) {
		t.Fatalf("round trip lost structure")
	}
}

func TestRenderSVG(t *testing.T) {
	desc := archetype.Get("cactus")
	s := Generate("Desert", desc, 100)
	svg := RenderSVG(s)
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("missing svg root: %.40s", svg)
	}
	if !strings.Contains(svg, "viewBox=") {
		t.Fatalf("missing viewBox attribute")
	}
	for _, l := range s.Layers {
		if len(l.Elems) == 0 {
			continue
		}
		if !strings.Contains(svg, `id="`+l.Name+`"`) {
			t.Fatalf("layer %s not rendered", l.Name)
		}
	}
}

func TestJitterStableAndBounded(t *testing.T) {
	j := newJitter("Learn React")
	for i := 0; i < 100; i++ {
		v := j.Unit(i, 3)
		if v < 0 || v >= 1 {
			t.Fatalf("Unit(%d) out of range: %v", i, v)
		}
		if v != j.Unit(i, 3) {
			t.Fatalf("Unit(%d) not stable", i)
		}
	}
	if newJitter("a").Unit(0, 0) == newJitter("b").Unit(0, 0) {
		t.Fatalf("different seeds gave identical first draw")
	}
	lo, hi := 5.0, 9.0
	if v := j.Range(7, 1, lo, hi); v < lo || v >= hi {
		t.Fatalf("Range out of bounds: %v", v)
	}
	if p := j.Pick(4, 2, 10); p < 0 || p >= 10 {
		t.Fatalf("Pick out of bounds: %d", p)
	}
	if j.Pick(4, 2, 0) != 0 {
		t.Fatalf("Pick with n=0 must be 0")
	}
}
