package growth

import (
	"math"
	"testing"

	"skillbloom/internal/archetype"
)

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{100.0001, 100},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := ClampRatio(c.in); got != c.want {
			t.Fatalf("ClampRatio(%v)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestStageIndexBands(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{0, 0},
		{19.9, 0},
		{20, 1},
		{39.9, 1},
		{40, 2},
		{60, 3},
		{79.9, 3},
		{80, 4},
		{99, 4},
		{100, 4},
		{250, 4},
		{-10, 0},
	}
	for _, c := range cases {
		if got := StageIndex(c.ratio); got != c.want {
			t.Fatalf("StageIndex(%v)=%d, want %d", c.ratio, got, c.want)
		}
	}
}

func TestStageForMonotonicHeight(t *testing.T) {
	for _, variant := range archetype.Variants() {
		desc := archetype.Get(variant)
		prev := -1.0
		for idx := 0; idx < StageCount; idx++ {
			st := StageFor(desc, float64(idx*20))
			if st.Index != idx {
				t.Fatalf("%s: StageFor at ratio %d gave index %d", variant, idx*20, st.Index)
			}
			if st.Height < prev {
				t.Fatalf("%s: height shrank at stage %d: %v < %v", variant, idx, st.Height, prev)
			}
			prev = st.Height
		}
	}
}

func TestStageForWidthScaleAffectsTrunkOnly(t *testing.T) {
	baobab := archetype.Get("baobab") // WidthScale 2.0
	oak := archetype.Get("oak")       // WidthScale 1.0

	sb := StageFor(baobab, 50)
	so := StageFor(oak, 50)
	if sb.TrunkWidth != so.TrunkWidth*2 {
		t.Fatalf("baobab trunk %v, want double oak's %v", sb.TrunkWidth, so.TrunkWidth)
	}
	if sb.Height != so.Height || sb.CanopySize != so.CanopySize {
		t.Fatalf("width scale leaked beyond trunk: %+v vs %+v", sb, so)
	}
}

func TestStageForBloomOnlyAtFullCompletion(t *testing.T) {
	desc := archetype.Get("cherry")
	if StageFor(desc, 99.9).Bloom {
		t.Fatalf("bloom fired below 100")
	}
	if !StageFor(desc, 100).Bloom {
		t.Fatalf("no bloom at 100")
	}
}

func TestStageForDegenerateRatios(t *testing.T) {
	desc := archetype.Get("pine")
	for _, r := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -50} {
		st := StageFor(desc, r)
		if st.Index < 0 || st.Index >= StageCount {
			t.Fatalf("StageFor(%v) gave index %d", r, st.Index)
		}
	}
}
