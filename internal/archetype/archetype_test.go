package archetype

import "testing"

func TestClassifyKeywordRules(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Learn React", "oak"},
		{"react hooks deep dive", "oak"},
		{"Python for data science", "willow"}, // "py" fires before any later rule
		{"Mastering Rust", "pine"},
		{"JavaScript from scratch", "oak"},
		{"UI design fundamentals", "palm"},
		{"Learn Japanese", "cherry"},
		{"Chess openings", "bamboo"},
		{"Desert survival", "cactus"},
		{"Snowboarding", "spruce"},
		{"Game development in Godot", "maple"},
	}
	for _, c := range cases {
		got := Classify(c.title)
		if got.Variant != c.want {
			t.Fatalf("Classify(%q)=%s, want %s", c.title, got.Variant, c.want)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	titles := []string{"Quantum Knitting", "underwater basket weaving", "", "日本語", "a very long unmatched title with no keywords at all"}
	for _, title := range titles {
		first := Classify(title)
		for i := 0; i < 5; i++ {
			if got := Classify(title); got.Variant != first.Variant {
				t.Fatalf("Classify(%q) flapped: %s then %s", title, first.Variant, got.Variant)
			}
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Any input, including empty and unmatched, lands on a real variant.
	for _, title := range []string{"", " ", "zzzzzz", "🌵🌵🌵", "Ω"} {
		d := Classify(title)
		if d.Variant == "" || d.Name == "" {
			t.Fatalf("Classify(%q) returned empty descriptor", title)
		}
		if len(d.Leaf) == 0 || len(d.Trunk) == 0 {
			t.Fatalf("Classify(%q) descriptor %s has empty palette", title, d.Variant)
		}
		if _, ok := variants[d.Variant]; !ok {
			t.Fatalf("Classify(%q) returned unknown variant %s", title, d.Variant)
		}
	}
}

func TestClassifyKeywordBeatsHash(t *testing.T) {
	// A keyword anywhere in the title wins over the hash fallback.
	withKeyword := Classify("totally unrelated words react more unrelated words")
	if withKeyword.Variant != "oak" {
		t.Fatalf("keyword rule did not fire: got %s", withKeyword.Variant)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	lower := Classify("learn python")
	upper := Classify("LEARN PYTHON")
	if lower.Variant != upper.Variant {
		t.Fatalf("case changed variant: %s vs %s", lower.Variant, upper.Variant)
	}
}

func TestHashFallbackInRange(t *testing.T) {
	for _, title := range []string{"alpha", "beta", "gamma", "delta", "1234567890", "!!!"} {
		i := hashIndex(title, len(variantOrder))
		if i < 0 || i >= len(variantOrder) {
			t.Fatalf("hashIndex(%q)=%d out of range", title, i)
		}
	}
}

func TestVariantsStable(t *testing.T) {
	a := Variants()
	b := Variants()
	if len(a) != len(variantOrder) {
		t.Fatalf("Variants() has %d entries, want %d", len(a), len(variantOrder))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Variants() order not stable at %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestGetUnknownFallsBack(t *testing.T) {
	d := Get("no-such-variant")
	if d.Variant == "" {
		t.Fatalf("Get on unknown variant returned empty descriptor")
	}
}
