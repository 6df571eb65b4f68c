package emotion

import "testing"

func TestNormalizeDropsNoise(t *testing.T) {
	got := Normalize(map[string]float64{"happy": 0.5, "sad": 40})
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
	if got["sad"] != 40 {
		t.Fatalf("sad=%v, want 40", got["sad"])
	}
	if _, ok := got["happy"]; ok {
		t.Fatalf("happy should be filtered below the noise floor")
	}
}

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	got := Normalize(map[string]float64{" Happy ": 85, "ANGRY": 12})
	if got["happy"] != 85 {
		t.Fatalf("happy=%v, want 85", got["happy"])
	}
	if got["angry"] != 12 {
		t.Fatalf("angry=%v, want 12", got["angry"])
	}
}

func TestNormalizeMergesCollidingLabelsKeepingLarger(t *testing.T) {
	got := Normalize(map[string]float64{"Sad": 30, " sad ": 55})
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
	if got["sad"] != 55 {
		t.Fatalf("sad=%v, want 55", got["sad"])
	}
}

func TestNormalizeClampsAbove100(t *testing.T) {
	got := Normalize(map[string]float64{"joy": 140})
	if got["joy"] != 100 {
		t.Fatalf("joy=%v, want 100", got["joy"])
	}
}

func TestNormalizeEmptyAndAllNoise(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("nil input: len=%d, want 0", len(got))
	}
	got := Normalize(map[string]float64{"happy": 0.2, "sad": 0.9, "fear": -3})
	if len(got) != 0 {
		t.Fatalf("all-noise input: len=%d, want 0", len(got))
	}
}

func TestRankedOrdersByConfidenceThenLabel(t *testing.T) {
	v := Normalize(map[string]float64{"sad": 40, "happy": 85, "calm": 40})
	ranked := Ranked(v)
	if len(ranked) != 3 {
		t.Fatalf("len=%d, want 3", len(ranked))
	}
	if ranked[0].Label != "happy" {
		t.Fatalf("first=%s, want happy", ranked[0].Label)
	}
	if ranked[1].Label != "calm" || ranked[2].Label != "sad" {
		t.Fatalf("tie order=(%s,%s), want (calm,sad)", ranked[1].Label, ranked[2].Label)
	}
}

func TestDominant(t *testing.T) {
	v := Normalize(map[string]float64{"happy": 85, "sad": 5})
	top, ok := Dominant(v)
	if !ok {
		t.Fatalf("expected a dominant entry")
	}
	if top.Label != "happy" || top.Confidence != 85 {
		t.Fatalf("dominant=%+v, want happy/85", top)
	}
	if _, ok := Dominant(nil); ok {
		t.Fatalf("empty vector should have no dominant entry")
	}
}
