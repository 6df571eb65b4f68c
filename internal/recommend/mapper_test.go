package recommend

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"moodring/internal/domain"
)

func joyMood() domain.ClassifiedMood {
	return domain.ClassifiedMood{
		Primary:    "Pure Joy",
		Confidence: 0.8,
		Complexity: domain.ComplexitySimple,
		Profile: domain.MoodProfile{
			Label:       "Pure Joy",
			PatternType: "joy",
			MusicTags:   []string{"pop", "dance pop", "funk", "disco", "soul", "electro pop"},
			Quotes:      []string{"q"},
		},
	}
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		pattern string
		trigger string
		want    MoodCategory
	}{
		{pattern: "joy", want: CategoryJoy},
		{pattern: "happy", want: CategoryJoy},
		{pattern: "sad", want: CategorySadness},
		{pattern: "excited", want: CategoryEnergy},
		{pattern: "", trigger: "nervous", want: CategoryFear},
		{pattern: "unmapped", trigger: "also-unmapped", want: CategoryNeutral},
	}
	for _, tc := range cases {
		profile := domain.MoodProfile{PatternType: tc.pattern}
		if tc.trigger != "" {
			profile.EmotionTriggers = []string{tc.trigger}
		}
		if got := CategoryOf(profile); got != tc.want {
			t.Fatalf("CategoryOf(pattern=%q trigger=%q)=%s, want %s", tc.pattern, tc.trigger, got, tc.want)
		}
	}
}

func TestEveryCategoryHasTargetsAndReasoning(t *testing.T) {
	for _, c := range Categories() {
		targets := TargetsFor(c)
		if targets.Tempo.Min <= 0 || targets.Tempo.Max <= targets.Tempo.Min {
			t.Fatalf("category %s has a degenerate tempo range %+v", c, targets.Tempo)
		}
		if reasoningTemplates[c] == "" {
			t.Fatalf("category %s has no reasoning template", c)
		}
	}
}

func TestGenreSeedsCapAndDedup(t *testing.T) {
	mood := []string{"pop", "dance pop", "funk", "disco", "soul", "electro pop"}
	user := []string{"Funk", "jazz", "pop", "funk"}

	seeds := genreSeeds(mood, user)
	if len(seeds) > MaxGenreSeeds {
		t.Fatalf("len=%d, want <= %d", len(seeds), MaxGenreSeeds)
	}
	seen := map[string]bool{}
	for _, s := range seeds {
		if seen[s] {
			t.Fatalf("duplicate seed %q in %v", s, seeds)
		}
		seen[s] = true
	}
	// Intersection first, in the user's order (jazz is not mood-appropriate).
	if seeds[0] != "funk" || seeds[1] != "pop" {
		t.Fatalf("seeds=%v, want funk then pop first", seeds)
	}
	// Then mood-order fill.
	if seeds[2] != "dance pop" || seeds[3] != "disco" || seeds[4] != "soul" {
		t.Fatalf("seeds=%v, want mood-order fill after the intersection", seeds)
	}
}

func TestGenreSeedsWithoutTaste(t *testing.T) {
	seeds := genreSeeds([]string{"ambient", "classical"}, nil)
	if len(seeds) != 2 || seeds[0] != "ambient" || seeds[1] != "classical" {
		t.Fatalf("seeds=%v, want mood tags in catalog order", seeds)
	}
}

func TestBlendRangeCoversBothAndRecentres(t *testing.T) {
	p := domain.FeatureRange{Min: 0.6, Max: 0.8} // mid 0.7
	s := domain.FeatureRange{Min: 0.1, Max: 0.3} // mid 0.2

	got := blendRange(p, s, 0.7, true)
	wantCenter := 0.7*0.7 + 0.3*0.2
	if math.Abs(got.Mid()-wantCenter) > 1e-9 {
		t.Fatalf("mid=%v, want %v", got.Mid(), wantCenter)
	}
	if got.Min > 0.1 || got.Max < 0.8 {
		t.Fatalf("range=%+v must cover both source ranges", got)
	}
}

func TestMapComplexMoodBlendsTargets(t *testing.T) {
	m := NewMapper(DefaultConfig())
	mood := joyMood()
	mood.Complexity = domain.ComplexityComplex
	mood.Secondary = "Quiet Melancholy"
	mood.SecondaryProfile = &domain.MoodProfile{Label: "Quiet Melancholy", PatternType: "sadness"}

	got := m.Map(mood, nil, nil)
	joyOnly := TargetsFor(CategoryJoy)
	sadOnly := TargetsFor(CategorySadness)

	if got.FeatureTargets.Valence == joyOnly.Valence {
		t.Fatalf("complex mood should not reuse the pure-joy valence range")
	}
	if got.FeatureTargets.Tempo.Min > sadOnly.Tempo.Min || got.FeatureTargets.Tempo.Max < joyOnly.Tempo.Max {
		t.Fatalf("blended tempo %+v must cover both categories", got.FeatureTargets.Tempo)
	}
}

func TestScoreEventsWeightingAndCutoff(t *testing.T) {
	w := DefaultEventWeights()
	near := domain.EventCandidate{Category: "festival", Distance: 2, DaysOut: 7, PreferenceMatch: 0.9, HistoryAffinity: 0.8}
	far := domain.EventCandidate{Category: "festival", Distance: 60, DaysOut: 40, PreferenceMatch: 0, HistoryAffinity: 0}
	weak := domain.EventCandidate{Category: "club night", Distance: 60, DaysOut: 40, PreferenceMatch: 0, HistoryAffinity: 0}

	got := scoreEvents(CategoryJoy, []domain.EventCandidate{weak, far, near}, w)

	// weak: 0.4*0.8 only = 0.32 >= 0.3 stays; near tops the list.
	if len(got) != 3 {
		t.Fatalf("scored=%d, want 3", len(got))
	}
	if got[0].Category != "festival" || got[0].Score <= got[1].Score {
		t.Fatalf("order=%+v, want the near festival first", got)
	}
	wantNear := 0.4*1.0 + 0.25*0.9 + 0.15*1.0 + 0.10*1.0 + 0.10*0.8
	if math.Abs(got[0].Score-wantNear) > 1e-9 {
		t.Fatalf("near score=%v, want %v", got[0].Score, wantNear)
	}
}

func TestScoreEventsDiscardsBelowThreshold(t *testing.T) {
	// Theatre affinity for anger is 0.2: 0.4*0.2 = 0.08 with no other credit.
	cand := domain.EventCandidate{Category: "theatre", Distance: 100, DaysOut: 90}
	got := scoreEvents(CategoryAnger, []domain.EventCandidate{cand}, DefaultEventWeights())
	if len(got) != 0 {
		t.Fatalf("scored=%+v, want empty below the composite cutoff", got)
	}
}

func TestProximityAndTemporalCredit(t *testing.T) {
	if proximityCredit(3) != 1 || proximityCredit(5) != 1 {
		t.Fatalf("distances <= 5 should earn full proximity credit")
	}
	if proximityCredit(50) != 0 || proximityCredit(80) != 0 {
		t.Fatalf("distances >= 50 should earn nothing")
	}
	mid := proximityCredit(27.5)
	if math.Abs(mid-0.5) > 1e-9 {
		t.Fatalf("proximity(27.5)=%v, want 0.5", mid)
	}

	if temporalCredit(1) != 1 || temporalCredit(14) != 1 {
		t.Fatalf("1-14 days out should earn full temporal credit")
	}
	if temporalCredit(15) != 0.5 || temporalCredit(30) != 0.5 {
		t.Fatalf("15-30 days out should earn partial credit")
	}
	if temporalCredit(0) != 0 || temporalCredit(31) != 0 {
		t.Fatalf("same-day and distant events should earn nothing")
	}
}

func TestReasoningClauses(t *testing.T) {
	m := NewMapper(DefaultConfig())
	taste := &domain.TasteSignal{
		PreferredGenres:  []string{"Funk"},
		PreferredArtists: []string{"Nile Rodgers"},
	}

	got := m.Map(joyMood(), taste, nil)
	if got.Reasoning == "" {
		t.Fatalf("reasoning must not be empty")
	}
	if !strings.Contains(got.Reasoning, "funk") {
		t.Fatalf("reasoning %q should mention the dominant preferred genre", got.Reasoning)
	}
	if !strings.Contains(got.Reasoning, "Nile Rodgers") {
		t.Fatalf("reasoning %q should mention the favourite artist", got.Reasoning)
	}

	plain := m.Map(joyMood(), nil, nil)
	if plain.Reasoning == "" {
		t.Fatalf("reasoning must degrade gracefully without a taste signal")
	}
}

func TestMapIdempotent(t *testing.T) {
	m := NewMapper(DefaultConfig())
	taste := &domain.TasteSignal{PreferredGenres: []string{"pop"}}
	events := []domain.EventCandidate{
		{Category: "festival", Distance: 4, DaysOut: 10, PreferenceMatch: 0.7, HistoryAffinity: 0.2},
		{Category: "comedy", Distance: 12, DaysOut: 20, PreferenceMatch: 0.4, HistoryAffinity: 0.6},
	}

	a, err := json.Marshal(m.Map(joyMood(), taste, events))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(m.Map(joyMood(), taste, events))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("mapping is not byte-identical:\n%s\n%s", a, b)
	}
}
