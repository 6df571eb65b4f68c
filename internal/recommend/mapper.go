package recommend

import (
	"fmt"
	"strings"

	"moodring/internal/domain"
)

// Config bundles the mapper's tunables.
type Config struct {
	// PrimaryBlendWeight is the primary profile's share when blending
	// feature targets for a complex mood.
	PrimaryBlendWeight float64
	Events             EventWeights
}

func DefaultConfig() Config {
	return Config{
		PrimaryBlendWeight: 0.7,
		Events:             DefaultEventWeights(),
	}
}

// Mapper turns a classified mood (plus an optional taste signal and
// optional event candidates) into recommendation parameters. It is a pure
// function of its inputs and the static tables in this package: calling
// it twice with the same arguments yields identical output.
type Mapper struct {
	cfg Config
}

func NewMapper(cfg Config) *Mapper {
	return &Mapper{cfg: cfg}
}

func (m *Mapper) Map(mood domain.ClassifiedMood, taste *domain.TasteSignal, events []domain.EventCandidate) domain.RecommendationParameters {
	category := CategoryOf(mood.Profile)

	targets := TargetsFor(category)
	if mood.Complexity == domain.ComplexityComplex && mood.SecondaryProfile != nil {
		secondary := TargetsFor(CategoryOf(*mood.SecondaryProfile))
		targets = blendTargets(targets, secondary, m.cfg.PrimaryBlendWeight)
	}

	var userGenres []string
	if taste != nil {
		userGenres = taste.PreferredGenres
	}

	return domain.RecommendationParameters{
		GenreSeeds:     genreSeeds(mood.Profile.MusicTags, userGenres),
		FeatureTargets: targets,
		EventWeights:   scoreEvents(category, events, m.cfg.Events),
		Reasoning:      reasoning(category, mood, taste),
	}
}

var reasoningTemplates = map[MoodCategory]string{
	CategoryJoy:      "You read as genuinely upbeat, so the picks lean bright, warm and singable.",
	CategorySadness:  "There is a heaviness in this reading, so the picks stay slow, soft and roomy.",
	CategoryAnger:    "There is real charge behind this mood, so the picks give it somewhere loud to go.",
	CategoryFear:     "This reading carries tension, so the picks keep things steady and familiar.",
	CategorySurprise: "Something caught you off guard, so the picks favour the colourful and unexpected.",
	CategoryCalm:     "You look settled, so the picks keep the volume down and the textures acoustic.",
	CategoryEnergy:   "You are running hot in a good way, so the picks push tempo and drive.",
	CategoryNeutral:  "Nothing dominates this reading, so the picks stay balanced and easy to skip around.",
}

func reasoning(category MoodCategory, mood domain.ClassifiedMood, taste *domain.TasteSignal) string {
	var b strings.Builder
	b.WriteString(reasoningTemplates[category])

	if mood.Complexity == domain.ComplexityComplex && mood.Secondary != "" {
		fmt.Fprintf(&b, " A trace of %s is in the mix as well.", strings.ToLower(mood.Secondary))
	}
	if taste != nil && len(taste.PreferredGenres) > 0 {
		fmt.Fprintf(&b, " Your leaning toward %s shaped the genre seeds.", normalizeGenre(taste.PreferredGenres[0]))
	}
	if taste != nil && len(taste.PreferredArtists) > 0 {
		fmt.Fprintf(&b, " Expect something in the orbit of %s.", taste.PreferredArtists[0])
	}
	return b.String()
}
