package recommend

import (
	"strings"

	"moodring/internal/domain"
)

// MoodCategory is the closed set of mood families the mapping tables are
// keyed on. Profile labels are open-ended; every profile collapses onto
// one of these via CategoryOf.
type MoodCategory string

const (
	CategoryJoy      MoodCategory = "joy"
	CategorySadness  MoodCategory = "sadness"
	CategoryAnger    MoodCategory = "anger"
	CategoryFear     MoodCategory = "fear"
	CategorySurprise MoodCategory = "surprise"
	CategoryCalm     MoodCategory = "calm"
	CategoryEnergy   MoodCategory = "energy"
	CategoryNeutral  MoodCategory = "neutral"
)

// Categories lists every category in a fixed order, for iteration in
// tables and tests.
func Categories() []MoodCategory {
	return []MoodCategory{
		CategoryJoy, CategorySadness, CategoryAnger, CategoryFear,
		CategorySurprise, CategoryCalm, CategoryEnergy, CategoryNeutral,
	}
}

var categoryAliases = map[string]MoodCategory{
	"joy":       CategoryJoy,
	"happy":     CategoryJoy,
	"happiness": CategoryJoy,
	"content":   CategoryJoy,
	"sadness":   CategorySadness,
	"sad":       CategorySadness,
	"lonely":    CategorySadness,
	"tired":     CategorySadness,
	"anger":     CategoryAnger,
	"angry":     CategoryAnger,
	"disgusted": CategoryAnger,
	"contempt":  CategoryAnger,
	"fear":      CategoryFear,
	"fearful":   CategoryFear,
	"nervous":   CategoryFear,
	"anxious":   CategoryFear,
	"surprise":  CategorySurprise,
	"surprised": CategorySurprise,
	"calm":      CategoryCalm,
	"relaxed":   CategoryCalm,
	"energy":    CategoryEnergy,
	"excited":   CategoryEnergy,
	"energetic": CategoryEnergy,
	"neutral":   CategoryNeutral,
}

// CategoryOf maps a profile onto its mood category: the pattern type
// decides, falling back to the first trigger emotion that aliases to a
// category, then to neutral. Synthesized fallback profiles carry their
// dominant emotion as the pattern type, so they resolve here too.
func CategoryOf(profile domain.MoodProfile) MoodCategory {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(profile.PatternType))]; ok {
		return c
	}
	for _, trigger := range profile.EmotionTriggers {
		if c, ok := categoryAliases[trigger]; ok {
			return c
		}
	}
	return CategoryNeutral
}
