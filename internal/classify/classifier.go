package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"moodring/internal/catalog"
	"moodring/internal/domain"
	"moodring/internal/emotion"
)

// Labels of the two synthesized fallback profiles.
const (
	FallbackDrift   = "Emotion Drift"
	FallbackNeutral = "Neutral Balance"
)

// Config holds the classifier's selection thresholds. Like the scorer
// weights these are tuned, not derived.
type Config struct {
	// MinAcceptance is the minimum compatibility score a catalog profile
	// needs to win; below it the classifier falls back. The comparison
	// is >=, so a profile scoring exactly MinAcceptance is accepted.
	MinAcceptance float64
	// ComplexBand is the runner-up/winner score ratio from which the
	// classification is reported as complex with a secondary mood.
	ComplexBand float64
	// DriftConditionRatio scales the observed dominant confidence into
	// the percent condition of a synthesized Emotion Drift profile.
	DriftConditionRatio float64
}

func DefaultConfig() Config {
	return Config{
		MinAcceptance:       0.3,
		ComplexBand:         0.7,
		DriftConditionRatio: 0.8,
	}
}

// Classifier selects the best-matching mood profile for an emotion
// vector. It is stateless per call and never fails: an empty catalog, an
// empty vector, or a field of weak scores all end in a synthesized
// fallback mood, not an error.
type Classifier struct {
	provider catalog.Provider
	scorer   *Scorer
	cfg      Config

	now func() time.Time
}

func New(provider catalog.Provider, scorer *Scorer, cfg Config) *Classifier {
	return &Classifier{
		provider: provider,
		scorer:   scorer,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Classify normalizes raw and picks the winning profile.
//
// Ties break toward the earlier catalog row: the winner is only replaced
// by a strictly greater score, and catalog order is source-row order, so
// the outcome is reproducible for identical catalog and input.
func (c *Classifier) Classify(ctx context.Context, raw map[string]float64) domain.ClassifiedMood {
	vec := emotion.Normalize(raw)
	profiles := c.provider.Profiles(ctx)
	if len(profiles) == 0 {
		return c.fallback(vec)
	}

	bestIdx := -1
	bestScore := 0.0
	secondScore := 0.0
	for i, profile := range profiles {
		score := c.scorer.Score(vec, profile)
		if bestIdx < 0 || score > bestScore {
			if bestIdx >= 0 {
				secondScore = bestScore
			}
			bestIdx = i
			bestScore = score
		} else if score > secondScore {
			secondScore = score
		}
	}

	if bestScore < c.cfg.MinAcceptance {
		return c.fallback(vec)
	}

	winner := profiles[bestIdx]
	mood := domain.ClassifiedMood{
		ID:          uuid.NewString(),
		Primary:     winner.Label,
		Confidence:  clampUnit(bestScore),
		Complexity:  domain.ComplexitySimple,
		RawEmotions: vec,
		Profile:     winner,
		AnalyzedAt:  c.now(),
	}

	if secondScore >= bestScore*c.cfg.ComplexBand && secondScore > 0 {
		// Re-find the runner-up profile; same tie rule, first row wins.
		for i, profile := range profiles {
			if i == bestIdx {
				continue
			}
			if c.scorer.Score(vec, profile) == secondScore {
				runnerUp := profile
				mood.Secondary = runnerUp.Label
				mood.SecondaryProfile = &runnerUp
				mood.Complexity = domain.ComplexityComplex
				break
			}
		}
	}
	return mood
}

func (c *Classifier) fallback(vec domain.EmotionVector) domain.ClassifiedMood {
	dominant, ok := emotion.Dominant(vec)
	if !ok {
		return domain.ClassifiedMood{
			ID:          uuid.NewString(),
			Primary:     FallbackNeutral,
			Confidence:  0,
			Complexity:  domain.ComplexitySimple,
			RawEmotions: vec,
			Profile:     neutralProfile(),
			AnalyzedAt:  c.now(),
		}
	}

	profile := domain.MoodProfile{
		Label:           FallbackDrift,
		Description:     fmt.Sprintf("An unsettled state leaning toward %s.", dominant.Label),
		EmotionTriggers: []string{dominant.Label},
		PercentConditions: []domain.PercentCondition{
			{Emotion: dominant.Label, MinPercent: dominant.Confidence * c.cfg.DriftConditionRatio},
		},
		PatternType:    dominant.Label,
		Quotes:         []string{"Moods in motion are still moods."},
		MusicTags:      []string{"indie", "alternative", "chill"},
		SuggestionNote: "Nothing matched cleanly; keep the plans low-stakes.",
	}
	return domain.ClassifiedMood{
		ID:          uuid.NewString(),
		Primary:     FallbackDrift,
		Confidence:  clampUnit(dominant.Confidence / 100),
		Complexity:  domain.ComplexitySimple,
		RawEmotions: vec,
		Profile:     profile,
		AnalyzedAt:  c.now(),
	}
}

func neutralProfile() domain.MoodProfile {
	return domain.MoodProfile{
		Label:          FallbackNeutral,
		Description:    "No emotional signal above the noise floor.",
		PatternType:    "neutral",
		Quotes:         []string{"A blank page is an invitation."},
		MusicTags:      []string{"ambient", "classical", "lo-fi"},
		SuggestionNote: "Pick by curiosity rather than mood today.",
	}
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
