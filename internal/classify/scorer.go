package classify

import "moodring/internal/domain"

// ScorerConfig holds the heuristic weights of the compatibility score.
// The defaults come from tuning against detector output, not from any
// derivation; treat them as adjustable.
type ScorerConfig struct {
	// PresenceBonus is added once per trigger emotion found in the
	// vector, regardless of magnitude.
	PresenceBonus float64
	// ThresholdBase is added when a percent condition is met; the margin
	// above the threshold is added on top, scaled by 1/100.
	ThresholdBase float64
	// NearMissRatio is the actual/required ratio from which a missed
	// condition still earns partial credit.
	NearMissRatio float64
	// NearMissCredit scales the partial credit for a near miss.
	NearMissCredit float64
}

func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		PresenceBonus:  0.3,
		ThresholdBase:  0.5,
		NearMissRatio:  0.7,
		NearMissCredit: 0.2,
	}
}

// Scorer computes a [0, 1] compatibility between a normalized emotion
// vector and one mood profile. It is a weighted-evidence heuristic:
// qualitative presence and quantitative threshold-exceedance both count,
// and a close miss earns partial credit so a hard cutoff on noisy
// detector output does not flap.
type Scorer struct {
	cfg ScorerConfig
}

func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

func (s *Scorer) Score(vec domain.EmotionVector, profile domain.MoodProfile) float64 {
	totalChecks := 0
	score := 0.0

	for _, trigger := range profile.EmotionTriggers {
		totalChecks++
		if _, ok := vec[trigger]; ok {
			score += s.cfg.PresenceBonus
		}
	}

	for _, cond := range profile.PercentConditions {
		totalChecks++
		actual, ok := vec[cond.Emotion]
		if !ok {
			continue
		}
		switch {
		case actual >= cond.MinPercent:
			score += s.cfg.ThresholdBase + (actual-cond.MinPercent)/100
		case cond.MinPercent > 0 && actual/cond.MinPercent >= s.cfg.NearMissRatio:
			score += s.cfg.NearMissCredit * (actual / cond.MinPercent)
		}
	}

	// An inert profile (no triggers, no conditions) scores 0.
	if totalChecks == 0 {
		return 0
	}
	normalized := score / float64(totalChecks)
	// Large threshold margins can push a single-condition profile past 1;
	// the contract is [0, 1].
	if normalized > 1 {
		return 1
	}
	return normalized
}
