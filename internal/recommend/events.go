package recommend

import (
	"sort"

	"moodring/internal/domain"
)

// EventWeights are the composite weights of event relevance scoring plus
// the cutoff below which a candidate is discarded. The weights sum to 1.
type EventWeights struct {
	CategoryAffinity float64
	PreferenceMatch  float64
	Proximity        float64
	TemporalFit      float64
	HistoryAffinity  float64
	MinComposite     float64
}

func DefaultEventWeights() EventWeights {
	return EventWeights{
		CategoryAffinity: 0.40,
		PreferenceMatch:  0.25,
		Proximity:        0.15,
		TemporalFit:      0.10,
		HistoryAffinity:  0.10,
		MinComposite:     0.3,
	}
}

// Proximity taper: full credit at or under this distance, zero at or
// beyond eventFarDistance.
const (
	eventNearDistance = 5.0
	eventFarDistance  = 50.0
)

// eventAffinity maps mood category -> event category -> affinity [0, 1].
// Event categories absent from a row score 0.3 (mildly relevant rather
// than excluded outright).
var eventAffinity = map[MoodCategory]map[string]float64{
	CategoryJoy: {
		"concert": 0.9, "festival": 1.0, "club night": 0.8, "comedy": 0.85,
		"outdoor": 0.75, "theatre": 0.5, "art exhibition": 0.45, "workshop": 0.4,
	},
	CategorySadness: {
		"art exhibition": 0.85, "theatre": 0.8, "acoustic session": 0.9,
		"workshop": 0.5, "concert": 0.45, "outdoor": 0.55, "festival": 0.2, "club night": 0.1,
	},
	CategoryAnger: {
		"sports": 0.9, "rock show": 0.95, "club night": 0.6, "outdoor": 0.7,
		"concert": 0.65, "comedy": 0.4, "art exhibition": 0.25, "theatre": 0.2,
	},
	CategoryFear: {
		"workshop": 0.8, "acoustic session": 0.75, "art exhibition": 0.7,
		"theatre": 0.55, "outdoor": 0.5, "concert": 0.3, "festival": 0.15, "club night": 0.1,
	},
	CategorySurprise: {
		"festival": 0.85, "art exhibition": 0.8, "theatre": 0.75, "comedy": 0.8,
		"concert": 0.7, "workshop": 0.6, "outdoor": 0.65, "club night": 0.55,
	},
	CategoryCalm: {
		"acoustic session": 0.95, "art exhibition": 0.85, "outdoor": 0.8,
		"workshop": 0.7, "theatre": 0.65, "concert": 0.4, "festival": 0.25, "club night": 0.1,
	},
	CategoryEnergy: {
		"club night": 1.0, "festival": 0.95, "concert": 0.9, "sports": 0.8,
		"outdoor": 0.6, "comedy": 0.5, "theatre": 0.3, "art exhibition": 0.2,
	},
	CategoryNeutral: {
		"concert": 0.6, "theatre": 0.6, "art exhibition": 0.6, "comedy": 0.6,
		"workshop": 0.6, "outdoor": 0.6, "festival": 0.5, "club night": 0.4,
	},
}

const defaultEventAffinity = 0.3

func affinityFor(category MoodCategory, eventCategory string) float64 {
	row, ok := eventAffinity[category]
	if !ok {
		row = eventAffinity[CategoryNeutral]
	}
	if a, ok := row[normalizeGenre(eventCategory)]; ok {
		return a
	}
	return defaultEventAffinity
}

// scoreEvents computes the weighted composite for each candidate, drops
// everything under MinComposite, and returns the rest sorted by
// descending score (ties by category, so output order is stable).
func scoreEvents(category MoodCategory, candidates []domain.EventCandidate, w EventWeights) []domain.ScoredEvent {
	scored := make([]domain.ScoredEvent, 0, len(candidates))
	for _, cand := range candidates {
		composite := w.CategoryAffinity*affinityFor(category, cand.Category) +
			w.PreferenceMatch*clamp01(cand.PreferenceMatch) +
			w.Proximity*proximityCredit(cand.Distance) +
			w.TemporalFit*temporalCredit(cand.DaysOut) +
			w.HistoryAffinity*clamp01(cand.HistoryAffinity)
		if composite < w.MinComposite {
			continue
		}
		scored = append(scored, domain.ScoredEvent{Category: cand.Category, Score: composite})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Category < scored[j].Category
	})
	return scored
}

func proximityCredit(distance float64) float64 {
	switch {
	case distance <= eventNearDistance:
		return 1
	case distance >= eventFarDistance:
		return 0
	default:
		return (eventFarDistance - distance) / (eventFarDistance - eventNearDistance)
	}
}

func temporalCredit(daysOut int) float64 {
	switch {
	case daysOut >= 1 && daysOut <= 14:
		return 1
	case daysOut >= 15 && daysOut <= 30:
		return 0.5
	default:
		return 0
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
