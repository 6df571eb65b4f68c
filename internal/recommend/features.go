package recommend

import "moodring/internal/domain"

// featureTable holds one canonical audio-feature target set per mood
// category. Valence/energy/danceability/acousticness are [0, 1], tempo is
// BPM, loudness is dB.
var featureTable = map[MoodCategory]domain.FeatureTargets{
	CategoryJoy: {
		Valence:      domain.FeatureRange{Min: 0.65, Max: 0.95},
		Energy:       domain.FeatureRange{Min: 0.55, Max: 0.85},
		Danceability: domain.FeatureRange{Min: 0.55, Max: 0.9},
		Acousticness: domain.FeatureRange{Min: 0.05, Max: 0.35},
		Tempo:        domain.FeatureRange{Min: 110, Max: 140},
		Loudness:     domain.FeatureRange{Min: -9, Max: -4},
	},
	CategorySadness: {
		Valence:      domain.FeatureRange{Min: 0.1, Max: 0.4},
		Energy:       domain.FeatureRange{Min: 0.15, Max: 0.45},
		Danceability: domain.FeatureRange{Min: 0.2, Max: 0.45},
		Acousticness: domain.FeatureRange{Min: 0.5, Max: 0.9},
		Tempo:        domain.FeatureRange{Min: 60, Max: 95},
		Loudness:     domain.FeatureRange{Min: -16, Max: -9},
	},
	CategoryAnger: {
		Valence:      domain.FeatureRange{Min: 0.2, Max: 0.5},
		Energy:       domain.FeatureRange{Min: 0.7, Max: 1},
		Danceability: domain.FeatureRange{Min: 0.4, Max: 0.7},
		Acousticness: domain.FeatureRange{Min: 0, Max: 0.2},
		Tempo:        domain.FeatureRange{Min: 130, Max: 175},
		Loudness:     domain.FeatureRange{Min: -7, Max: -2},
	},
	CategoryFear: {
		Valence:      domain.FeatureRange{Min: 0.2, Max: 0.45},
		Energy:       domain.FeatureRange{Min: 0.25, Max: 0.55},
		Danceability: domain.FeatureRange{Min: 0.25, Max: 0.5},
		Acousticness: domain.FeatureRange{Min: 0.35, Max: 0.7},
		Tempo:        domain.FeatureRange{Min: 70, Max: 100},
		Loudness:     domain.FeatureRange{Min: -14, Max: -8},
	},
	CategorySurprise: {
		Valence:      domain.FeatureRange{Min: 0.5, Max: 0.8},
		Energy:       domain.FeatureRange{Min: 0.5, Max: 0.8},
		Danceability: domain.FeatureRange{Min: 0.45, Max: 0.75},
		Acousticness: domain.FeatureRange{Min: 0.1, Max: 0.4},
		Tempo:        domain.FeatureRange{Min: 100, Max: 135},
		Loudness:     domain.FeatureRange{Min: -10, Max: -5},
	},
	CategoryCalm: {
		Valence:      domain.FeatureRange{Min: 0.4, Max: 0.7},
		Energy:       domain.FeatureRange{Min: 0.1, Max: 0.35},
		Danceability: domain.FeatureRange{Min: 0.25, Max: 0.5},
		Acousticness: domain.FeatureRange{Min: 0.55, Max: 0.95},
		Tempo:        domain.FeatureRange{Min: 60, Max: 90},
		Loudness:     domain.FeatureRange{Min: -18, Max: -10},
	},
	CategoryEnergy: {
		Valence:      domain.FeatureRange{Min: 0.55, Max: 0.85},
		Energy:       domain.FeatureRange{Min: 0.75, Max: 1},
		Danceability: domain.FeatureRange{Min: 0.65, Max: 0.95},
		Acousticness: domain.FeatureRange{Min: 0, Max: 0.15},
		Tempo:        domain.FeatureRange{Min: 120, Max: 160},
		Loudness:     domain.FeatureRange{Min: -7, Max: -3},
	},
	CategoryNeutral: {
		Valence:      domain.FeatureRange{Min: 0.35, Max: 0.65},
		Energy:       domain.FeatureRange{Min: 0.3, Max: 0.6},
		Danceability: domain.FeatureRange{Min: 0.35, Max: 0.65},
		Acousticness: domain.FeatureRange{Min: 0.25, Max: 0.6},
		Tempo:        domain.FeatureRange{Min: 85, Max: 115},
		Loudness:     domain.FeatureRange{Min: -13, Max: -7},
	},
}

// TargetsFor returns the canonical range set for a category. Unknown
// categories get the neutral set.
func TargetsFor(category MoodCategory) domain.FeatureTargets {
	if t, ok := featureTable[category]; ok {
		return t
	}
	return featureTable[CategoryNeutral]
}

// blendTargets mixes primary and secondary targets for a complex mood:
// each range is re-centered on the weighted midpoint (primaryWeight on
// the primary) and widened until it covers both source ranges.
func blendTargets(primary, secondary domain.FeatureTargets, primaryWeight float64) domain.FeatureTargets {
	return domain.FeatureTargets{
		Valence:      blendRange(primary.Valence, secondary.Valence, primaryWeight, true),
		Energy:       blendRange(primary.Energy, secondary.Energy, primaryWeight, true),
		Danceability: blendRange(primary.Danceability, secondary.Danceability, primaryWeight, true),
		Acousticness: blendRange(primary.Acousticness, secondary.Acousticness, primaryWeight, true),
		Tempo:        blendRange(primary.Tempo, secondary.Tempo, primaryWeight, false),
		Loudness:     blendRange(primary.Loudness, secondary.Loudness, primaryWeight, false),
	}
}

func blendRange(p, s domain.FeatureRange, w float64, unit bool) domain.FeatureRange {
	center := p.Mid()*w + s.Mid()*(1-w)
	lo := p.Min
	if s.Min < lo {
		lo = s.Min
	}
	hi := p.Max
	if s.Max > hi {
		hi = s.Max
	}

	half := hi - center
	if center-lo > half {
		half = center - lo
	}
	out := domain.FeatureRange{Min: center - half, Max: center + half}
	if unit {
		if out.Min < 0 {
			out.Min = 0
		}
		if out.Max > 1 {
			out.Max = 1
		}
	}
	return out
}
