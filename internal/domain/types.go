package domain

import "time"

// EmotionVector maps a lower-cased emotion label to a detector confidence
// in [0, 100]. Values below the noise floor are removed during
// normalization, so a zero-length vector is a valid "no signal" input.
type EmotionVector map[string]float64

type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityComplex Complexity = "complex"
)

// MoodProfile is one catalog entry: a named emotional pattern described by
// trigger emotions (presence matters) and percent conditions (magnitude
// matters).
type MoodProfile struct {
	Label             string             `json:"label"`
	Description       string             `json:"description"`
	EmotionTriggers   []string           `json:"emotion_triggers"`
	PercentConditions []PercentCondition `json:"percent_conditions"`
	PatternType       string             `json:"pattern_type"`
	Quotes            []string           `json:"quotes"`
	MusicTags         []string           `json:"music_tags"`
	SuggestionNote    string             `json:"suggestion_note"`
}

// PercentCondition requires Emotion to be detected at MinPercent or above.
// Conditions are an ordered slice, not a map, so scoring iterates in
// source-row order and stays reproducible.
type PercentCondition struct {
	Emotion    string  `json:"emotion"`
	MinPercent float64 `json:"min_percent"`
}

type ClassifiedMood struct {
	ID          string        `json:"id"`
	Primary     string        `json:"primary"`
	Secondary   string        `json:"secondary,omitempty"`
	Confidence  float64       `json:"confidence"`
	Complexity  Complexity    `json:"complexity"`
	RawEmotions EmotionVector `json:"raw_emotions"`
	Profile     MoodProfile   `json:"profile"`
	// SecondaryProfile is set only for complex moods, so downstream
	// mapping can blend both profiles without a catalog lookup.
	SecondaryProfile *MoodProfile `json:"secondary_profile,omitempty"`
	AnalyzedAt       time.Time    `json:"analyzed_at"`
}

// TasteSignal carries optional listening-history hints supplied by the
// caller. Either list may be empty; classification and mapping work
// without it.
type TasteSignal struct {
	PreferredGenres  []string `json:"preferred_genres,omitempty"`
	PreferredArtists []string `json:"preferred_artists,omitempty"`
}

// FeatureRange is an inclusive numeric target range for one audio feature.
type FeatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r FeatureRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// FeatureTargets are the audio-feature ranges a music client should aim
// for. Valence, Energy, Danceability and Acousticness are in [0, 1];
// Tempo is BPM; Loudness is dB.
type FeatureTargets struct {
	Valence      FeatureRange `json:"valence"`
	Energy       FeatureRange `json:"energy"`
	Danceability FeatureRange `json:"danceability"`
	Acousticness FeatureRange `json:"acousticness"`
	Tempo        FeatureRange `json:"tempo"`
	Loudness     FeatureRange `json:"loudness"`
}

// EventCandidate is a caller-supplied candidate for event relevance
// weighting. Distance is in the caller's distance units; DaysOut is days
// until the event starts. PreferenceMatch and HistoryAffinity are [0, 1]
// signals computed by the surrounding application.
type EventCandidate struct {
	Category        string  `json:"category"`
	Distance        float64 `json:"distance"`
	DaysOut         int     `json:"days_out"`
	PreferenceMatch float64 `json:"preference_match"`
	HistoryAffinity float64 `json:"history_affinity"`
}

// ScoredEvent is an EventCandidate that passed the relevance threshold.
type ScoredEvent struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type RecommendationParameters struct {
	GenreSeeds     []string       `json:"genre_seeds"`
	FeatureTargets FeatureTargets `json:"feature_targets"`
	EventWeights   []ScoredEvent  `json:"event_weights"`
	Reasoning      string         `json:"reasoning"`
}
