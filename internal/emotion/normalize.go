package emotion

import (
	"sort"
	"strings"

	"moodring/internal/domain"
)

// NoiseFloor is the confidence below which a detected emotion is treated
// as sensor noise and dropped.
const NoiseFloor = 1.0

// Entry is one (label, confidence) pair of a ranked emotion vector.
type Entry struct {
	Label      string
	Confidence float64
}

// Normalize cleans a raw detector output: labels are lower-cased and
// trimmed, confidences clamped to [0, 100], entries below NoiseFloor
// dropped. When trimming collapses two labels into one, the larger
// confidence wins. An empty or all-noise input yields an empty vector,
// which downstream code treats as a neutral signal.
func Normalize(raw map[string]float64) domain.EmotionVector {
	out := make(domain.EmotionVector, len(raw))
	for label, confidence := range raw {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			continue
		}
		if confidence < NoiseFloor {
			continue
		}
		if confidence > 100 {
			confidence = 100
		}
		if prev, ok := out[key]; ok && prev >= confidence {
			continue
		}
		out[key] = confidence
	}
	return out
}

// Ranked returns the vector's entries sorted by descending confidence,
// ties broken by label. Scoring itself does not depend on order; the
// ranking exists so iteration and fallback selection are deterministic.
func Ranked(v domain.EmotionVector) []Entry {
	entries := make([]Entry, 0, len(v))
	for label, confidence := range v {
		entries = append(entries, Entry{Label: label, Confidence: confidence})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Confidence != entries[j].Confidence {
			return entries[i].Confidence > entries[j].Confidence
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// Dominant returns the highest-confidence entry, or false for an empty
// vector.
func Dominant(v domain.EmotionVector) (Entry, bool) {
	ranked := Ranked(v)
	if len(ranked) == 0 {
		return Entry{}, false
	}
	return ranked[0], true
}
