package detector

import (
	"hash/fnv"
	"math/rand"
)

var simulatorLabels = []string{
	"happy", "sad", "angry", "fearful", "surprised",
	"disgusted", "calm", "excited", "neutral",
}

// Simulator fabricates a detector-shaped emotion vector when no real
// detection service is configured. Output is deterministic per subject
// key, so repeated calls for the same subject classify identically.
type Simulator struct{}

// Detect produces a dominant emotion with high confidence plus a couple
// of weaker companions and a little sub-noise-floor residue, which is the
// shape real detector output tends to have.
func (Simulator) Detect(subject string) map[string]float64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(subject))
	// Deterministic RNG keyed on the subject, not security-sensitive.
	rng := rand.New(rand.NewSource(int64(hasher.Sum64())))

	order := rng.Perm(len(simulatorLabels))
	out := make(map[string]float64, 4)

	out[simulatorLabels[order[0]]] = 55 + rng.Float64()*40 // dominant
	out[simulatorLabels[order[1]]] = 10 + rng.Float64()*30
	out[simulatorLabels[order[2]]] = 1 + rng.Float64()*12
	out[simulatorLabels[order[3]]] = rng.Float64() * 0.9 // below the noise floor
	return out
}
