package recommend

import "strings"

// MaxGenreSeeds caps the seed list handed to music clients (the usual
// recommendation-API limit).
const MaxGenreSeeds = 5

// genreSeeds builds the ordered seed list: genres the user prefers that
// also fit the mood come first, in the user's order; remaining slots fill
// from the mood's own tag list in catalog order. No duplicates, at most
// MaxGenreSeeds entries.
func genreSeeds(moodTags, userGenres []string) []string {
	seeds := make([]string, 0, MaxGenreSeeds)
	seen := make(map[string]bool, MaxGenreSeeds)

	moodSet := make(map[string]bool, len(moodTags))
	for _, tag := range moodTags {
		moodSet[normalizeGenre(tag)] = true
	}

	for _, genre := range userGenres {
		key := normalizeGenre(genre)
		if key == "" || !moodSet[key] || seen[key] {
			continue
		}
		seeds = append(seeds, key)
		seen[key] = true
		if len(seeds) == MaxGenreSeeds {
			return seeds
		}
	}

	for _, tag := range moodTags {
		key := normalizeGenre(tag)
		if key == "" || seen[key] {
			continue
		}
		seeds = append(seeds, key)
		seen[key] = true
		if len(seeds) == MaxGenreSeeds {
			break
		}
	}
	return seeds
}

func normalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}
