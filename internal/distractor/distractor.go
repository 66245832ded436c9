// Package distractor picks wrong-but-plausible options for choice rounds.
// All randomness flows through an injected source so tests can seed it.
package distractor

import "math/rand"

// Pick returns up to count unique candidates from pool, never including the
// correct answer. When the pool is short it returns everything available
// rather than fabricating filler options.
func Pick(rng *rand.Rand, pool []string, correct string, count int) []string {
	seen := map[string]bool{correct: true}
	var candidates []string
	for _, s := range pool {
		if seen[s] {
			continue
		}
		seen[s] = true
		candidates = append(candidates, s)
	}

	Shuffle(rng, candidates)
	if count > len(candidates) {
		count = len(candidates)
	}
	if count < 0 {
		count = 0
	}
	return candidates[:count]
}

// Options combines the correct answer with its distractors and shuffles the
// result, so the correct answer lands at a uniformly random position.
func Options(rng *rand.Rand, correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	Shuffle(rng, options)
	return options
}

// Shuffle applies a Fisher-Yates permutation in place.
func Shuffle(rng *rand.Rand, items []string) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
