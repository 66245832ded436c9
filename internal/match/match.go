// Package match grades free-text answers by normalized edit distance.
//
// Matching is purely character-based: no stemming, no morphology. A single
// similarity threshold per alphabet decides match/no-match, so grading is
// deterministic and never ambiguous.
package match

import (
	"strings"
	"unicode"
)

// Alphabet selects the normalization rules and similarity threshold.
type Alphabet string

const (
	AlphabetLatin  Alphabet = "latin"
	AlphabetHangul Alphabet = "hangul"
)

// Similarity thresholds. Hangul is more lenient because compound characters
// make single-jamo typos common.
const (
	latinThreshold  = 0.75
	hangulThreshold = 0.70
)

// Result is the outcome of comparing an input against a target.
type Result struct {
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"` // similarity in [0,1], 1.0 = exact
}

// Match normalizes both strings and reports whether input is close enough to
// target under the alphabet's threshold. Pure and deterministic.
func Match(input, target string, alphabet Alphabet) Result {
	a := Normalize(input, alphabet)
	b := Normalize(target, alphabet)

	if a == b {
		return Result{IsMatch: true, Confidence: 1.0}
	}

	sim := similarity(a, b)
	return Result{IsMatch: sim >= threshold(alphabet), Confidence: sim}
}

func threshold(alphabet Alphabet) float64 {
	if alphabet == AlphabetHangul {
		return hangulThreshold
	}
	return latinThreshold
}

// Normalize trims, collapses whitespace, strips punctuation and case-folds.
// For hangul, every rune outside the Hangul blocks is dropped as well.
func Normalize(s string, alphabet Alphabet) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var sb strings.Builder
	for _, r := range s {
		switch {
		case alphabet == AlphabetHangul:
			if unicode.Is(unicode.Hangul, r) {
				sb.WriteRune(r)
			}
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}

	// Collapse runs of internal whitespace left by stripping.
	return strings.Join(strings.Fields(sb.String()), " ")
}

// similarity is 1 - lev(a,b)/max(len(a),len(b)) over runes.
// Two empty strings are defined as fully similar.
func similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the edit distance with a two-row DP.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
