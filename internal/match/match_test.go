package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeonsu/vocaflash/internal/match"
)

func TestMatch_ExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		alphabet match.Alphabet
	}{
		{name: "latin identity", input: "apple", target: "apple", alphabet: match.AlphabetLatin},
		{name: "hangul identity", input: "사과", target: "사과", alphabet: match.AlphabetHangul},
		{name: "case folded", input: "Apple", target: "apple", alphabet: match.AlphabetLatin},
		{name: "surrounding whitespace", input: "  apple  ", target: "apple", alphabet: match.AlphabetLatin},
		{name: "internal whitespace collapsed", input: "ice   cream", target: "ice cream", alphabet: match.AlphabetLatin},
		{name: "punctuation stripped", input: "it's", target: "its", alphabet: match.AlphabetLatin},
		{name: "hangul with stray latin", input: "사과 (apple)", target: "사과", alphabet: match.AlphabetHangul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := match.Match(tt.input, tt.target, tt.alphabet)
			assert.True(t, res.IsMatch)
			assert.Equal(t, 1.0, res.Confidence)
		})
	}
}

func TestMatch_HangulSubstitutionBelowThreshold(t *testing.T) {
	// One substitution in a two-syllable word: similarity 0.5 < 0.70.
	res := match.Match("사가", "사과", match.AlphabetHangul)

	assert.False(t, res.IsMatch)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
}

func TestMatch_LatinTypoWithinThreshold(t *testing.T) {
	// One substitution in an eight-letter word: similarity 0.875 >= 0.75.
	res := match.Match("elephent", "elephant", match.AlphabetLatin)

	assert.True(t, res.IsMatch)
	assert.InDelta(t, 0.875, res.Confidence, 1e-9)
}

func TestMatch_LatinThresholdBoundary(t *testing.T) {
	// Exactly one edit on a four-letter word: similarity 0.75 matches,
	// two edits (0.5) does not.
	ok := match.Match("word", "ward", match.AlphabetLatin)
	assert.True(t, ok.IsMatch)
	assert.InDelta(t, 0.75, ok.Confidence, 1e-9)

	bad := match.Match("word", "wild", match.AlphabetLatin)
	assert.False(t, bad.IsMatch)
}

func TestMatch_ConfidenceMonotonicOverEdits(t *testing.T) {
	target := "안녕하세요"
	inputs := []string{
		"안녕하세요", // 0 edits
		"안녕하세유", // 1 edit
		"안녕하수유", // 2 edits
		"안녕가수유", // 3 edits
		"안싱가수유", // 4 edits
	}

	prev := 1.1
	flipped := false
	for _, in := range inputs {
		res := match.Match(in, target, match.AlphabetHangul)
		assert.LessOrEqual(t, res.Confidence, prev, "confidence must be non-increasing for %q", in)
		if !res.IsMatch {
			flipped = true
		} else {
			// Once the threshold flips to no-match it must not flip back.
			assert.False(t, flipped, "match oscillated at %q", in)
		}
		prev = res.Confidence
	}
	assert.True(t, flipped, "expected divergence to eventually fail the threshold")
}

func TestMatch_EmptyInputs(t *testing.T) {
	// Both empty after normalization: defined as fully similar.
	res := match.Match("", "", match.AlphabetLatin)
	assert.True(t, res.IsMatch)
	assert.Equal(t, 1.0, res.Confidence)

	// Empty input against a real target is a total miss.
	res = match.Match("", "apple", match.AlphabetLatin)
	assert.False(t, res.IsMatch)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestMatch_Deterministic(t *testing.T) {
	first := match.Match("annyeong", "annyong", match.AlphabetLatin)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, match.Match("annyeong", "annyong", match.AlphabetLatin))
	}
}

func TestNormalize_Hangul(t *testing.T) {
	assert.Equal(t, "사과", match.Normalize(" 사과! ", match.AlphabetHangul))
	assert.Equal(t, "사과", match.Normalize("sa사gwa과12", match.AlphabetHangul))
	assert.Equal(t, "", match.Normalize("abc 123", match.AlphabetHangul))
}

func TestNormalize_Latin(t *testing.T) {
	assert.Equal(t, "dont stop", match.Normalize("Don't  STOP!", match.AlphabetLatin))
	assert.Equal(t, "cafe 24", match.Normalize("  cafe   24 ", match.AlphabetLatin))
}
