package engine

import (
	"strings"

	"github.com/yeonsu/vocaflash/internal/match"
)

// grade resolves one answer against one round. Grading never fails: any
// input, however malformed, produces a definite correct/incorrect outcome.
// Empty input (including caller-driven timeouts) simply scores as incorrect.
func (e *Engine) grade(s *Session, round Round, ans Answer) (correct bool, confidence float64, input string) {
	switch s.Shape {
	case ShapeChoice:
		return gradeChoice(round, ans.Text)
	case ShapeSequence:
		return gradeSequence(round, ans.Sequence)
	default: // free-text and audio
		return gradeText(round, ans.Text, s.alphabet, s.fuzzy)
	}
}

// gradeChoice checks exact equality against the presented options' correct
// answer. No fuzziness: the learner picked a string we handed out.
func gradeChoice(round Round, text string) (bool, float64, string) {
	for _, expected := range round.Expected {
		if text == expected {
			return true, 1.0, text
		}
	}
	return false, 0, text
}

// gradeText grades free-text and dictation input, tolerating minor spelling
// mistakes through the similarity matcher when fuzzy matching is enabled.
// Multiple accepted answers take the best score.
func gradeText(round Round, text string, alphabet match.Alphabet, fuzzy bool) (bool, float64, string) {
	best := match.Result{}
	for _, expected := range round.Expected {
		var res match.Result
		if fuzzy {
			res = match.Match(text, expected, alphabet)
		} else {
			exact := match.Normalize(text, alphabet) == match.Normalize(expected, alphabet)
			res = match.Result{IsMatch: exact}
			if exact {
				res.Confidence = 1.0
			}
		}
		if res.Confidence > best.Confidence || (res.IsMatch && !best.IsMatch) {
			best = res
		}
	}
	return best.IsMatch, best.Confidence, text
}

// gradeSequence requires exact positional equality of the full list. Length
// mismatch is an automatic fail; there is no partial credit and no fuzzy
// fallback on sequence rounds.
func gradeSequence(round Round, submitted []string) (bool, float64, string) {
	input := strings.Join(submitted, " ")
	if len(submitted) != len(round.Sequence) {
		return false, 0, input
	}
	for i, s := range submitted {
		if strings.TrimSpace(s) != round.Sequence[i] {
			return false, 0, input
		}
	}
	return true, 1.0, input
}
