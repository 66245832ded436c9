package models

import "time"

// Direction controls which language form is the prompt and which is the answer.
const (
	DirectionTermToTranslation = "term-to-translation"
	DirectionTranslationToTerm = "translation-to-term"
)

// Settings is the single-row learner configuration, read at session build time.
type Settings struct {
	QuestionsPerSession int       `json:"questions_per_session"`
	TimeLimitSeconds    int       `json:"time_limit_seconds"`
	Direction           string    `json:"direction"`
	FuzzyMatchEnabled   bool      `json:"fuzzy_match_enabled"`
	UpdatedAt           time.Time `json:"updated_at"`
}
