// Package engine drives question/round-based practice sessions.
//
// Every game mode is a thin presentation over the same machinery: Build
// snapshots a word pool into an ordered list of rounds, Submit grades one
// answer and advances the cursor, Stats aggregates the outcomes. The engine
// holds no storage and no timers; persistence and timeouts belong to the
// caller.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/yeonsu/vocaflash/internal/match"
	"github.com/yeonsu/vocaflash/internal/models"
)

// Shape is the question format of a round. The grading function switches
// exhaustively on it instead of probing for optional fields.
type Shape string

const (
	ShapeChoice   Shape = "choice"
	ShapeFreeText Shape = "free-text"
	ShapeSequence Shape = "sequence"
	ShapeAudio    Shape = "audio"
)

// ValidShape reports whether s names a known round shape.
func ValidShape(s string) bool {
	switch Shape(s) {
	case ShapeChoice, ShapeFreeText, ShapeSequence, ShapeAudio:
		return true
	}
	return false
}

// Status is the session lifecycle state. The only transition path is
// not-started → in-progress (Build) → completed (final Submit).
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Round is one question instance derived from a word.
type Round struct {
	Word     models.Word   `json:"word"`
	Prompt   string        `json:"prompt"`
	AudioRef string        `json:"audio_ref,omitempty"` // text for the caller to synthesize
	Expected []string      `json:"expected"`            // accepted answers (choice / free-text / audio)
	Sequence []string      `json:"sequence,omitempty"`  // expected ordered answer (sequence shape)
	Options  []string      `json:"options,omitempty"`   // presented choices, correct answer included once
	Deadline time.Duration `json:"deadline,omitempty"`  // per-round time limit, 0 = untimed
}

// Answer is the raw input submitted for the current round.
type Answer struct {
	Text      string   `json:"text"`
	Sequence  []string `json:"sequence,omitempty"` // sequence rounds only
	ElapsedMs int64    `json:"elapsed_ms"`
}

// Outcome is the immutable graded result of one round.
type Outcome struct {
	RoundIndex int     `json:"round_index"`
	Input      string  `json:"input"`
	Correct    bool    `json:"correct"`
	Confidence float64 `json:"confidence"` // 1.0 = exact match
	ElapsedMs  int64   `json:"elapsed_ms"`
	Experience int     `json:"experience"`
}

// Session is the live state of one practice run. It is exclusively owned by
// the caller that built it and is mutated only through Engine.Submit.
type Session struct {
	ID       uuid.UUID `json:"id"`
	LessonID int64     `json:"lesson_id"`
	Shape    Shape     `json:"shape"`

	Rounds   []Round   `json:"rounds"`
	Position int       `json:"position"`
	Outcomes []Outcome `json:"outcomes"`
	Status   Status    `json:"status"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"` // zero until completed

	alphabet match.Alphabet
	fuzzy    bool
	reward   RewardPolicy

	streak    int
	maxStreak int
}

// Current returns the round awaiting an answer, or nil once completed.
func (s *Session) Current() *Round {
	if s.Status != StatusInProgress || s.Position >= len(s.Rounds) {
		return nil
	}
	return &s.Rounds[s.Position]
}

// Stats is the running aggregation over a session's outcomes. Valid
// mid-session (accuracy so far) as well as at completion.
type Stats struct {
	CorrectCount    int     `json:"correct_count"`
	IncorrectCount  int     `json:"incorrect_count"`
	Accuracy        float64 `json:"accuracy"` // 0..100
	TotalExperience int     `json:"total_experience"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	MaxStreak       int     `json:"max_streak"`
}
