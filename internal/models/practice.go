package models

import "time"

// PracticeSession is the persisted summary of a finished or abandoned session.
// The live session state is held in memory by the practice service; only the
// outcome is written back here.
type PracticeSession struct {
	ID            int64      `json:"id"`
	PublicID      string     `json:"public_id"` // uuid handed to the client
	LessonID      int64      `json:"lesson_id"`
	Shape         string     `json:"shape"`
	TotalRounds   int        `json:"total_rounds"`
	CorrectRounds int        `json:"correct_rounds"`
	Experience    int        `json:"experience"`
	Accuracy      float64    `json:"accuracy"` // 0..100
	MaxStreak     int        `json:"max_streak"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PracticeAttempt is one graded round within a session.
type PracticeAttempt struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	WordID     int64     `json:"word_id"`
	RoundIndex int       `json:"round_index"`
	Input      string    `json:"input"`
	WasCorrect bool      `json:"was_correct"`
	Confidence float64   `json:"confidence"` // similarity score, 1.0 for exact
	TimeMs     int64     `json:"time_ms"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
}

// SessionFilter narrows practice session listings.
type SessionFilter struct {
	LessonID int64
	Shape    string
	Limit    int
	Offset   int
}
