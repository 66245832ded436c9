package models

import "time"

// MaxLevel is the highest mastery level a word can reach.
const MaxLevel = 7

// Word is a single learnable vocabulary item with its scheduling state.
type Word struct {
	ID             int64      `json:"id"`
	LessonID       int64      `json:"lesson_id"`
	Term           string     `json:"term"`        // prompt form, e.g. the Korean word
	Translation    string     `json:"translation"` // answer form, e.g. the English meaning
	ImageURL       string     `json:"image_url,omitempty"`
	Level          int        `json:"level"` // mastery level, 0..MaxLevel
	DueAt          time.Time  `json:"due_at"`
	ReviewCount    int        `json:"review_count"`
	CorrectStreak  int        `json:"correct_streak"`
	Experience     int        `json:"experience"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// WordFilter narrows word listings.
type WordFilter struct {
	LessonID  int64
	DueBefore *time.Time
	MaxLevel  *int
	Limit     int
	Offset    int
	OrderBy   string
	OrderDir  string
}
