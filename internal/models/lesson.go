package models

import "time"

type Lesson struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LessonWithCounts pairs a lesson with word totals for list views.
type LessonWithCounts struct {
	Lesson
	WordCount int `json:"word_count"`
	DueCount  int `json:"due_count"`
}

// ImportWord is one entry of a bulk lesson import payload.
type ImportWord struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
	ImageURL    string `json:"image_url,omitempty"`
}
