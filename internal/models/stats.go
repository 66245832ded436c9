package models

import "time"

// ShapeStat aggregates results for one round shape.
type ShapeStat struct {
	Shape        string  `json:"shape"`
	Sessions     int     `json:"sessions"`
	TotalRounds  int     `json:"total_rounds"`
	TotalCorrect int     `json:"total_correct"`
	Accuracy     float64 `json:"accuracy"` // 0..100
}

// LevelCount is one bucket of the mastery-level distribution.
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// OverallStats is the dashboard aggregate across all lessons.
type OverallStats struct {
	TotalWords        int          `json:"total_words"`
	DueWords          int          `json:"due_words"`
	TotalSessions     int          `json:"total_sessions"`
	TotalExperience   int          `json:"total_experience"`
	OverallAccuracy   float64      `json:"overall_accuracy"` // 0..100
	ShapeStats        []ShapeStat  `json:"shape_stats"`
	LevelDistribution []LevelCount `json:"level_distribution"`
}

// SessionTotals are the raw sums the stats service derives aggregates from.
type SessionTotals struct {
	Sessions     int `json:"sessions"`
	TotalRounds  int `json:"total_rounds"`
	TotalCorrect int `json:"total_correct"`
	Experience   int `json:"experience"`
}

// LessonStats is the per-lesson aggregate.
type LessonStats struct {
	LessonID        int64        `json:"lesson_id"`
	WordCount       int          `json:"word_count"`
	DueCount        int          `json:"due_count"`
	Sessions        int          `json:"sessions"`
	OverallAccuracy float64      `json:"overall_accuracy"`
	LevelCounts     []LevelCount `json:"level_counts"`
	LastPracticedAt *time.Time   `json:"last_practiced_at,omitempty"`
}
