package services

import (
	"context"
	"time"

	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

// StatsService aggregates review progress for the dashboard views.
type StatsService interface {
	Overall(ctx context.Context) (*models.OverallStats, error)
	Lesson(ctx context.Context, lessonID int64) (*models.LessonStats, error)
	RecentSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error)
}

type statsService struct {
	words    repository.WordRepository
	lessons  repository.LessonRepository
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(words repository.WordRepository, lessons repository.LessonRepository, sessions repository.SessionRepository) StatsService {
	return &statsService{words: words, lessons: lessons, sessions: sessions, now: time.Now}
}

func (s *statsService) Overall(ctx context.Context) (*models.OverallStats, error) {
	log := logger.FromContext(ctx)

	totalWords, err := s.words.Count(ctx, models.WordFilter{})
	if err != nil {
		log.Error("failed to count words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	dueWords, err := s.words.CountDue(ctx, 0, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	totals, err := s.sessions.Totals(ctx, 0)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	shapeStats, err := s.sessions.ShapeStats(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	levels, err := s.words.LevelDistribution(ctx, 0)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	stats := &models.OverallStats{
		TotalWords:        totalWords,
		DueWords:          dueWords,
		TotalSessions:     totals.Sessions,
		TotalExperience:   totals.Experience,
		ShapeStats:        shapeStats,
		LevelDistribution: levels,
	}
	if totals.TotalRounds > 0 {
		stats.OverallAccuracy = float64(totals.TotalCorrect) / float64(totals.TotalRounds) * 100
	}
	return stats, nil
}

func (s *statsService) Lesson(ctx context.Context, lessonID int64) (*models.LessonStats, error) {
	lesson, err := s.lessons.Get(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", lessonID)
	}

	wordCount, err := s.words.Count(ctx, models.WordFilter{LessonID: lessonID})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	dueCount, err := s.words.CountDue(ctx, lessonID, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	totals, err := s.sessions.Totals(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	levels, err := s.words.LevelDistribution(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	stats := &models.LessonStats{
		LessonID:    lessonID,
		WordCount:   wordCount,
		DueCount:    dueCount,
		Sessions:    totals.Sessions,
		LevelCounts: levels,
	}
	if totals.TotalRounds > 0 {
		stats.OverallAccuracy = float64(totals.TotalCorrect) / float64(totals.TotalRounds) * 100
	}

	recent, err := s.sessions.ListSessions(ctx, models.SessionFilter{LessonID: lessonID, Limit: 1})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(recent) > 0 {
		stats.LastPracticedAt = &recent[0].StartedAt
	}
	return stats, nil
}

func (s *statsService) RecentSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error) {
	sessions, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}
