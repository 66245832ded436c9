package services

import (
	"context"
	"strings"

	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

// LessonService handles lesson-related business logic
type LessonService interface {
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context) ([]models.LessonWithCounts, error)
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, id int64) error
}

type lessonService struct {
	lessons repository.LessonRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(lessons repository.LessonRepository) LessonService {
	return &lessonService{lessons: lessons}
}

func (s *lessonService) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, err := s.lessons.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

func (s *lessonService) ListLessons(ctx context.Context) ([]models.LessonWithCounts, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

func (s *lessonService) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	log := logger.FromContext(ctx)

	lesson.Name = strings.TrimSpace(lesson.Name)
	if lesson.Name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	id, err := s.lessons.Insert(ctx, lesson)
	if err != nil {
		log.Error("failed to insert lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	lesson.ID = id
	log.Info("lesson created: id=%d, name=%s", id, lesson.Name)
	return &lesson, nil
}

func (s *lessonService) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	if strings.TrimSpace(lesson.Name) == "" {
		return errors.NewValidationError("name", "cannot be empty")
	}

	existing, err := s.lessons.Get(ctx, lesson.ID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("lesson", lesson.ID)
	}

	if err := s.lessons.Update(ctx, lesson); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	existing, err := s.lessons.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("lesson", id)
	}

	// Words and session rows cascade with the lesson.
	if err := s.lessons.Delete(ctx, id); err != nil {
		log.Error("failed to delete lesson: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("lesson deleted: id=%d", id)
	return nil
}
