package services

import (
	"context"

	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
	"github.com/yeonsu/vocaflash/internal/worker"
)

// ImportService queues bulk word imports on the background pool.
type ImportService interface {
	QueueImport(ctx context.Context, lessonID int64, words []models.ImportWord) (int, error)
	PendingJobs() int
}

type importService struct {
	lessons repository.LessonRepository
	words   repository.WordRepository
	pool    *worker.Pool
}

// NewImportService creates a new ImportService
func NewImportService(lessons repository.LessonRepository, words repository.WordRepository, pool *worker.Pool) ImportService {
	return &importService{lessons: lessons, words: words, pool: pool}
}

// QueueImport validates the payload, submits the job and returns the number
// of entries queued. The insert itself happens on a worker.
func (s *importService) QueueImport(ctx context.Context, lessonID int64, words []models.ImportWord) (int, error) {
	log := logger.FromContext(ctx)

	if len(words) == 0 {
		return 0, errors.NewValidationError("words", "payload cannot be empty")
	}

	lesson, err := s.lessons.Get(ctx, lessonID)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	if lesson == nil {
		return 0, errors.NewNotFoundError("lesson", lessonID)
	}

	log.Info("queueing import of %d words into lesson %d", len(words), lessonID)
	s.pool.Submit(&worker.ImportWordsJob{
		WordRepo: s.words,
		LessonID: lessonID,
		Words:    words,
	})
	return len(words), nil
}

func (s *importService) PendingJobs() int {
	return s.pool.QueueSize()
}
