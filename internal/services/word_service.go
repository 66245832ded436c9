package services

import (
	"context"
	"strings"
	"time"

	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
	"github.com/yeonsu/vocaflash/internal/srs"
)

// WordService handles word-related business logic
type WordService interface {
	GetWord(ctx context.Context, id int64) (*models.Word, error)
	ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	DueWords(ctx context.Context, lessonID int64, limit int) ([]models.Word, error)
	AddWord(ctx context.Context, word models.Word) (*models.Word, error)
	UpdateWord(ctx context.Context, word models.Word) error
	DeleteWord(ctx context.Context, id int64) error
	ApplyReview(ctx context.Context, wordID int64, wasCorrect bool, elapsedMs int64) (*models.Word, error)
}

type wordService struct {
	words repository.WordRepository
	now   func() time.Time
}

// NewWordService creates a new WordService
func NewWordService(words repository.WordRepository) WordService {
	return &wordService{words: words, now: time.Now}
}

func (s *wordService) GetWord(ctx context.Context, id int64) (*models.Word, error) {
	word, err := s.words.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	words, err := s.words.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *wordService) DueWords(ctx context.Context, lessonID int64, limit int) ([]models.Word, error) {
	now := s.now()
	words, err := s.words.List(ctx, models.WordFilter{
		LessonID:  lessonID,
		DueBefore: &now,
		OrderBy:   "due_at",
		Limit:     limit,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *wordService) AddWord(ctx context.Context, word models.Word) (*models.Word, error) {
	log := logger.FromContext(ctx)

	word.Term = strings.TrimSpace(word.Term)
	word.Translation = strings.TrimSpace(word.Translation)
	if word.Term == "" {
		return nil, errors.NewValidationError("term", "cannot be empty")
	}
	if word.Translation == "" {
		return nil, errors.NewValidationError("translation", "cannot be empty")
	}
	if word.LessonID == 0 {
		return nil, errors.NewValidationError("lesson_id", "is required")
	}

	// New words start unreviewed and immediately due.
	word.Level = 0
	word.DueAt = s.now()

	id, err := s.words.Insert(ctx, word)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	word.ID = id
	log.Info("word added: id=%d, term=%s", id, word.Term)
	return &word, nil
}

func (s *wordService) UpdateWord(ctx context.Context, word models.Word) error {
	if strings.TrimSpace(word.Term) == "" {
		return errors.NewValidationError("term", "cannot be empty")
	}
	if strings.TrimSpace(word.Translation) == "" {
		return errors.NewValidationError("translation", "cannot be empty")
	}

	existing, err := s.words.Get(ctx, word.ID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("word", word.ID)
	}

	if err := s.words.Update(ctx, word); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *wordService) DeleteWord(ctx context.Context, id int64) error {
	existing, err := s.words.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("word", id)
	}

	if err := s.words.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// ApplyReview advances a word's mastery state from one graded answer and
// persists it. The scheduler itself is pure; this is the write-back seam.
func (s *wordService) ApplyReview(ctx context.Context, wordID int64, wasCorrect bool, elapsedMs int64) (*models.Word, error) {
	log := logger.FromContext(ctx)

	word, err := s.words.Get(ctx, wordID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	updated := srs.Advance(*word, wasCorrect, elapsedMs, s.now())
	log.Debug("review applied: word_id=%d, correct=%v, level %d -> %d", wordID, wasCorrect, word.Level, updated.Level)

	if err := s.words.UpdateMastery(ctx, updated); err != nil {
		log.Error("failed to persist mastery update: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &updated, nil
}
