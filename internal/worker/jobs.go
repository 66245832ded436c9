package worker

import (
	"context"
	"strings"
	"time"

	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

// ImportWordsJob inserts a bulk payload of word pairs into a lesson.
type ImportWordsJob struct {
	WordRepo repository.WordRepository
	LessonID int64
	Words    []models.ImportWord
}

func (j *ImportWordsJob) Name() string { return "import_words" }

func (j *ImportWordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("lesson_id", j.LessonID)
	log.Info("importing %d words", len(j.Words))

	now := time.Now()
	batch := make([]models.Word, 0, len(j.Words))
	skipped := 0
	for _, entry := range j.Words {
		term := strings.TrimSpace(entry.Term)
		translation := strings.TrimSpace(entry.Translation)
		if term == "" || translation == "" {
			skipped++
			continue
		}
		batch = append(batch, models.Word{
			LessonID:    j.LessonID,
			Term:        term,
			Translation: translation,
			ImageURL:    entry.ImageURL,
			DueAt:       now,
		})
	}
	if skipped > 0 {
		log.Warn("skipped %d entries with empty term or translation", skipped)
	}
	if len(batch) == 0 {
		log.Warn("nothing to import")
		return nil
	}

	ids, err := j.WordRepo.InsertBatch(ctx, batch)
	if err != nil {
		return err
	}
	log.Info("imported %d words", len(ids))
	return nil
}
