package repository

import (
	"context"
	"time"

	"github.com/yeonsu/vocaflash/internal/models"
)

// WordRepository handles word data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	InsertBatch(ctx context.Context, words []models.Word) ([]int64, error)
	Update(ctx context.Context, word models.Word) error
	UpdateMastery(ctx context.Context, word models.Word) error
	Delete(ctx context.Context, id int64) error
	CountDue(ctx context.Context, lessonID int64, asOf time.Time) (int, error)
	LevelDistribution(ctx context.Context, lessonID int64) ([]models.LevelCount, error)
}
