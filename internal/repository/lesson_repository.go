package repository

import (
	"context"

	"github.com/yeonsu/vocaflash/internal/models"
)

// LessonRepository handles lesson data access
type LessonRepository interface {
	Get(ctx context.Context, id int64) (*models.Lesson, error)
	List(ctx context.Context) ([]models.LessonWithCounts, error)
	Insert(ctx context.Context, lesson models.Lesson) (int64, error)
	Update(ctx context.Context, lesson models.Lesson) error
	Delete(ctx context.Context, id int64) error
}
