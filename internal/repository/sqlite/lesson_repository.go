package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Get(ctx context.Context, id int64) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%d", id)

	var l models.Lesson
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at FROM lessons WHERE id = ?
`, id).Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) List(ctx context.Context) ([]models.LessonWithCounts, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lessons")

	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.name, l.description, l.created_at,
       COUNT(w.id) AS word_count,
       COALESCE(SUM(CASE WHEN w.due_at <= CURRENT_TIMESTAMP THEN 1 ELSE 0 END), 0) AS due_count
FROM lessons l
LEFT JOIN words w ON w.lesson_id = l.id
GROUP BY l.id
ORDER BY l.name ASC
`)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.LessonWithCounts
	for rows.Next() {
		var l models.LessonWithCounts
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.WordCount, &l.DueCount); err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, l)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

func (r *lessonRepository) Insert(ctx context.Context, l models.Lesson) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("inserting lesson: name=%s", l.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO lessons (name, description) VALUES (?, ?)
`, l.Name, l.Description)
	if err != nil {
		log.Error("failed to insert lesson: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("lesson inserted: id=%d", id)
	return id, nil
}

func (r *lessonRepository) Update(ctx context.Context, l models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("updating lesson: id=%d", l.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE lessons SET name = ?, description = ? WHERE id = ?
`, l.Name, l.Description, l.ID)
	if err != nil {
		log.Error("failed to update lesson: %v", err)
	}
	return err
}

func (r *lessonRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("deleting lesson: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete lesson: %v", err)
	}
	return err
}
