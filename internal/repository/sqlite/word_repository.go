package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

const wordColumns = "id, lesson_id, term, translation, image_url, level, due_at, review_count, correct_streak, experience, last_reviewed_at, created_at"

func scanWord(scan func(...any) error) (models.Word, error) {
	var w models.Word
	var lastReviewed sql.NullTime
	err := scan(&w.ID, &w.LessonID, &w.Term, &w.Translation, &w.ImageURL, &w.Level,
		&w.DueAt, &w.ReviewCount, &w.CorrectStreak, &w.Experience, &lastReviewed, &w.CreatedAt)
	if err != nil {
		return w, err
	}
	if lastReviewed.Valid {
		w.LastReviewedAt = &lastReviewed.Time
	}
	return w, nil
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id)
	w, err := scanWord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found: id=%d", id)
			return nil, nil
		}
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: lesson_id=%d", filter.LessonID)

	query := r.filtered(sqlBuilder.Select(
		"id", "lesson_id", "term", "translation", "image_url", "level", "due_at",
		"review_count", "correct_streak", "experience", "last_reviewed_at", "created_at",
	).From("words"), filter)

	// Safe ORDER BY with validation
	orderBy := "created_at"
	switch filter.OrderBy {
	case "due_at", "level", "term", "created_at":
		orderBy = filter.OrderBy
	}
	orderDir := "ASC"
	if filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows.Scan)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	query := r.filtered(sqlBuilder.Select("COUNT(*)").From("words"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	return count, err
}

// filtered applies the dynamic WHERE clauses shared by List and Count.
func (r *wordRepository) filtered(query squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.LessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"due_at": *filter.DueBefore})
	}
	if filter.MaxLevel != nil {
		query = query.Where(squirrel.LtOrEq{"level": *filter.MaxLevel})
	}
	return query
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: lesson_id=%d, term=%s", w.LessonID, w.Term)

	dueAt := w.DueAt
	if dueAt.IsZero() {
		dueAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (lesson_id, term, translation, image_url, level, due_at, review_count, correct_streak, experience)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, w.LessonID, w.Term, w.Translation, w.ImageURL, w.Level, dueAt, w.ReviewCount, w.CorrectStreak, w.Experience)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get word id: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting %d words in batch", len(words))

	ids := make([]int64, 0, len(words))
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO words (lesson_id, term, translation, image_url, level, due_at, review_count, correct_streak, experience)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, w := range words {
			dueAt := w.DueAt
			if dueAt.IsZero() {
				dueAt = time.Now()
			}
			res, err := stmt.ExecContext(ctx, w.LessonID, w.Term, w.Translation, w.ImageURL,
				w.Level, dueAt, w.ReviewCount, w.CorrectStreak, w.Experience)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert word batch: %v", err)
		return nil, err
	}
	return ids, nil
}

func (r *wordRepository) Update(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("updating word: id=%d", w.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE words
SET term = ?, translation = ?, image_url = ?
WHERE id = ?
`, w.Term, w.Translation, w.ImageURL, w.ID)
	if err != nil {
		log.Error("failed to update word: %v", err)
	}
	return err
}

func (r *wordRepository) UpdateMastery(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("updating word mastery: id=%d, level=%d", w.ID, w.Level)

	_, err := r.db.ExecContext(ctx, `
UPDATE words
SET level = ?, due_at = ?, review_count = ?, correct_streak = ?, experience = ?, last_reviewed_at = ?
WHERE id = ?
`, w.Level, w.DueAt, w.ReviewCount, w.CorrectStreak, w.Experience, w.LastReviewedAt, w.ID)
	if err != nil {
		log.Error("failed to update word mastery: %v", err)
	}
	return err
}

func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("deleting word: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete word: %v", err)
	}
	return err
}

func (r *wordRepository) CountDue(ctx context.Context, lessonID int64, asOf time.Time) (int, error) {
	query := sqlBuilder.Select("COUNT(*)").From("words").Where(squirrel.LtOrEq{"due_at": asOf})
	if lessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": lessonID})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	return count, err
}

func (r *wordRepository) LevelDistribution(ctx context.Context, lessonID int64) ([]models.LevelCount, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := sqlBuilder.Select("level", "COUNT(*)").From("words").GroupBy("level").OrderBy("level ASC")
	if lessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": lessonID})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query level distribution: %v", err)
		return nil, err
	}
	defer rows.Close()

	var dist []models.LevelCount
	for rows.Next() {
		var lc models.LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, err
		}
		dist = append(dist, lc)
	}
	return dist, rows.Err()
}
