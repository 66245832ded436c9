package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = "id, public_id, lesson_id, shape, total_rounds, correct_rounds, experience, accuracy, max_streak, started_at, completed_at, created_at"

func scanSession(scan func(...any) error) (models.PracticeSession, error) {
	var s models.PracticeSession
	var completed sql.NullTime
	err := scan(&s.ID, &s.PublicID, &s.LessonID, &s.Shape, &s.TotalRounds, &s.CorrectRounds,
		&s.Experience, &s.Accuracy, &s.MaxStreak, &s.StartedAt, &completed, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	if completed.Valid {
		s.CompletedAt = &completed.Time
	}
	return s, nil
}

func (r *sessionRepository) InsertSession(ctx context.Context, s models.PracticeSession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: public_id=%s, shape=%s", s.PublicID, s.Shape)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO practice_sessions (public_id, lesson_id, shape, total_rounds, correct_rounds, experience, accuracy, max_streak, started_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.PublicID, s.LessonID, s.Shape, s.TotalRounds, s.CorrectRounds, s.Experience, s.Accuracy, s.MaxStreak, s.StartedAt, s.CompletedAt)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) UpdateSession(ctx context.Context, s models.PracticeSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%d, correct=%d/%d", s.ID, s.CorrectRounds, s.TotalRounds)

	_, err := r.db.ExecContext(ctx, `
UPDATE practice_sessions
SET correct_rounds = ?, experience = ?, accuracy = ?, max_streak = ?, completed_at = ?
WHERE id = ?
`, s.CorrectRounds, s.Experience, s.Accuracy, s.MaxStreak, s.CompletedAt, s.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

func (r *sessionRepository) GetSessionByPublicID(ctx context.Context, publicID string) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM practice_sessions WHERE public_id = ?`, publicID)
	s, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: public_id=%s", publicID)
			return nil, nil
		}
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query := sqlBuilder.Select(
		"id", "public_id", "lesson_id", "shape", "total_rounds", "correct_rounds",
		"experience", "accuracy", "max_streak", "started_at", "completed_at", "created_at",
	).From("practice_sessions")

	if filter.LessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	if filter.Shape != "" {
		query = query.Where(squirrel.Eq{"shape": filter.Shape})
	}
	query = query.OrderBy("started_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
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
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PracticeSession
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) InsertAttempt(ctx context.Context, a models.PracticeAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting attempt: session_id=%d, word_id=%d, correct=%v", a.SessionID, a.WordID, a.WasCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO practice_attempts (session_id, word_id, round_index, input, was_correct, confidence, time_ms, experience)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.SessionID, a.WordID, a.RoundIndex, a.Input, a.WasCorrect, a.Confidence, a.TimeMs, a.Experience)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sessionRepository) AttemptsForSession(ctx context.Context, sessionID int64) ([]models.PracticeAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, word_id, round_index, input, was_correct, confidence, time_ms, experience, created_at
FROM practice_attempts
WHERE session_id = ?
ORDER BY round_index ASC
`, sessionID)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.PracticeAttempt
	for rows.Next() {
		var a models.PracticeAttempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.WordID, &a.RoundIndex, &a.Input,
			&a.WasCorrect, &a.Confidence, &a.TimeMs, &a.Experience, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *sessionRepository) ShapeStats(ctx context.Context) ([]models.ShapeStat, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT shape,
       COUNT(*) AS sessions,
       COALESCE(SUM(total_rounds), 0) AS total_rounds,
       COALESCE(SUM(correct_rounds), 0) AS total_correct
FROM practice_sessions
WHERE completed_at IS NOT NULL
GROUP BY shape
ORDER BY shape ASC
`)
	if err != nil {
		log.Error("failed to query shape stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.ShapeStat
	for rows.Next() {
		var s models.ShapeStat
		if err := rows.Scan(&s.Shape, &s.Sessions, &s.TotalRounds, &s.TotalCorrect); err != nil {
			return nil, err
		}
		if s.TotalRounds > 0 {
			s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalRounds) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *sessionRepository) Totals(ctx context.Context, lessonID int64) (*models.SessionTotals, error) {
	query := sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(total_rounds), 0)",
		"COALESCE(SUM(correct_rounds), 0)",
		"COALESCE(SUM(experience), 0)",
	).From("practice_sessions").Where("completed_at IS NOT NULL")
	if lessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": lessonID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t models.SessionTotals
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&t.Sessions, &t.TotalRounds, &t.TotalCorrect, &t.Experience)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
