package repository

import (
	"context"

	"github.com/yeonsu/vocaflash/internal/models"
)

// SessionRepository handles practice session summaries and per-round attempts
type SessionRepository interface {
	InsertSession(ctx context.Context, session models.PracticeSession) (int64, error)
	UpdateSession(ctx context.Context, session models.PracticeSession) error
	GetSessionByPublicID(ctx context.Context, publicID string) (*models.PracticeSession, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error)
	InsertAttempt(ctx context.Context, attempt models.PracticeAttempt) (int64, error)
	AttemptsForSession(ctx context.Context, sessionID int64) ([]models.PracticeAttempt, error)
	ShapeStats(ctx context.Context) ([]models.ShapeStat, error)
	Totals(ctx context.Context, lessonID int64) (*models.SessionTotals, error)
}
