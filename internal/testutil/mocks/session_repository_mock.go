package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yeonsu/vocaflash/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) InsertSession(ctx context.Context, session models.PracticeSession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) UpdateSession(ctx context.Context, session models.PracticeSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSessionByPublicID(ctx context.Context, publicID string) (*models.PracticeSession, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeSession), args.Error(1)
}

func (m *MockSessionRepository) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeSession), args.Error(1)
}

func (m *MockSessionRepository) InsertAttempt(ctx context.Context, attempt models.PracticeAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) AttemptsForSession(ctx context.Context, sessionID int64) ([]models.PracticeAttempt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeAttempt), args.Error(1)
}

func (m *MockSessionRepository) ShapeStats(ctx context.Context) ([]models.ShapeStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShapeStat), args.Error(1)
}

func (m *MockSessionRepository) Totals(ctx context.Context, lessonID int64) (*models.SessionTotals, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionTotals), args.Error(1)
}
