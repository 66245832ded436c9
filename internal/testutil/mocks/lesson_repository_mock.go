package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yeonsu/vocaflash/internal/models"
)

// MockLessonRepository is a mock implementation of repository.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Get(ctx context.Context, id int64) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) List(ctx context.Context) ([]models.LessonWithCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonWithCounts), args.Error(1)
}

func (m *MockLessonRepository) Insert(ctx context.Context, lesson models.Lesson) (int64, error) {
	args := m.Called(ctx, lesson)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
