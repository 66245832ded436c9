package services

import (
	"context"

	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

// SettingsService reads and updates the learner configuration.
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings models.Settings) (*models.Settings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings repository.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return prefs, nil
}

func (s *settingsService) Update(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	log := logger.FromContext(ctx)

	if settings.QuestionsPerSession <= 0 {
		return nil, errors.NewValidationError("questions_per_session", "must be positive")
	}
	if settings.TimeLimitSeconds < 0 {
		return nil, errors.NewValidationError("time_limit_seconds", "cannot be negative")
	}
	switch settings.Direction {
	case models.DirectionTermToTranslation, models.DirectionTranslationToTerm:
	default:
		return nil, errors.NewValidationError("direction", "must be 'term-to-translation' or 'translation-to-term'")
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		log.Error("failed to update settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("settings updated: questions=%d, direction=%s", settings.QuestionsPerSession, settings.Direction)
	return s.settings.Get(ctx)
}
