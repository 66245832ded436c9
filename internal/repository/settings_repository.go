package repository

import (
	"context"

	"github.com/yeonsu/vocaflash/internal/models"
)

// SettingsRepository handles the single-row learner settings
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings models.Settings) error
}
