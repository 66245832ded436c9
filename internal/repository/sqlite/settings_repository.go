package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	var s models.Settings
	var fuzzy int
	err := r.db.QueryRowContext(ctx, `
SELECT questions_per_session, time_limit_seconds, direction, fuzzy_match_enabled, updated_at
FROM settings WHERE id = 1
`).Scan(&s.QuestionsPerSession, &s.TimeLimitSeconds, &s.Direction, &fuzzy, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// The init migration seeds the row; treat a missing one as defaults.
		log.Warn("settings row missing, returning defaults")
		return &models.Settings{
			QuestionsPerSession: 10,
			TimeLimitSeconds:    15,
			Direction:           models.DirectionTermToTranslation,
			FuzzyMatchEnabled:   true,
		}, nil
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, err
	}
	s.FuzzyMatchEnabled = fuzzy != 0
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("updating settings: questions=%d, direction=%s", s.QuestionsPerSession, s.Direction)

	fuzzy := 0
	if s.FuzzyMatchEnabled {
		fuzzy = 1
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE settings
SET questions_per_session = ?, time_limit_seconds = ?, direction = ?, fuzzy_match_enabled = ?, updated_at = ?
WHERE id = 1
`, s.QuestionsPerSession, s.TimeLimitSeconds, s.Direction, fuzzy, time.Now())
	if err != nil {
		log.Error("failed to update settings: %v", err)
	}
	return err
}
