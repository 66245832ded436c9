package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/yeonsu/vocaflash/internal/engine"
	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
	"github.com/yeonsu/vocaflash/internal/srs"
)

// StartOptions are the request parameters for a new practice session.
type StartOptions struct {
	LessonID int64
	Shape    string
	Count    int // rounds wanted, 0 = learner's configured default
}

// SubmitResult is the graded outcome of one answer, plus the session-level
// aggregates once the final round completes it.
type SubmitResult struct {
	Outcome   engine.Outcome `json:"outcome"`
	Completed bool           `json:"completed"`
	Stats     *engine.Stats  `json:"stats,omitempty"` // set when Completed
}

// PracticeService owns the live practice sessions. Sessions live in memory
// keyed by their public id; the store only sees the summary row at start,
// one attempt row per answer, and the final aggregates at completion.
type PracticeService interface {
	Start(ctx context.Context, opts StartOptions) (*engine.Session, error)
	Get(ctx context.Context, publicID string) (*engine.Session, error)
	Submit(ctx context.Context, publicID string, answer engine.Answer) (*SubmitResult, error)
	Stats(ctx context.Context, publicID string) (*engine.Stats, error)
	Abandon(ctx context.Context, publicID string) error
}

type liveSession struct {
	session *engine.Session
	rowID   int64
}

type practiceService struct {
	sessions repository.SessionRepository
	words    repository.WordRepository
	settings repository.SettingsRepository
	wordSvc  WordService

	engine *engine.Engine
	rng    *rand.Rand
	now    func() time.Time

	mu   sync.Mutex
	live map[string]*liveSession
}

// NewPracticeService creates a new PracticeService. A nil rng or now falls
// back to the global source and wall clock; tests inject seeded ones.
func NewPracticeService(
	sessions repository.SessionRepository,
	words repository.WordRepository,
	settings repository.SettingsRepository,
	wordSvc WordService,
	rng *rand.Rand,
	now func() time.Time,
) PracticeService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &practiceService{
		sessions: sessions,
		words:    words,
		settings: settings,
		wordSvc:  wordSvc,
		engine:   engine.New(rng, now),
		rng:      rng,
		now:      now,
		live:     make(map[string]*liveSession),
	}
}

func (s *practiceService) Start(ctx context.Context, opts StartOptions) (*engine.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting practice: lesson_id=%d, shape=%s, count=%d", opts.LessonID, opts.Shape, opts.Count)

	if !engine.ValidShape(opts.Shape) {
		return nil, errors.NewValidationError("shape", "must be 'choice', 'free-text', 'sequence' or 'audio'")
	}

	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	count := opts.Count
	if count <= 0 {
		count = prefs.QuestionsPerSession
	}

	words, err := s.words.List(ctx, models.WordFilter{LessonID: opts.LessonID})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	pool := srs.BuildPool(words, count, s.now(), s.rng)
	session, err := s.engine.Build(pool, engine.Shape(opts.Shape), engine.BuildOptions{
		LessonID:  opts.LessonID,
		Count:     count,
		Direction: prefs.Direction,
		Fuzzy:     prefs.FuzzyMatchEnabled,
		TimeLimit: time.Duration(prefs.TimeLimitSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	rowID, err := s.sessions.InsertSession(ctx, models.PracticeSession{
		PublicID:    session.ID.String(),
		LessonID:    opts.LessonID,
		Shape:       opts.Shape,
		TotalRounds: len(session.Rounds),
		StartedAt:   session.StartedAt,
	})
	if err != nil {
		log.Error("failed to persist session summary: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.live[session.ID.String()] = &liveSession{session: session, rowID: rowID}
	s.mu.Unlock()

	log.Info("practice started: id=%s, shape=%s, rounds=%d", session.ID, opts.Shape, len(session.Rounds))
	return session, nil
}

func (s *practiceService) Get(ctx context.Context, publicID string) (*engine.Session, error) {
	live, err := s.lookup(publicID)
	if err != nil {
		return nil, err
	}
	return live.session, nil
}

func (s *practiceService) Submit(ctx context.Context, publicID string, answer engine.Answer) (*SubmitResult, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.live[publicID]
	if !ok {
		return nil, errors.NewNotFoundError("practice session", publicID)
	}
	session := live.session

	round := session.Current()
	if round == nil {
		return nil, errors.NewInvalidTransitionError("submit to", string(session.Status))
	}
	wordID := round.Word.ID

	outcome, err := s.engine.Submit(session, answer)
	if err != nil {
		return nil, err
	}

	// Mastery write-back. A scheduling failure does not undo the graded
	// round; the answer already counted.
	if _, err := s.wordSvc.ApplyReview(ctx, wordID, outcome.Correct, outcome.ElapsedMs); err != nil {
		log.Warn("failed to apply review to word %d: %v", wordID, err)
	}

	if _, err := s.sessions.InsertAttempt(ctx, models.PracticeAttempt{
		SessionID:  live.rowID,
		WordID:     wordID,
		RoundIndex: outcome.RoundIndex,
		Input:      outcome.Input,
		WasCorrect: outcome.Correct,
		Confidence: outcome.Confidence,
		TimeMs:     outcome.ElapsedMs,
		Experience: outcome.Experience,
	}); err != nil {
		log.Warn("failed to persist attempt: %v", err)
	}

	result := &SubmitResult{Outcome: outcome}
	if session.Status == engine.StatusCompleted {
		stats := s.engine.Stats(session)
		result.Completed = true
		result.Stats = &stats

		if err := s.finish(ctx, live, stats); err != nil {
			log.Error("failed to persist completed session: %v", err)
		}
		delete(s.live, publicID)
		log.Info("practice completed: id=%s, correct=%d/%d", publicID, stats.CorrectCount, len(session.Rounds))
	}
	return result, nil
}

func (s *practiceService) Stats(ctx context.Context, publicID string) (*engine.Stats, error) {
	live, err := s.lookup(publicID)
	if err != nil {
		return nil, err
	}
	stats := s.engine.Stats(live.session)
	return &stats, nil
}

func (s *practiceService) Abandon(ctx context.Context, publicID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.live[publicID]
	if !ok {
		return errors.NewNotFoundError("practice session", publicID)
	}

	// Partial counts are kept; the missing completion stamp marks the row
	// as abandoned and excludes it from aggregates.
	stats := s.engine.Stats(live.session)
	if err := s.sessions.UpdateSession(ctx, models.PracticeSession{
		ID:            live.rowID,
		CorrectRounds: stats.CorrectCount,
		Experience:    stats.TotalExperience,
		Accuracy:      stats.Accuracy,
		MaxStreak:     stats.MaxStreak,
	}); err != nil {
		log.Warn("failed to persist abandoned session: %v", err)
	}

	delete(s.live, publicID)
	log.Info("practice abandoned: id=%s", publicID)
	return nil
}

func (s *practiceService) lookup(publicID string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.live[publicID]
	if !ok {
		return nil, errors.NewNotFoundError("practice session", publicID)
	}
	return live, nil
}

func (s *practiceService) finish(ctx context.Context, live *liveSession, stats engine.Stats) error {
	completed := live.session.CompletedAt
	return s.sessions.UpdateSession(ctx, models.PracticeSession{
		ID:            live.rowID,
		CorrectRounds: stats.CorrectCount,
		Experience:    stats.TotalExperience,
		Accuracy:      stats.Accuracy,
		MaxStreak:     stats.MaxStreak,
		CompletedAt:   &completed,
	})
}
