package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yeonsu/vocaflash/internal/db"
	"github.com/yeonsu/vocaflash/internal/engine"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
	"github.com/yeonsu/vocaflash/internal/repository/sqlite"
	"github.com/yeonsu/vocaflash/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db    *db.DB
	repo  repository.SessionRepository
	words repository.WordRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db.DB)
	s.words = sqlite.NewWordRepository(s.db.DB)
}

func (s *SessionRepositorySuite) setupLessonWithWord() (int64, int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO lessons (name) VALUES (?)`, "Basics")
	s.Require().NoError(err)
	lessonID, err := res.LastInsertId()
	s.Require().NoError(err)

	wordID, err := s.words.Insert(ctx, models.Word{LessonID: lessonID, Term: "사과", Translation: "apple"})
	s.Require().NoError(err)
	return lessonID, wordID
}

func (s *SessionRepositorySuite) TestInsertAndGetByPublicID() {
	ctx := context.Background()
	lessonID, _ := s.setupLessonWithWord()

	started := time.Now().UTC().Truncate(time.Second)
	id, err := s.repo.InsertSession(ctx, models.PracticeSession{
		PublicID:    "abc-123",
		LessonID:    lessonID,
		Shape:       string(engine.ShapeChoice),
		TotalRounds: 10,
		StartedAt:   started,
	})
	s.Require().NoError(err)
	s.Require().NotZero(id)

	session, err := s.repo.GetSessionByPublicID(ctx, "abc-123")
	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Equal(id, session.ID)
	s.Equal(string(engine.ShapeChoice), session.Shape)
	s.Equal(10, session.TotalRounds)
	s.Nil(session.CompletedAt)
}

func (s *SessionRepositorySuite) TestGetByPublicIDNotFound() {
	session, err := s.repo.GetSessionByPublicID(context.Background(), "missing")
	s.Require().NoError(err)
	s.Nil(session)
}

func (s *SessionRepositorySuite) TestUpdateSessionCompletion() {
	ctx := context.Background()
	lessonID, _ := s.setupLessonWithWord()

	id, err := s.repo.InsertSession(ctx, models.PracticeSession{
		PublicID:    "run-1",
		LessonID:    lessonID,
		Shape:       string(engine.ShapeFreeText),
		TotalRounds: 5,
		StartedAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)

	completed := time.Now().UTC().Truncate(time.Second)
	err = s.repo.UpdateSession(ctx, models.PracticeSession{
		ID:            id,
		CorrectRounds: 4,
		Experience:    60,
		Accuracy:      80,
		MaxStreak:     3,
		CompletedAt:   &completed,
	})
	s.Require().NoError(err)

	session, err := s.repo.GetSessionByPublicID(ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(4, session.CorrectRounds)
	s.Equal(60, session.Experience)
	s.InDelta(80, session.Accuracy, 0.001)
	s.Equal(3, session.MaxStreak)
	s.Require().NotNil(session.CompletedAt)
}

func (s *SessionRepositorySuite) TestAttempts() {
	ctx := context.Background()
	lessonID, wordID := s.setupLessonWithWord()

	sessionID, err := s.repo.InsertSession(ctx, models.PracticeSession{
		PublicID:    "run-2",
		LessonID:    lessonID,
		Shape:       string(engine.ShapeChoice),
		TotalRounds: 2,
		StartedAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)

	_, err = s.repo.InsertAttempt(ctx, models.PracticeAttempt{
		SessionID:  sessionID,
		WordID:     wordID,
		RoundIndex: 1,
		Input:      "apple",
		WasCorrect: true,
		Confidence: 1,
		TimeMs:     2300,
		Experience: 15,
	})
	s.Require().NoError(err)
	_, err = s.repo.InsertAttempt(ctx, models.PracticeAttempt{
		SessionID:  sessionID,
		WordID:     wordID,
		RoundIndex: 0,
		Input:      "aple",
		WasCorrect: true,
		Confidence: 0.8,
		TimeMs:     4100,
		Experience: 10,
	})
	s.Require().NoError(err)

	attempts, err := s.repo.AttemptsForSession(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.Equal(0, attempts[0].RoundIndex)
	s.Equal("aple", attempts[0].Input)
	s.Equal(1, attempts[1].RoundIndex)
	s.InDelta(0.8, attempts[0].Confidence, 0.001)
}

func (s *SessionRepositorySuite) TestListSessionsFilters() {
	ctx := context.Background()
	lessonID, _ := s.setupLessonWithWord()

	now := time.Now().UTC()
	for i, shape := range []string{string(engine.ShapeChoice), string(engine.ShapeFreeText), string(engine.ShapeChoice)} {
		_, err := s.repo.InsertSession(ctx, models.PracticeSession{
			PublicID:    shape + string(rune('a'+i)),
			LessonID:    lessonID,
			Shape:       shape,
			TotalRounds: 5,
			StartedAt:   now.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	sessions, err := s.repo.ListSessions(ctx, models.SessionFilter{LessonID: lessonID, Shape: string(engine.ShapeChoice)})
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	// Newest first
	s.True(sessions[0].StartedAt.After(sessions[1].StartedAt))

	limited, err := s.repo.ListSessions(ctx, models.SessionFilter{Limit: 1})
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *SessionRepositorySuite) TestShapeStatsAndTotals() {
	ctx := context.Background()
	lessonID, _ := s.setupLessonWithWord()

	now := time.Now().UTC()
	insert := func(publicID, shape string, total, correct, xp int, done bool) {
		session := models.PracticeSession{
			PublicID:      publicID,
			LessonID:      lessonID,
			Shape:         shape,
			TotalRounds:   total,
			CorrectRounds: correct,
			Experience:    xp,
			StartedAt:     now,
		}
		if done {
			session.CompletedAt = &now
		}
		_, err := s.repo.InsertSession(ctx, session)
		s.Require().NoError(err)
	}

	insert("s1", string(engine.ShapeChoice), 10, 8, 90, true)
	insert("s2", string(engine.ShapeChoice), 10, 6, 70, true)
	insert("s3", string(engine.ShapeFreeText), 5, 5, 75, true)
	insert("s4", string(engine.ShapeChoice), 10, 0, 0, false) // abandoned, excluded

	stats, err := s.repo.ShapeStats(ctx)
	s.Require().NoError(err)
	s.Require().Len(stats, 2)
	s.Equal(string(engine.ShapeChoice), stats[0].Shape)
	s.Equal(2, stats[0].Sessions)
	s.Equal(20, stats[0].TotalRounds)
	s.Equal(14, stats[0].TotalCorrect)
	s.InDelta(70, stats[0].Accuracy, 0.001)

	totals, err := s.repo.Totals(ctx, lessonID)
	s.Require().NoError(err)
	s.Equal(3, totals.Sessions)
	s.Equal(25, totals.TotalRounds)
	s.Equal(19, totals.TotalCorrect)
	s.Equal(235, totals.Experience)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
