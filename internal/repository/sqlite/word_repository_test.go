package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yeonsu/vocaflash/internal/db"
	"github.com/yeonsu/vocaflash/internal/models"
	"github.com/yeonsu/vocaflash/internal/repository"
	"github.com/yeonsu/vocaflash/internal/repository/sqlite"
	"github.com/yeonsu/vocaflash/internal/testutil"
)

type WordRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.WordRepository
}

func (s *WordRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWordRepository(s.db.DB)
}

func (s *WordRepositorySuite) setupLesson(name string) int64 {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO lessons (name) VALUES (?)`, name)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *WordRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	lessonID := s.setupLesson("Food")

	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	id, err := s.repo.Insert(ctx, models.Word{
		LessonID:    lessonID,
		Term:        "사과",
		Translation: "apple",
		DueAt:       due,
	})
	s.Require().NoError(err)
	s.Require().NotZero(id)

	word, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(word)
	s.Equal("사과", word.Term)
	s.Equal("apple", word.Translation)
	s.Equal(0, word.Level)
	s.Nil(word.LastReviewedAt)
	s.WithinDuration(due, word.DueAt, time.Second)
}

func (s *WordRepositorySuite) TestGetNotFound() {
	word, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Nil(word)
}

func (s *WordRepositorySuite) TestInsertBatch() {
	ctx := context.Background()
	lessonID := s.setupLesson("Animals")

	words := []models.Word{
		{LessonID: lessonID, Term: "강아지", Translation: "puppy"},
		{LessonID: lessonID, Term: "고양이", Translation: "cat"},
		{LessonID: lessonID, Term: "코끼리", Translation: "elephant"},
	}
	ids, err := s.repo.InsertBatch(ctx, words)
	s.Require().NoError(err)
	s.Len(ids, 3)

	count, err := s.repo.Count(ctx, models.WordFilter{LessonID: lessonID})
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *WordRepositorySuite) TestListDueFilter() {
	ctx := context.Background()
	lessonID := s.setupLesson("Verbs")

	now := time.Now().UTC()
	_, err := s.repo.InsertBatch(ctx, []models.Word{
		{LessonID: lessonID, Term: "가다", Translation: "to go", DueAt: now.Add(-time.Hour)},
		{LessonID: lessonID, Term: "오다", Translation: "to come", DueAt: now.Add(-time.Minute)},
		{LessonID: lessonID, Term: "먹다", Translation: "to eat", DueAt: now.Add(48 * time.Hour)},
	})
	s.Require().NoError(err)

	due, err := s.repo.List(ctx, models.WordFilter{
		LessonID:  lessonID,
		DueBefore: &now,
		OrderBy:   "due_at",
	})
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Equal("가다", due[0].Term)
	s.Equal("오다", due[1].Term)
}

func (s *WordRepositorySuite) TestListMaxLevelAndPagination() {
	ctx := context.Background()
	lessonID := s.setupLesson("Mixed")

	for i := 0; i < 5; i++ {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO words (lesson_id, term, translation, level) VALUES (?, ?, ?, ?)
		`, lessonID, "w", "t", i)
		s.Require().NoError(err)
	}

	maxLevel := 2
	words, err := s.repo.List(ctx, models.WordFilter{LessonID: lessonID, MaxLevel: &maxLevel})
	s.Require().NoError(err)
	s.Len(words, 3)

	page, err := s.repo.List(ctx, models.WordFilter{LessonID: lessonID, Limit: 2, Offset: 4})
	s.Require().NoError(err)
	s.Len(page, 1)
}

func (s *WordRepositorySuite) TestUpdateMastery() {
	ctx := context.Background()
	lessonID := s.setupLesson("Nouns")

	id, err := s.repo.Insert(ctx, models.Word{LessonID: lessonID, Term: "물", Translation: "water"})
	s.Require().NoError(err)

	reviewed := time.Now().UTC().Truncate(time.Second)
	due := reviewed.Add(3 * 24 * time.Hour)
	err = s.repo.UpdateMastery(ctx, models.Word{
		ID:             id,
		Level:          2,
		DueAt:          due,
		ReviewCount:    1,
		CorrectStreak:  1,
		Experience:     17,
		LastReviewedAt: &reviewed,
	})
	s.Require().NoError(err)

	word, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(2, word.Level)
	s.Equal(1, word.ReviewCount)
	s.Equal(1, word.CorrectStreak)
	s.Equal(17, word.Experience)
	s.Require().NotNil(word.LastReviewedAt)
	s.WithinDuration(due, word.DueAt, time.Second)
}

func (s *WordRepositorySuite) TestUpdateDoesNotTouchMastery() {
	ctx := context.Background()
	lessonID := s.setupLesson("Edits")

	id, err := s.repo.Insert(ctx, models.Word{LessonID: lessonID, Term: "책", Translation: "boko", Level: 3})
	s.Require().NoError(err)

	err = s.repo.Update(ctx, models.Word{ID: id, Term: "책", Translation: "book"})
	s.Require().NoError(err)

	word, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("book", word.Translation)
	s.Equal(3, word.Level)
}

func (s *WordRepositorySuite) TestDelete() {
	ctx := context.Background()
	lessonID := s.setupLesson("Gone")

	id, err := s.repo.Insert(ctx, models.Word{LessonID: lessonID, Term: "밥", Translation: "rice"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, id))

	word, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Nil(word)
}

func (s *WordRepositorySuite) TestCountDue() {
	ctx := context.Background()
	lessonA := s.setupLesson("A")
	lessonB := s.setupLesson("B")

	now := time.Now().UTC()
	_, err := s.repo.InsertBatch(ctx, []models.Word{
		{LessonID: lessonA, Term: "하나", Translation: "one", DueAt: now.Add(-time.Hour)},
		{LessonID: lessonA, Term: "둘", Translation: "two", DueAt: now.Add(time.Hour)},
		{LessonID: lessonB, Term: "셋", Translation: "three", DueAt: now.Add(-time.Hour)},
	})
	s.Require().NoError(err)

	count, err := s.repo.CountDue(ctx, lessonA, now)
	s.Require().NoError(err)
	s.Equal(1, count)

	all, err := s.repo.CountDue(ctx, 0, now)
	s.Require().NoError(err)
	s.Equal(2, all)
}

func (s *WordRepositorySuite) TestLevelDistribution() {
	ctx := context.Background()
	lessonID := s.setupLesson("Levels")

	for _, level := range []int{0, 0, 2, 2, 2, 7} {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO words (lesson_id, term, translation, level) VALUES (?, ?, ?, ?)
		`, lessonID, "w", "t", level)
		s.Require().NoError(err)
	}

	dist, err := s.repo.LevelDistribution(ctx, lessonID)
	s.Require().NoError(err)
	s.Require().Len(dist, 3)
	s.Equal(models.LevelCount{Level: 0, Count: 2}, dist[0])
	s.Equal(models.LevelCount{Level: 2, Count: 3}, dist[1])
	s.Equal(models.LevelCount{Level: 7, Count: 1}, dist[2])
}

func TestWordRepositorySuite(t *testing.T) {
	suite.Run(t, new(WordRepositorySuite))
}
