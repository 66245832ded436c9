// Package srs schedules word reviews on a fixed escalating-interval table.
//
// This is deliberately not an SM-2 grade algorithm: the mastery level indexes
// directly into Intervals, a miss always short-cycles to the next day, and
// there are no ease factors to tune.
package srs

import (
	"math/rand"
	"time"

	"github.com/yeonsu/vocaflash/internal/models"
)

// Intervals is the ascending review schedule in days, indexed by mastery level.
var Intervals = []int{1, 3, 7, 14, 30, 60, 120, 240}

// Experience rewards.
const (
	BaseExperience  = 10 // per correct answer
	LevelBonus      = 2  // per mastery level reached
	SpeedBonus      = 5  // answered under FastAnswerMs
	EffortCredit    = 2  // flat credit for a wrong answer
	FastAnswerMs    = 5000
	failIntervalDay = 1 // a miss always comes back tomorrow
)

// Advance applies one review outcome to a word and returns the updated copy.
// The caller supplies now so scheduling stays pure and testable. Level is
// clamped to [0, models.MaxLevel]; the due date produced is always after now.
func Advance(word models.Word, wasCorrect bool, elapsedMs int64, now time.Time) models.Word {
	if wasCorrect {
		if word.Level < models.MaxLevel {
			word.Level++
		}
		word.CorrectStreak++

		gain := BaseExperience + word.Level*LevelBonus
		if elapsedMs > 0 && elapsedMs < FastAnswerMs {
			gain += SpeedBonus
		}
		word.Experience += gain
		word.DueAt = now.AddDate(0, 0, intervalDays(word.Level))
	} else {
		if word.Level > 0 {
			word.Level--
		}
		word.CorrectStreak = 0
		word.Experience += EffortCredit
		word.DueAt = now.AddDate(0, 0, failIntervalDay)
	}

	word.ReviewCount++
	reviewed := now
	word.LastReviewedAt = &reviewed
	return word
}

func intervalDays(level int) int {
	if level >= len(Intervals) {
		level = len(Intervals) - 1
	}
	if level < 0 {
		level = 0
	}
	return Intervals[level]
}

// Due returns the words whose due date has passed as of the given time.
func Due(words []models.Word, asOf time.Time) []models.Word {
	var due []models.Word
	for _, w := range words {
		if !w.DueAt.After(asOf) {
			due = append(due, w)
		}
	}
	return due
}

// Pool proportions for BuildPool.
const (
	duePoolShare = 0.6 // majority of a session goes to overdue words
)

// BuildPool assembles up to size words for a session, preferring overdue
// words (roughly 60/40 due/fresh, capped by availability). Both halves are
// drawn in random order from the injected source so sessions vary.
func BuildPool(words []models.Word, size int, asOf time.Time, rng *rand.Rand) []models.Word {
	if size <= 0 || len(words) == 0 {
		return nil
	}
	if size > len(words) {
		size = len(words)
	}

	var due, fresh []models.Word
	for _, w := range words {
		if !w.DueAt.After(asOf) {
			due = append(due, w)
		} else {
			fresh = append(fresh, w)
		}
	}
	shuffle(due, rng)
	shuffle(fresh, rng)

	wantDue := int(float64(size)*duePoolShare + 0.5)
	if wantDue > len(due) {
		wantDue = len(due)
	}

	pool := append([]models.Word{}, due[:wantDue]...)
	for _, w := range fresh {
		if len(pool) == size {
			break
		}
		pool = append(pool, w)
	}
	// Top up from remaining due words when fresh ones run out.
	for _, w := range due[wantDue:] {
		if len(pool) == size {
			break
		}
		pool = append(pool, w)
	}
	return pool
}

func shuffle(words []models.Word, rng *rand.Rand) {
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
