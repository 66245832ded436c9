package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/yeonsu/vocaflash/internal/distractor"
	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/match"
	"github.com/yeonsu/vocaflash/internal/models"
)

// defaultOptionCount is how many choices a choice round presents, correct
// answer included, when enough distractors exist.
const defaultOptionCount = 4

// Engine builds and drives sessions. The random source and clock are
// injected so sessions are reproducible under test.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates an Engine. A nil rng or now falls back to the global source
// and wall clock.
func New(rng *rand.Rand, now func() time.Time) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// BuildOptions tune session construction.
type BuildOptions struct {
	LessonID    int64
	Count       int // rounds wanted; clamped to pool size, <=0 means whole pool
	Direction   string
	Fuzzy       bool
	OptionCount int           // choices per choice round, default 4
	TimeLimit   time.Duration // per-round deadline, 0 = untimed
	Reward      RewardPolicy  // nil picks the shape default
}

// Build snapshots the pool into a new in-progress session. The pool is
// captured here once; the session never re-reads the store. An empty pool is
// an error: a session needs at least one round to exist.
func (e *Engine) Build(pool []models.Word, shape Shape, opts BuildOptions) (*Session, error) {
	if len(pool) == 0 {
		return nil, errors.NewEmptyPoolError(opts.LessonID)
	}

	count := opts.Count
	if count <= 0 || count > len(pool) {
		count = len(pool)
	}

	snapshot := make([]models.Word, len(pool))
	copy(snapshot, pool)
	e.rng.Shuffle(len(snapshot), func(i, j int) {
		snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
	})
	snapshot = snapshot[:count]

	reward := opts.Reward
	if reward == nil {
		reward = defaultReward(shape, opts.TimeLimit > 0)
	}

	s := &Session{
		ID:        uuid.New(),
		LessonID:  opts.LessonID,
		Shape:     shape,
		Status:    StatusInProgress,
		StartedAt: e.now(),
		alphabet:  answerAlphabet(shape, opts.Direction),
		fuzzy:     opts.Fuzzy,
		reward:    reward,
	}

	answers := answerPool(pool, shape, opts.Direction)
	for i, w := range snapshot {
		s.Rounds = append(s.Rounds, e.buildRound(w, shape, opts, answers, s.Rounds[:i]))
	}
	return s, nil
}

func (e *Engine) buildRound(w models.Word, shape Shape, opts BuildOptions, answers []string, prior []Round) Round {
	prompt, expected := promptAndAnswer(w, opts.Direction)

	r := Round{
		Word:     w,
		Prompt:   prompt,
		Expected: []string{expected},
		Deadline: opts.TimeLimit,
	}

	switch shape {
	case ShapeChoice:
		n := opts.OptionCount
		if n <= 0 {
			n = defaultOptionCount
		}
		picked := distractor.Pick(e.rng, answers, expected, n-1)
		r.Options = distractor.Options(e.rng, expected, picked)
	case ShapeSequence:
		// Memory-chain: each round recalls every answer seen so far, in order.
		for _, p := range prior {
			r.Sequence = append(r.Sequence, p.Expected[0])
		}
		r.Sequence = append(r.Sequence, expected)
	case ShapeAudio:
		// Dictation: the caller plays the term; the learner types what they heard.
		r.Prompt = ""
		r.AudioRef = w.Term
		r.Expected = []string{w.Term}
	}
	return r
}

// Submit grades the current round, records its outcome and advances the
// cursor, completing the session after the final round. Submitting to a
// session that is not in progress is rejected loudly: ignoring it would
// invite double-scoring.
func (e *Engine) Submit(s *Session, ans Answer) (Outcome, error) {
	if s.Status != StatusInProgress {
		return Outcome{}, errors.NewInvalidTransitionError("submit to", string(s.Status))
	}

	round := s.Rounds[s.Position]
	correct, confidence, input := e.grade(s, round, ans)

	xp := s.reward.Award(correct, ans.ElapsedMs, s.streak)
	if correct {
		s.streak++
		if s.streak > s.maxStreak {
			s.maxStreak = s.streak
		}
	} else {
		s.streak = 0
	}

	outcome := Outcome{
		RoundIndex: s.Position,
		Input:      input,
		Correct:    correct,
		Confidence: confidence,
		ElapsedMs:  ans.ElapsedMs,
		Experience: xp,
	}
	s.Outcomes = append(s.Outcomes, outcome)
	s.Position++

	if s.Position == len(s.Rounds) {
		s.Status = StatusCompleted
		s.CompletedAt = e.now()
	}
	return outcome, nil
}

// Stats aggregates a session's outcomes. It never mutates the session and is
// safe to call mid-session for live progress.
func (e *Engine) Stats(s *Session) Stats {
	stats := Stats{MaxStreak: s.maxStreak}
	for _, o := range s.Outcomes {
		if o.Correct {
			stats.CorrectCount++
		} else {
			stats.IncorrectCount++
		}
		stats.TotalExperience += o.Experience
	}
	if n := len(s.Outcomes); n > 0 {
		stats.Accuracy = float64(stats.CorrectCount) / float64(n) * 100
	}

	end := s.CompletedAt
	if end.IsZero() {
		end = e.now()
	}
	stats.ElapsedSeconds = end.Sub(s.StartedAt).Seconds()
	return stats
}

// promptAndAnswer resolves which language form is shown and which is expected.
func promptAndAnswer(w models.Word, direction string) (prompt, answer string) {
	if direction == models.DirectionTranslationToTerm {
		return w.Translation, w.Term
	}
	return w.Term, w.Translation
}

// answerAlphabet picks the matcher alphabet for the expected answer form.
func answerAlphabet(shape Shape, direction string) match.Alphabet {
	if shape == ShapeAudio || direction == models.DirectionTranslationToTerm {
		return match.AlphabetHangul
	}
	return match.AlphabetLatin
}

// answerPool collects every answer form in the pool, for distractor picking.
func answerPool(pool []models.Word, shape Shape, direction string) []string {
	var answers []string
	for _, w := range pool {
		_, a := promptAndAnswer(w, direction)
		if shape == ShapeAudio {
			a = w.Term
		}
		answers = append(answers, a)
	}
	return answers
}
