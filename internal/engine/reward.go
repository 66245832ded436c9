package engine

// RewardPolicy computes the experience awarded for one graded round.
// Game modes with different scoring curves supply their own policy instead of
// reimplementing the session machinery.
type RewardPolicy interface {
	Award(correct bool, elapsedMs int64, streak int) int
}

// FlatReward grants a fixed amount per correct answer.
type FlatReward struct {
	PerCorrect int
}

func (r FlatReward) Award(correct bool, _ int64, _ int) int {
	if !correct {
		return 0
	}
	return r.PerCorrect
}

// PacedReward adds streak and speed bonuses on top of a flat amount, for
// time-boxed shapes.
type PacedReward struct {
	PerCorrect  int
	StreakBonus int   // per answer already in the current streak
	SpeedBonus  int   // answered under FastMs
	FastMs      int64
}

func (r PacedReward) Award(correct bool, elapsedMs int64, streak int) int {
	if !correct {
		return 0
	}
	xp := r.PerCorrect + streak*r.StreakBonus
	if elapsedMs > 0 && elapsedMs < r.FastMs {
		xp += r.SpeedBonus
	}
	return xp
}

// defaultReward picks the scoring curve a shape uses unless the caller
// overrides it. Timed sessions get the paced curve.
func defaultReward(shape Shape, timed bool) RewardPolicy {
	if timed {
		return PacedReward{PerCorrect: 10, StreakBonus: 2, SpeedBonus: 5, FastMs: 5000}
	}
	switch shape {
	case ShapeFreeText, ShapeAudio:
		return FlatReward{PerCorrect: 15}
	case ShapeSequence:
		return PacedReward{PerCorrect: 12, StreakBonus: 3, SpeedBonus: 0, FastMs: 0}
	default:
		return FlatReward{PerCorrect: 10}
	}
}
