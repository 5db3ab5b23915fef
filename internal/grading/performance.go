package grading

// Performance is a coarse band used to pick the encouragement message
// shown next to a result.
type Performance string

const (
	PerformanceOutstanding Performance = "outstanding"
	PerformanceGreat       Performance = "great"
	PerformanceGood        Performance = "good"
	PerformanceFair        Performance = "fair"
	PerformanceNeedsReview Performance = "needs_review"
)

// PerformanceFor returns the performance band for a score.
func PerformanceFor(score int) Performance {
	switch {
	case score >= 95:
		return PerformanceOutstanding
	case score >= 85:
		return PerformanceGreat
	case score >= 75:
		return PerformanceGood
	case score >= 65:
		return PerformanceFair
	default:
		return PerformanceNeedsReview
	}
}

// Improvement is the change in score against the previous attempt.
type Improvement struct {
	Previous int
	Delta    int
}

// CompareToPrevious returns the change against the most recent earlier
// attempt. previous is ordered newest first. Nil means there is nothing to
// compare against.
func CompareToPrevious(current int, previous []int) *Improvement {
	if len(previous) == 0 {
		return nil
	}
	return &Improvement{Previous: previous[0], Delta: current - previous[0]}
}
