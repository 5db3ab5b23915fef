package exam

// State is the lifecycle position of a session.
type State int

const (
	StateActive     State = iota // Accepting answers and ticks
	StateSubmitting              // Result being built
	StateCompleted               // Result available
	StateExited                  // Abandoned, no result
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateExited
}

// QuestionStatus is how a question shows up in the navigator grid.
type QuestionStatus string

const (
	StatusCurrent    QuestionStatus = "current"
	StatusAnswered   QuestionStatus = "answered"
	StatusMarked     QuestionStatus = "marked"
	StatusUnanswered QuestionStatus = "unanswered"
)

// TimeLevel grades how urgent the remaining time is.
type TimeLevel int

const (
	TimeNormal TimeLevel = iota
	TimeWarning
	TimeCritical
)

const (
	warningSeconds     = 600
	criticalSeconds    = 300
	finalMinuteSeconds = 60
)

// TimeLevelFor classifies a remaining time in seconds.
func TimeLevelFor(remaining int) TimeLevel {
	switch {
	case remaining < criticalSeconds:
		return TimeCritical
	case remaining < warningSeconds:
		return TimeWarning
	default:
		return TimeNormal
	}
}
