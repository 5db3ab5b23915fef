// Package exam runs a single timed multiple-choice exam: it shuffles the
// questions, records answers, tracks navigation, counts down and grades the
// submission.
package exam

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examportal/internal/catalog"
)

// Options tune how a session is started.
type Options struct {
	// Rand drives the question shuffle. Nil seeds a fresh PCG source.
	Rand *rand.Rand

	// Now is the clock used for start and completion times.
	Now func() time.Time

	// ID overrides the generated session ID.
	ID string
}

// Session is one attempt at an exam. All methods are safe for concurrent use;
// mutations are serialized so the first terminal transition wins.
type Session struct {
	mu sync.Mutex

	id     string
	config catalog.ExamConfig

	// questions is the shuffled presentation order.
	questions []catalog.Question

	// position maps a question ID to its index in questions.
	position map[string]int

	answers   *Ledger
	marked    map[string]bool
	current   int
	remaining int
	startedAt time.Time
	state     State

	// autoSubmitted guards the timeout path so it fires once.
	autoSubmitted bool

	result *Result
	timer  Timer
	now    func() time.Time
}

// Start creates an active session from cfg.
func Start(cfg catalog.ExamConfig, opts Options) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, fmt.Errorf("%w: %q has no questions", ErrInvalidConfig, cfg.ID)
	}
	if cfg.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %q has duration %d", ErrInvalidConfig, cfg.ID, cfg.DurationMinutes)
	}

	r := opts.Rand
	if r == nil {
		r = newRand()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	id := opts.ID
	if id == "" {
		id = uuid.New().String()
	}

	cfg = cfg.Clone()
	questions := make([]catalog.Question, len(cfg.Questions))
	for i, q := range cfg.Questions {
		questions[i] = q.Clone()
	}
	Shuffle(r, questions)

	position := make(map[string]int, len(questions))
	for i, q := range questions {
		position[q.ID] = i
	}

	return &Session{
		id:        id,
		config:    cfg,
		questions: questions,
		position:  position,
		answers:   NewLedger(),
		marked:    make(map[string]bool),
		remaining: cfg.DurationSeconds(),
		startedAt: now(),
		state:     StateActive,
		now:       now,
	}, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Config returns the exam the session runs.
func (s *Session) Config() catalog.ExamConfig { return s.config }

// StartedAt returns the start timestamp.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Questions returns the questions in presentation order.
func (s *Session) Questions() []catalog.Question {
	out := make([]catalog.Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

// Question returns the question at index i.
func (s *Session) Question(i int) (catalog.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return catalog.Question{}, false
	}
	return s.questions[i].Clone(), true
}

// Current returns the question under the cursor and its index.
func (s *Session) Current() (catalog.Question, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.current].Clone(), s.current
}

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// TimeLevel classifies the remaining time.
func (s *Session) TimeLevel() TimeLevel {
	return TimeLevelFor(s.Remaining())
}

// FinalMinute reports whether at most a minute is left.
func (s *Session) FinalMinute() bool {
	return s.Remaining() <= finalMinuteSeconds
}

// SelectAnswer records optionIndex for the question. The last selection wins.
func (s *Session) SelectAnswer(questionID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrSessionClosed
	}
	pos, ok := s.position[questionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !s.questions[pos].ValidOption(optionIndex) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	s.answers.Set(questionID, optionIndex)
	return nil
}

// SelectCurrent answers the question under the cursor.
func (s *Session) SelectCurrent(optionIndex int) error {
	s.mu.Lock()
	id := s.questions[s.current].ID
	s.mu.Unlock()
	return s.SelectAnswer(id, optionIndex)
}

// Answer returns the recorded answer for a question.
func (s *Session) Answer(questionID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Get(questionID)
}

// IsAnswered reports whether the question has an answer.
func (s *Session) IsAnswered(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Has(questionID)
}

// AnsweredCount returns the number of answered questions.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Len()
}

// UnansweredCount returns the number of questions without an answer.
func (s *Session) UnansweredCount() int {
	return len(s.questions) - s.AnsweredCount()
}

// ProgressPercent is the rounded share of answered questions.
func (s *Session) ProgressPercent() int {
	return int(math.Round(100 * float64(s.AnsweredCount()) / float64(len(s.questions))))
}

// ToggleMark flips the review flag on a question and returns the new value.
func (s *Session) ToggleMark(questionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return false, ErrSessionClosed
	}
	if _, ok := s.position[questionID]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if s.marked[questionID] {
		delete(s.marked, questionID)
		return false, nil
	}
	s.marked[questionID] = true
	return true, nil
}

// IsMarked reports whether the question is flagged for review.
func (s *Session) IsMarked(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked[questionID]
}

// QuestionStatus returns the navigator status of the question at index i.
func (s *Session) QuestionStatus(i int) QuestionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.questions) {
		return StatusUnanswered
	}
	id := s.questions[i].ID
	switch {
	case i == s.current:
		return StatusCurrent
	case s.answers.Has(id):
		return StatusAnswered
	case s.marked[id]:
		return StatusMarked
	default:
		return StatusUnanswered
	}
}

// NavigateTo moves the cursor to index.
func (s *Session) NavigateTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	s.current = index
	return nil
}

// Next moves the cursor forward, stopping at the last question.
func (s *Session) Next() int {
	return s.step(1)
}

// Previous moves the cursor back, stopping at the first question.
func (s *Session) Previous() int {
	return s.step(-1)
}

func (s *Session) step(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return s.current
	}
	s.current = max(0, min(len(s.questions)-1, s.current+delta))
	return s.current
}

// Tick advances the countdown by one second. The tick that reaches zero
// submits the session and returns its result; every other tick returns nil.
func (s *Session) Tick() *Result {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 || s.autoSubmitted {
		s.mu.Unlock()
		return nil
	}
	s.autoSubmitted = true
	res, timer := s.submitLocked(true)
	s.mu.Unlock()

	stopTimer(timer)
	return res
}

// Submit grades the session. Only the first terminal transition takes
// effect; later calls return false and a nil result.
func (s *Session) Submit(isAutoSubmit bool) (*Result, bool) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil, false
	}
	if isAutoSubmit {
		s.autoSubmitted = true
	}
	res, timer := s.submitLocked(isAutoSubmit)
	s.mu.Unlock()

	stopTimer(timer)
	return res, true
}

func (s *Session) submitLocked(auto bool) (*Result, Timer) {
	s.state = StateSubmitting
	s.result = grade(s.id, s.config, s.questions, s.answers, s.startedAt, s.now(), auto)
	s.state = StateCompleted
	return s.result, s.detachLocked()
}

// Exit abandons the session. Answers are discarded and no result is
// produced. It reports whether the session was still active.
func (s *Session) Exit() bool {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return false
	}
	s.state = StateExited
	s.answers.Clear()
	clear(s.marked)
	timer := s.detachLocked()
	s.mu.Unlock()

	stopTimer(timer)
	return true
}

// Close releases the session's timer, exiting it first if still active.
func (s *Session) Close() {
	if s.Exit() {
		return
	}
	s.mu.Lock()
	timer := s.detachLocked()
	s.mu.Unlock()
	stopTimer(timer)
}

// Result returns the graded result once the session has completed.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Outcome returns the result, ErrExited for an abandoned session or
// ErrInProgress while it is still running.
func (s *Session) Outcome() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateCompleted:
		return s.result, nil
	case StateExited:
		return nil, ErrExited
	default:
		return nil, ErrInProgress
	}
}

// AttachTimer hands the session a timer to stop on its terminal transition.
// A timer attached to a finished session is stopped immediately.
func (s *Session) AttachTimer(t Timer) {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		stopTimer(t)
		return
	}
	prev := s.timer
	s.timer = t
	s.mu.Unlock()
	if prev != t {
		stopTimer(prev)
	}
}

func (s *Session) detachLocked() Timer {
	t := s.timer
	s.timer = nil
	return t
}
