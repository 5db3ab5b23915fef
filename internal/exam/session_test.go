package exam

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/examportal/internal/catalog"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func testExam(n, minutes int) catalog.ExamConfig {
	cfg := catalog.ExamConfig{
		ID:              "test",
		Name:            "Test Exam",
		DurationMinutes: minutes,
		PassingScore:    70,
		Version:         "v1.0.0",
	}
	for i := 0; i < n; i++ {
		cfg.Questions = append(cfg.Questions, catalog.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Topic:         []string{"alpha", "beta", "gamma"}[i%3],
		})
	}
	return cfg
}

func startTest(t *testing.T, cfg catalog.ExamConfig, clock *fakeClock) *Session {
	t.Helper()
	s, err := Start(cfg, Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		Now:  clock.Now,
		ID:   "session-1",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestStart_IsPermutation(t *testing.T) {
	cfg := testExam(9, 30)
	s := startTest(t, cfg, newFakeClock())

	if s.Len() != 9 {
		t.Fatalf("Len = %d, want 9", s.Len())
	}
	seen := make(map[string]bool)
	for _, q := range s.Questions() {
		if seen[q.ID] {
			t.Errorf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range cfg.Questions {
		if !seen[q.ID] {
			t.Errorf("question %s missing after shuffle", q.ID)
		}
	}
	if s.Remaining() != 1800 {
		t.Errorf("Remaining = %d, want 1800", s.Remaining())
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex())
	}
	if s.State() != StateActive {
		t.Errorf("State = %s, want active", s.State())
	}
}

func TestStart_DoesNotMutateConfig(t *testing.T) {
	cfg := testExam(5, 10)
	s := startTest(t, cfg, newFakeClock())
	q, _ := s.Question(0)
	q.Options[0] = "changed"

	for i, orig := range cfg.Questions {
		if orig.ID != fmt.Sprintf("q%d", i+1) || orig.Options[0] != "a" {
			t.Fatalf("config mutated at %d: %+v", i, orig)
		}
	}
	if again, _ := s.Question(0); again.Options[0] != "a" {
		t.Error("session question mutated through returned copy")
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  catalog.ExamConfig
	}{
		{"no questions", catalog.ExamConfig{ID: "x", DurationMinutes: 10}},
		{"zero duration", testExam(3, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Start(tt.cfg, Options{})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSelectAnswer_LastWriteWins(t *testing.T) {
	s := startTest(t, testExam(4, 10), newFakeClock())

	if err := s.SelectAnswer("q1", 2); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.SelectAnswer("q1", 2); err != nil {
		t.Fatalf("SelectAnswer repeat: %v", err)
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount = %d after idempotent select, want 1", s.AnsweredCount())
	}

	if err := s.SelectAnswer("q1", 3); err != nil {
		t.Fatalf("SelectAnswer overwrite: %v", err)
	}
	if got, _ := s.Answer("q1"); got != 3 {
		t.Errorf("Answer(q1) = %d, want 3", got)
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount = %d, want 1", s.AnsweredCount())
	}
}

func TestSelectAnswer_InvalidInput(t *testing.T) {
	s := startTest(t, testExam(4, 10), newFakeClock())
	_ = s.SelectAnswer("q2", 1)

	if err := s.SelectAnswer("nope", 0); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown question err = %v", err)
	}
	if err := s.SelectAnswer("q2", 4); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option 4 err = %v", err)
	}
	if err := s.SelectAnswer("q2", -1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option -1 err = %v", err)
	}
	if got, _ := s.Answer("q2"); got != 1 {
		t.Errorf("answer changed by invalid input: %d", got)
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount = %d, want 1", s.AnsweredCount())
	}
}

func TestSelectCurrent(t *testing.T) {
	s := startTest(t, testExam(3, 10), newFakeClock())
	_ = s.NavigateTo(2)
	q, _ := s.Current()

	if err := s.SelectCurrent(1); err != nil {
		t.Fatalf("SelectCurrent: %v", err)
	}
	if got, ok := s.Answer(q.ID); !ok || got != 1 {
		t.Errorf("Answer(%s) = %d, %v", q.ID, got, ok)
	}
}

func TestNavigation(t *testing.T) {
	s := startTest(t, testExam(5, 10), newFakeClock())

	if got := s.Previous(); got != 0 {
		t.Errorf("Previous at start = %d, want 0", got)
	}
	for i := 0; i < 10; i++ {
		s.Next()
	}
	if got := s.CurrentIndex(); got != 4 {
		t.Errorf("Next clamps to %d, want 4", got)
	}

	if err := s.NavigateTo(2); err != nil {
		t.Fatalf("NavigateTo(2): %v", err)
	}
	if err := s.NavigateTo(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("NavigateTo(5) err = %v", err)
	}
	if err := s.NavigateTo(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("NavigateTo(-1) err = %v", err)
	}
	if got := s.CurrentIndex(); got != 2 {
		t.Errorf("CurrentIndex = %d after rejected navigation, want 2", got)
	}
}

func TestSubmit_SixCorrectTwoWrongOneBlank(t *testing.T) {
	clock := newFakeClock()
	cfg := testExam(9, 30)
	s := startTest(t, cfg, clock)

	for i, q := range cfg.Questions {
		switch {
		case i < 6:
			_ = s.SelectAnswer(q.ID, q.CorrectAnswer)
		case i < 8:
			_ = s.SelectAnswer(q.ID, (q.CorrectAnswer+1)%4)
		}
	}
	clock.Advance(754 * time.Second)

	res, ok := s.Submit(false)
	if !ok || res == nil {
		t.Fatal("Submit did not produce a result")
	}
	if res.Score != 67 || res.Grade.Letter != "D" {
		t.Errorf("score/grade = %d/%s, want 67/D", res.Score, res.Grade.Letter)
	}
	if res.CorrectAnswers != 6 || res.TotalQuestions != 9 || len(res.Details) != 9 {
		t.Errorf("correct=%d total=%d details=%d", res.CorrectAnswers, res.TotalQuestions, len(res.Details))
	}
	if res.IncorrectCount() != 2 || res.UnansweredCount() != 1 {
		t.Errorf("incorrect=%d unanswered=%d", res.IncorrectCount(), res.UnansweredCount())
	}
	if res.TimeSpentSeconds != 754 {
		t.Errorf("TimeSpentSeconds = %d, want 754", res.TimeSpentSeconds)
	}
	if res.IsAutoSubmit || res.Passed {
		t.Errorf("auto=%v passed=%v, want false/false", res.IsAutoSubmit, res.Passed)
	}
	if s.State() != StateCompleted {
		t.Errorf("State = %s, want completed", s.State())
	}

	var blank int
	for _, d := range res.Details {
		if !d.Answered() {
			blank++
			if d.IsCorrect {
				t.Error("unanswered question counted correct")
			}
		}
	}
	if blank != 1 {
		t.Errorf("blank details = %d, want 1", blank)
	}
}

func TestSubmit_SevenOfNine(t *testing.T) {
	cfg := testExam(9, 30)
	s := startTest(t, cfg, newFakeClock())
	for _, q := range cfg.Questions[:7] {
		_ = s.SelectAnswer(q.ID, q.CorrectAnswer)
	}
	res, _ := s.Submit(false)
	if res.Score != 78 || res.Grade.Letter != "C+" || !res.Passed {
		t.Errorf("got %d %s passed=%v, want 78 C+ passed", res.Score, res.Grade.Letter, res.Passed)
	}
}

func TestSubmit_Twice(t *testing.T) {
	s := startTest(t, testExam(3, 10), newFakeClock())
	first, ok := s.Submit(false)
	if !ok {
		t.Fatal("first submit rejected")
	}
	second, ok := s.Submit(false)
	if ok || second != nil {
		t.Errorf("second submit = %v, %v; want nil, false", second, ok)
	}
	if s.Result() != first {
		t.Error("result replaced by second submit")
	}
}

func TestSubmit_AnswersCopied(t *testing.T) {
	s := startTest(t, testExam(3, 10), newFakeClock())
	_ = s.SelectAnswer("q1", 0)
	res, _ := s.Submit(false)
	res.Answers["q1"] = 3
	if got, _ := s.Answer("q1"); got != 0 {
		t.Error("result answers alias the ledger")
	}
}

func TestTick_AutoSubmitsOnce(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, testExam(3, 1), clock)

	var results []*Result
	for i := 0; i < 60; i++ {
		clock.Advance(time.Second)
		if res := s.Tick(); res != nil {
			results = append(results, res)
		}
	}
	if len(results) != 1 {
		t.Fatalf("got %d results after 60 ticks, want 1", len(results))
	}
	if !results[0].IsAutoSubmit {
		t.Error("timeout result not marked auto-submitted")
	}
	if results[0].TimeSpentSeconds != 60 {
		t.Errorf("TimeSpentSeconds = %d, want 60", results[0].TimeSpentSeconds)
	}

	for i := 0; i < 5; i++ {
		if res := s.Tick(); res != nil {
			t.Fatal("tick after auto-submit produced another result")
		}
	}
	if _, ok := s.Submit(false); ok {
		t.Error("manual submit after auto-submit took effect")
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", s.Remaining())
	}
}

func TestTick_BeforeExpiry(t *testing.T) {
	s := startTest(t, testExam(3, 1), newFakeClock())
	for i := 0; i < 59; i++ {
		if res := s.Tick(); res != nil {
			t.Fatalf("early result at tick %d", i+1)
		}
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", s.Remaining())
	}
	if !s.FinalMinute() || s.TimeLevel() != TimeCritical {
		t.Error("expected final minute at critical level")
	}
}

func TestExit(t *testing.T) {
	s := startTest(t, testExam(3, 10), newFakeClock())
	_ = s.SelectAnswer("q1", 1)

	if !s.Exit() {
		t.Fatal("Exit on active session returned false")
	}
	if s.Exit() {
		t.Error("second Exit returned true")
	}
	if err := s.SelectAnswer("q2", 1); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("select after exit err = %v", err)
	}
	if _, ok := s.Submit(false); ok {
		t.Error("submit after exit took effect")
	}
	if res := s.Tick(); res != nil {
		t.Error("tick after exit produced a result")
	}
	if s.AnsweredCount() != 0 {
		t.Errorf("ledger not discarded: %d answers", s.AnsweredCount())
	}
	if _, err := s.Outcome(); !errors.Is(err, ErrExited) {
		t.Errorf("Outcome err = %v, want ErrExited", err)
	}
}

func TestOutcome(t *testing.T) {
	s := startTest(t, testExam(2, 10), newFakeClock())
	if _, err := s.Outcome(); !errors.Is(err, ErrInProgress) {
		t.Errorf("Outcome before submit err = %v", err)
	}
	want, _ := s.Submit(false)
	got, err := s.Outcome()
	if err != nil || got != want {
		t.Errorf("Outcome = %v, %v", got, err)
	}
	if s.Exit() {
		t.Error("Exit after submit took effect")
	}
}

func TestMarkAndStatus(t *testing.T) {
	s := startTest(t, testExam(4, 10), newFakeClock())
	q1, _ := s.Question(1)
	q2, _ := s.Question(2)

	marked, err := s.ToggleMark(q2.ID)
	if err != nil || !marked {
		t.Fatalf("ToggleMark = %v, %v", marked, err)
	}
	_ = s.SelectAnswer(q1.ID, 0)

	want := []QuestionStatus{StatusCurrent, StatusAnswered, StatusMarked, StatusUnanswered}
	for i, w := range want {
		if got := s.QuestionStatus(i); got != w {
			t.Errorf("QuestionStatus(%d) = %s, want %s", i, got, w)
		}
	}

	if marked, _ := s.ToggleMark(q2.ID); marked {
		t.Error("second toggle should clear the mark")
	}
	if _, err := s.ToggleMark("nope"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("ToggleMark unknown err = %v", err)
	}
}

func TestProgressPercent(t *testing.T) {
	s := startTest(t, testExam(3, 10), newFakeClock())
	_ = s.SelectAnswer("q1", 0)
	if got := s.ProgressPercent(); got != 33 {
		t.Errorf("ProgressPercent = %d, want 33", got)
	}
	if got := s.UnansweredCount(); got != 2 {
		t.Errorf("UnansweredCount = %d, want 2", got)
	}
}

func TestTimeLevelFor(t *testing.T) {
	tests := []struct {
		remaining int
		want      TimeLevel
	}{
		{1800, TimeNormal},
		{600, TimeNormal},
		{599, TimeWarning},
		{300, TimeWarning},
		{299, TimeCritical},
		{0, TimeCritical},
	}
	for _, tt := range tests {
		if got := TimeLevelFor(tt.remaining); got != tt.want {
			t.Errorf("TimeLevelFor(%d) = %d, want %d", tt.remaining, got, tt.want)
		}
	}
}

func TestConcurrentSubmit(t *testing.T) {
	s := startTest(t, testExam(5, 10), newFakeClock())

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(auto bool) {
			defer wg.Done()
			if _, ok := s.Submit(auto); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i%2 == 0)
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("%d submits won, want 1", wins)
	}
}
