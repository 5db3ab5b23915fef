package exam

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examportal/internal/catalog"
	engine "github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/screens/results"
	"github.com/abhisek/examportal/internal/user"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testConfig(n, minutes int) catalog.ExamConfig {
	cfg := catalog.ExamConfig{
		ID:              "java",
		Name:            "Core Java Assessment",
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
			Topic:         "basics",
		})
	}
	return cfg
}

func testSession() *screen.Session {
	return &screen.Session{
		Deps: &screen.Deps{T: i18n.English()},
		User: user.User{ID: "u1", Name: "Ada"},
	}
}

func newTestScreen(t *testing.T, n, minutes int) *ExamScreen {
	t.Helper()
	s := New(testSession(), testConfig(n, minutes), engine.Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		ID:   "session-1",
	})
	if s.Session() == nil {
		t.Fatalf("session not started: %s", s.errMsg)
	}
	return s
}

// runCmd executes cmd and returns its message, or nil for a nil command.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestExamScreen_NumberKeysAnswer(t *testing.T) {
	s := newTestScreen(t, 3, 5)
	q, _ := s.Session().Current()

	s.Update(keyPress('2'))
	if idx, ok := s.Session().Answer(q.ID); !ok || idx != 1 {
		t.Fatalf("Answer = %d, %v; want 1, true", idx, ok)
	}

	s.Update(keyPress('4'))
	if idx, _ := s.Session().Answer(q.ID); idx != 3 {
		t.Errorf("last write should win, got %d", idx)
	}
	if s.cursor != 3 {
		t.Errorf("cursor = %d, want 3", s.cursor)
	}
}

func TestExamScreen_ArrowNavigationIsClamped(t *testing.T) {
	s := newTestScreen(t, 3, 5)

	s.Update(specialKey(tea.KeyLeft))
	if got := s.Session().CurrentIndex(); got != 0 {
		t.Errorf("left at first question: index %d, want 0", got)
	}

	for range 5 {
		s.Update(specialKey(tea.KeyRight))
	}
	if got := s.Session().CurrentIndex(); got != 2 {
		t.Errorf("right past the end: index %d, want 2", got)
	}

	s.Update(specialKey(tea.KeyLeft))
	if got := s.Session().CurrentIndex(); got != 1 {
		t.Errorf("index %d, want 1", got)
	}
}

func TestExamScreen_CursorFollowsRecordedAnswer(t *testing.T) {
	s := newTestScreen(t, 3, 5)
	s.Update(keyPress('3'))
	s.Update(specialKey(tea.KeyRight))
	if s.cursor != 0 {
		t.Errorf("unanswered question cursor = %d, want 0", s.cursor)
	}
	s.Update(specialKey(tea.KeyLeft))
	if s.cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.cursor)
	}
}

func TestExamScreen_EnterSelectsCursor(t *testing.T) {
	s := newTestScreen(t, 2, 5)
	q, _ := s.Session().Current()

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if idx, ok := s.Session().Answer(q.ID); !ok || idx != 2 {
		t.Errorf("Answer = %d, %v; want 2, true", idx, ok)
	}
}

func TestExamScreen_JumpToUnanswered(t *testing.T) {
	s := newTestScreen(t, 4, 5)
	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyRight))
	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyLeft))

	s.Update(keyPress('u'))
	if got := s.Session().CurrentIndex(); got != 2 {
		t.Errorf("index = %d, want 2", got)
	}
}

func TestExamScreen_MarkToggles(t *testing.T) {
	s := newTestScreen(t, 2, 5)
	q, _ := s.Session().Current()

	s.Update(keyPress('m'))
	if !s.Session().IsMarked(q.ID) {
		t.Fatal("expected question to be marked")
	}
	s.Update(keyPress('m'))
	if s.Session().IsMarked(q.ID) {
		t.Error("expected mark to be cleared")
	}
}

func TestExamScreen_TickCountsDown(t *testing.T) {
	s := newTestScreen(t, 2, 1)

	_, cmd := s.Update(tickMsg{SessionID: "session-1"})
	if got := s.Session().Remaining(); got != 59 {
		t.Errorf("Remaining = %d, want 59", got)
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
}

func TestExamScreen_StaleTickDropped(t *testing.T) {
	s := newTestScreen(t, 2, 1)

	_, cmd := s.Update(tickMsg{SessionID: "other"})
	if cmd != nil {
		t.Error("tick for another session should not reschedule")
	}
	if got := s.Session().Remaining(); got != 60 {
		t.Errorf("Remaining = %d, want 60", got)
	}
}

func TestExamScreen_AutoSubmitOnce(t *testing.T) {
	s := newTestScreen(t, 3, 1)
	s.Update(keyPress('1'))

	var last tea.Cmd
	for range 60 {
		_, last = s.Update(tickMsg{SessionID: "session-1"})
	}

	msg, ok := runCmd(last).(recordedMsg)
	if !ok {
		t.Fatalf("expected recordedMsg after the final tick, got %T", runCmd(last))
	}
	if !msg.Result.IsAutoSubmit {
		t.Error("result should be marked auto-submitted")
	}
	if !s.timer.Stopped() {
		t.Error("timer should be stopped")
	}

	// A tick already in flight when time ran out is dropped.
	if _, cmd := s.Update(tickMsg{SessionID: "session-1"}); cmd != nil {
		t.Error("tick after auto-submit should be dropped")
	}
	// So is a manual submit.
	s.Update(keyPress('s'))
	if _, cmd := s.Update(keyPress('y')); cmd != nil {
		t.Error("submit after auto-submit should be a no-op")
	}
}

func TestExamScreen_SubmitDialog(t *testing.T) {
	s := newTestScreen(t, 3, 5)
	s.Update(keyPress('1'))

	s.Update(keyPress('s'))
	if s.dialog != dialogSubmit {
		t.Fatal("expected submit dialog")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Submit your exam?") {
		t.Errorf("dialog title missing:\n%s", view)
	}
	if !strings.Contains(view, "2 unanswered questions") {
		t.Errorf("unanswered warning missing:\n%s", view)
	}

	s.Update(keyPress('n'))
	if s.dialog != dialogNone {
		t.Fatal("n should close the dialog")
	}
	if s.Session().State() != engine.StateActive {
		t.Fatal("cancel must not submit")
	}

	s.Update(keyPress('s'))
	_, cmd := s.Update(keyPress('y'))
	msg, ok := runCmd(cmd).(recordedMsg)
	if !ok {
		t.Fatalf("expected recordedMsg, got %T", runCmd(cmd))
	}
	if msg.Result.IsAutoSubmit {
		t.Error("manual submit should not be auto")
	}
	if len(msg.Result.Details) != 3 {
		t.Errorf("details = %d, want 3", len(msg.Result.Details))
	}
}

func TestExamScreen_EnterOnFocusedButton(t *testing.T) {
	s := newTestScreen(t, 2, 5)

	// Submit opens with the confirm button focused.
	s.Update(keyPress('s'))
	s.Update(specialKey(tea.KeyRight))
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("enter on the cancel button should not submit")
	}
	if s.dialog != dialogNone {
		t.Error("dialog should be closed")
	}
}

func TestExamScreen_ExitDiscardsSession(t *testing.T) {
	s := newTestScreen(t, 2, 5)
	s.Update(keyPress('1'))

	s.Update(specialKey(tea.KeyEscape))
	if s.dialog != dialogExit {
		t.Fatal("expected exit dialog")
	}
	if !strings.Contains(s.View(100, 30), "Your progress will be lost.") {
		t.Error("exit warning missing")
	}

	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected exit command")
	}
	if _, err := s.Session().Outcome(); !errors.Is(err, engine.ErrExited) {
		t.Errorf("Outcome err = %v, want ErrExited", err)
	}
	if s.Session().AnsweredCount() != 0 {
		t.Error("answers should be discarded")
	}
}

func TestExamScreen_RecordedOpensResults(t *testing.T) {
	s := newTestScreen(t, 2, 5)
	res, _ := s.Session().Submit(false)

	_, cmd := s.Update(recordedMsg{Result: res})
	msg, ok := runCmd(cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", runCmd(cmd))
	}
	if _, ok := msg.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("replacement is %T, want *results.ResultsScreen", msg.Screen)
	}
}

func TestExamScreen_CloseExitsRunningSession(t *testing.T) {
	s := newTestScreen(t, 2, 5)
	s.Close()
	if s.Session().State() != engine.StateExited {
		t.Errorf("State = %v, want exited", s.Session().State())
	}
	if !s.timer.Stopped() {
		t.Error("timer should be stopped")
	}
}

func TestExamScreen_InvalidConfig(t *testing.T) {
	cfg := testConfig(0, 5)
	s := New(testSession(), cfg, engine.Options{})
	if s.Session() != nil {
		t.Fatal("expected no session for an empty exam")
	}
	if s.Init() != nil {
		t.Error("Init should do nothing without a session")
	}
	if !strings.Contains(s.View(80, 24), "invalid exam config") {
		t.Error("error not rendered")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := runCmd(cmd).(router.PopScreenMsg); !ok {
		t.Error("any key should go back")
	}
}

func TestExamScreen_ViewShowsQuestion(t *testing.T) {
	s := newTestScreen(t, 3, 5)
	q, _ := s.Session().Current()

	for _, width := range []int{80, 120} {
		view := s.View(width, 30)
		for _, want := range []string{"Question 1 of 3", q.Text, "05:00"} {
			if !strings.Contains(view, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
	}
}
