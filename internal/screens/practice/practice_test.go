package practice

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/i18n"
	builder "github.com/abhisek/examportal/internal/practice"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	examscreen "github.com/abhisek/examportal/internal/screens/exam"
	"github.com/abhisek/examportal/internal/user"
)

func newTestScreen(t *testing.T, withBuilder bool) *PracticeScreen {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	deps := &screen.Deps{Catalog: cat, T: i18n.English()}
	if withBuilder {
		deps.Practice = builder.NewBuilder(cat, nil).WithRand(rand.New(rand.NewPCG(3, 4)))
	}
	return New(&screen.Session{Deps: deps, User: user.User{ID: "u1", Name: "Ada"}})
}

func press(s *PracticeScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// selectTopic moves the topic field to name.
func selectTopic(t *testing.T, s *PracticeScreen, name string) {
	t.Helper()
	s.field = fieldTopic
	for range s.topics {
		if s.settings.Topic == name {
			return
		}
		press(s, tea.KeyRight)
	}
	t.Fatalf("topic %q not in %v", name, s.topics)
}

func TestPracticeScreen_Defaults(t *testing.T) {
	s := newTestScreen(t, true)

	got := s.Settings()
	if got.Mode != builder.ModeQuick || got.Count != 5 || got.Minutes != 5 || got.Topic != "" {
		t.Errorf("settings = %+v, want quick preset over all topics", got)
	}
	if s.topics[0] != "" || len(s.topics) < 2 {
		t.Errorf("topics = %v, want all-topics entry first", s.topics)
	}
}

func TestPracticeScreen_CountLockedOutsideCustom(t *testing.T) {
	s := newTestScreen(t, true)

	for range 10 {
		press(s, tea.KeyDown)
	}
	if s.field != fieldDifficulty {
		t.Errorf("field = %d in quick mode, want %d", s.field, fieldDifficulty)
	}

	// Quick -> timed -> custom.
	s.field = fieldMode
	press(s, tea.KeyRight)
	if got := s.Settings(); got.Mode != builder.ModeTimed || got.Count != 10 || got.Minutes != 15 {
		t.Errorf("timed settings = %+v", got)
	}
	press(s, tea.KeyRight)
	if got := s.Settings(); got.Mode != builder.ModeCustom || got.Count != 10 {
		t.Errorf("custom should keep the previous count, got %+v", got)
	}

	for range 10 {
		press(s, tea.KeyDown)
	}
	if s.field != fieldMinutes {
		t.Errorf("field = %d in custom mode, want %d", s.field, fieldMinutes)
	}
}

func TestPracticeScreen_CountClamped(t *testing.T) {
	s := newTestScreen(t, true)
	s.field = fieldMode
	press(s, tea.KeyLeft) // quick wraps to custom

	s.field = fieldCount
	for range builder.MaxQuestions + 5 {
		press(s, tea.KeyRight)
	}
	if got := s.Settings().Count; got != builder.MaxQuestions {
		t.Errorf("count = %d, want %d", got, builder.MaxQuestions)
	}
	for range builder.MaxQuestions + 5 {
		press(s, tea.KeyLeft)
	}
	if got := s.Settings().Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestPracticeScreen_ModeKeepsTopic(t *testing.T) {
	s := newTestScreen(t, true)
	selectTopic(t, s, "basics")

	s.field = fieldMode
	press(s, tea.KeyRight)
	if got := s.Settings().Topic; got != "basics" {
		t.Errorf("topic = %q after mode change, want basics", got)
	}
}

func TestPracticeScreen_BuildPushesExam(t *testing.T) {
	s := newTestScreen(t, true)
	selectTopic(t, s, "basics")

	cmd := press(s, tea.KeyEnter)
	if !s.building {
		t.Fatal("building not set")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatal("expected a batch with the build command")
	}
	built, ok := batch[0]().(builtMsg)
	if !ok {
		t.Fatal("expected builtMsg")
	}
	if built.Err != nil {
		t.Fatalf("build: %v", built.Err)
	}
	if built.Config.ID != "practice-basics-quick" {
		t.Errorf("exam id = %q", built.Config.ID)
	}

	_, cmd = s.Update(built)
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*examscreen.ExamScreen); !ok {
		t.Errorf("pushed %T, want *exam.ExamScreen", push.Screen)
	}
	if s.building {
		t.Error("building still set")
	}
}

func TestPracticeScreen_NoMatchingQuestions(t *testing.T) {
	s := newTestScreen(t, true)
	s.field = fieldDifficulty
	press(s, tea.KeyLeft) // mixed wraps to advanced

	batch := press(s, tea.KeyEnter)().(tea.BatchMsg)
	s.Update(batch[0]())

	if !strings.Contains(s.View(100, 40), "No questions match") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestPracticeScreen_WithoutBuilder(t *testing.T) {
	s := newTestScreen(t, false)

	if cmd := press(s, tea.KeyEnter); cmd != nil {
		t.Error("enter without a builder should not start a build")
	}
	if !strings.Contains(s.View(100, 40), "Practice is not available") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{builder.ErrNoQuestions, "No questions match"},
		{builder.ErrInvalidSettings, "invalid practice settings"},
		{errors.New("rate limited"), "Could not build the practice exam: rate limited"},
	}
	for _, tt := range tests {
		if got := friendlyError(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("friendlyError(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}

func TestPracticeScreen_EscPops(t *testing.T) {
	s := newTestScreen(t, true)

	if _, ok := press(s, tea.KeyEscape)().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
