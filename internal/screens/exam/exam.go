// Package exam is the screen that runs a timed exam session.
package exam

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/catalog"
	engine "github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/recorder"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/screens/results"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
)

type dialog int

const (
	dialogNone dialog = iota
	dialogSubmit
	dialogExit
)

// ExamScreen implements screen.Screen for an active exam.
type ExamScreen struct {
	sess     *screen.Session
	config   catalog.ExamConfig
	session  *engine.Session
	timer    *tickTimer
	interval time.Duration

	cursor  int
	dialog  dialog
	confirm components.Confirm

	// submitted is set once a result has been handed to the recorder.
	submitted bool
	errMsg    string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)

// New starts a session for cfg. A config the engine rejects leaves the
// screen in an error state.
func New(sess *screen.Session, cfg catalog.ExamConfig, opts engine.Options) *ExamScreen {
	s := &ExamScreen{
		sess:     sess,
		config:   cfg,
		timer:    &tickTimer{},
		interval: tickInterval,
	}
	session, err := engine.Start(cfg, opts)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	session.AttachTimer(s.timer)
	s.session = session
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	return tea.Batch(s.recordStart(), tickCmd(s.session.ID(), s.interval))
}

func (s *ExamScreen) Title() string {
	return s.config.Name
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.dialog != dialogNone:
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
			{Key: "←→", Description: "Choose"},
		}
	case s.submitted:
		return nil
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "M", Description: "Mark"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Exit"},
	}
}

// Session exposes the running session.
func (s *ExamScreen) Session() *engine.Session {
	return s.session
}

// Close releases the countdown. An exam still running when its screen is
// discarded is exited.
func (s *ExamScreen) Close() {
	if s.session != nil {
		s.session.Close()
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case recordedMsg:
		return s, router.ReplaceCmd(results.New(s.sess, msg.Result, msg.Outcome, s.retake))
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || msg.SessionID != s.session.ID() || s.timer.Stopped() {
		return s, nil
	}
	if res := s.session.Tick(); res != nil {
		return s.finish(res)
	}
	if s.session.State() != engine.StateActive {
		return s, nil
	}
	return s, tickCmd(s.session.ID(), s.interval)
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session == nil {
		return s, router.PopCmd()
	}
	if s.submitted {
		return s, nil
	}

	if s.dialog != dialogNone {
		return s.handleDialogKey(key)
	}

	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		q, _ := s.session.Current()
		if !q.ValidOption(idx) {
			return s, nil
		}
		if err := s.session.SelectCurrent(idx); err == nil {
			s.cursor = idx
		}
	case "left", "h":
		s.session.Previous()
		s.syncCursor()
	case "right", "l":
		s.session.Next()
		s.syncCursor()
	case "home", "g":
		_ = s.session.NavigateTo(0)
		s.syncCursor()
	case "end", "G":
		_ = s.session.NavigateTo(s.session.Len() - 1)
		s.syncCursor()
	case "u":
		s.jumpToUnanswered()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		q, _ := s.session.Current()
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "enter", "space":
		_ = s.session.SelectCurrent(s.cursor)
	case "m":
		q, _ := s.session.Current()
		_, _ = s.session.ToggleMark(q.ID)
	case "s":
		s.openSubmit()
	case "esc":
		s.openExit()
	}
	return s, nil
}

func (s *ExamScreen) handleDialogKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		return s.confirmDialog()
	case "enter":
		if s.confirm.Focus {
			return s.confirmDialog()
		}
		s.dialog = dialogNone
	case "n", "N", "esc":
		s.dialog = dialogNone
	case "left", "right", "tab", "h", "l":
		s.confirm.Toggle()
	}
	return s, nil
}

func (s *ExamScreen) confirmDialog() (screen.Screen, tea.Cmd) {
	d := s.dialog
	s.dialog = dialogNone
	switch d {
	case dialogSubmit:
		res, ok := s.session.Submit(false)
		if !ok {
			return s, nil
		}
		return s.finish(res)
	case dialogExit:
		if !s.session.Exit() {
			return s, nil
		}
		return s, tea.Sequence(s.recordExit(), router.PopCmd())
	}
	return s, nil
}

func (s *ExamScreen) openSubmit() {
	t := s.sess.Translator()
	c := components.Confirm{
		Title: t.T("SubmitPrompt"),
		Yes:   "Submit",
		No:    "Keep working",
		Focus: true,
	}
	if n := s.session.UnansweredCount(); n > 0 {
		c.Lines = append(c.Lines, t.Tp("Unanswered", n))
	}
	s.confirm = c
	s.dialog = dialogSubmit
}

func (s *ExamScreen) openExit() {
	t := s.sess.Translator()
	s.confirm = components.Confirm{
		Title: t.T("ExitPrompt"),
		Lines: []string{t.T("ExitWarning")},
		Yes:   "Exit",
		No:    "Stay",
	}
	s.dialog = dialogExit
}

// syncCursor puts the option cursor on the recorded answer, if any.
func (s *ExamScreen) syncCursor() {
	q, _ := s.session.Current()
	if idx, ok := s.session.Answer(q.ID); ok {
		s.cursor = idx
		return
	}
	s.cursor = 0
}

func (s *ExamScreen) jumpToUnanswered() {
	n := s.session.Len()
	start := s.session.CurrentIndex()
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		q, _ := s.session.Question(idx)
		if !s.session.IsAnswered(q.ID) {
			_ = s.session.NavigateTo(idx)
			s.syncCursor()
			return
		}
	}
}

// finish hands a graded result to the recorder. The results screen
// replaces this one once recording is done.
func (s *ExamScreen) finish(res *engine.Result) (screen.Screen, tea.Cmd) {
	s.submitted = true
	s.dialog = dialogNone
	sess := s.sess
	return s, func() tea.Msg {
		var out *recorder.Outcome
		if sess.Recorder != nil {
			out = sess.Recorder.Completed(context.Background(), sess.User, res)
		}
		return recordedMsg{Result: res, Outcome: out}
	}
}

func (s *ExamScreen) recordStart() tea.Cmd {
	if s.sess.Recorder == nil {
		return nil
	}
	sess, cfg, id := s.sess, s.config, s.session.ID()
	return func() tea.Msg {
		sess.Recorder.Started(context.Background(), sess.User, cfg, id)
		log.Debug().Str("exam", cfg.ID).Str("session", id).Msg("exam started")
		return nil
	}
}

func (s *ExamScreen) recordExit() tea.Cmd {
	sess, cfg, id := s.sess, s.config, s.session.ID()
	return func() tea.Msg {
		if sess.Recorder != nil {
			sess.Recorder.Exited(context.Background(), sess.User, cfg, id)
		}
		log.Debug().Str("exam", cfg.ID).Str("session", id).Msg("exam exited")
		return nil
	}
}

// retake builds a fresh screen for the same exam.
func (s *ExamScreen) retake() screen.Screen {
	return New(s.sess, s.config, engine.Options{})
}
