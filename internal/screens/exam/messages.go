package exam

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/recorder"
)

// tickInterval is the countdown resolution.
const tickInterval = time.Second

// tickMsg is one countdown second for the session with the given ID.
type tickMsg struct {
	SessionID string
}

// recordedMsg is sent once a submitted result has been persisted.
type recordedMsg struct {
	Result  *engine.Result
	Outcome *recorder.Outcome
}

// tickTimer is the session's handle on the TUI countdown. tea.Tick cannot be
// cancelled, so a stopped timer makes the screen drop ticks that are
// already in flight instead of rescheduling them.
type tickTimer struct {
	stopped atomic.Bool
}

func (t *tickTimer) Stop() { t.stopped.Store(true) }

func (t *tickTimer) Stopped() bool { return t.stopped.Load() }

func tickCmd(sessionID string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{SessionID: sessionID}
	})
}
