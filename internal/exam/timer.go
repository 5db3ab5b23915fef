package exam

import (
	"sync"
	"time"
)

// Timer is a countdown resource owned by a session. Stop must be idempotent.
type Timer interface {
	Stop()
}

func stopTimer(t Timer) {
	if t != nil {
		t.Stop()
	}
}

// Ticker drives a session's countdown from its own goroutine. It is used
// where no UI event loop schedules the ticks.
type Ticker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartTicker ticks s every interval until the session finishes or the
// ticker is stopped. onAutoSubmit receives the result of a timeout and may be
// nil. The ticker is attached to s, so any terminal transition stops it.
func StartTicker(s *Session, interval time.Duration, onAutoSubmit func(*Result)) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.AttachTimer(t)

	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				if res := s.Tick(); res != nil {
					if onAutoSubmit != nil {
						onAutoSubmit(res)
					}
					return
				}
				if s.State().Terminal() {
					return
				}
			}
		}
	}()
	return t
}

// Stop halts the ticker. It does not wait for the goroutine to exit.
func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Done is closed once the ticker goroutine has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
